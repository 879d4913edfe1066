package command

import (
	"context"

	"github.com/merit-hub/merit-cafe-hub/internal/domain/roster"
	"github.com/merit-hub/merit-cafe-hub/internal/infrastructure/messaging"
	"github.com/merit-hub/merit-cafe-hub/internal/infrastructure/persistence/state"
	"github.com/merit-hub/merit-cafe-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADJUST COMMENDATIONS COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// AdjustCommendationsCommand applies a signed delta to one student.
type AdjustCommendationsCommand struct {
	StudentID string
	Delta     int
}

// AdjustCommendationsHandler handles the AdjustCommendationsCommand.
type AdjustCommendationsHandler struct {
	roster *roster.Store
	state  *state.Manager
	bus    *messaging.EventBus
	log    *logger.Logger
}

// NewAdjustCommendationsHandler creates a new AdjustCommendationsHandler.
func NewAdjustCommendationsHandler(
	rosterStore *roster.Store,
	stateManager *state.Manager,
	bus *messaging.EventBus,
	log *logger.Logger,
) *AdjustCommendationsHandler {
	if log == nil {
		log = logger.Default()
	}
	return &AdjustCommendationsHandler{
		roster: rosterStore,
		state:  stateManager,
		bus:    bus,
		log:    log.With(logger.String("command", "adjust_commendations")),
	}
}

// Handle applies the delta, floored at zero. An unknown student id is a
// silent no-op: nothing is persisted and no error surfaces. Never fails.
func (h *AdjustCommendationsHandler) Handle(ctx context.Context, cmd AdjustCommendationsCommand) {
	if !h.roster.AdjustCommendations(cmd.StudentID, cmd.Delta) {
		h.log.Debug("unknown student id ignored", logger.String("student_id", cmd.StudentID))
		return
	}

	h.state.SaveRoster(ctx, h.roster)

	if h.bus != nil {
		if st := h.roster.Get(cmd.StudentID); st != nil {
			h.bus.Publish(roster.NewCommendationsAdjustedEvent(st, cmd.Delta))
		}
	}
}
