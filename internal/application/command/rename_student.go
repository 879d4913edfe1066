package command

import (
	"context"

	"github.com/merit-hub/merit-cafe-hub/internal/domain/roster"
	"github.com/merit-hub/merit-cafe-hub/internal/infrastructure/messaging"
	"github.com/merit-hub/merit-cafe-hub/internal/infrastructure/persistence/state"
	"github.com/merit-hub/merit-cafe-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// RENAME STUDENT COMMAND
// Roster maintenance. Already-issued vouchers keep their name snapshot.
// ══════════════════════════════════════════════════════════════════════════════

// RenameStudentCommand updates one student's display name.
type RenameStudentCommand struct {
	StudentID string
	Name      string
}

// RenameStudentHandler handles the RenameStudentCommand.
type RenameStudentHandler struct {
	roster *roster.Store
	state  *state.Manager
	bus    *messaging.EventBus
	log    *logger.Logger
}

// NewRenameStudentHandler creates a new RenameStudentHandler.
func NewRenameStudentHandler(
	rosterStore *roster.Store,
	stateManager *state.Manager,
	bus *messaging.EventBus,
	log *logger.Logger,
) *RenameStudentHandler {
	if log == nil {
		log = logger.Default()
	}
	return &RenameStudentHandler{
		roster: rosterStore,
		state:  stateManager,
		bus:    bus,
		log:    log.With(logger.String("command", "rename_student")),
	}
}

// Handle renames the student. Unknown ids and empty names are silent
// no-ops, in line with the roster's failure semantics.
func (h *RenameStudentHandler) Handle(ctx context.Context, cmd RenameStudentCommand) {
	if !h.roster.Rename(cmd.StudentID, cmd.Name) {
		h.log.Debug("rename ignored", logger.String("student_id", cmd.StudentID))
		return
	}

	h.state.SaveRoster(ctx, h.roster)

	if h.bus != nil {
		if st := h.roster.Get(cmd.StudentID); st != nil {
			h.bus.Publish(roster.NewStudentRenamedEvent(st))
		}
	}
}
