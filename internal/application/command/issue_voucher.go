// Package command contains write operations (CQRS - Commands). Each
// handler composes a pure domain transition with persistence and event
// publication: both in-memory updates complete before anything is written,
// which is what makes the issuance pair atomic in a single-writer session.
package command

import (
	"context"

	"github.com/merit-hub/merit-cafe-hub/internal/domain/roster"
	"github.com/merit-hub/merit-cafe-hub/internal/domain/shared"
	"github.com/merit-hub/merit-cafe-hub/internal/domain/voucher"
	"github.com/merit-hub/merit-cafe-hub/internal/infrastructure/messaging"
	"github.com/merit-hub/merit-cafe-hub/internal/infrastructure/persistence/state"
	"github.com/merit-hub/merit-cafe-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ISSUE VOUCHER COMMAND
// The one coordinated transaction in the system: create the voucher,
// debit the student, persist both records, publish events.
// ══════════════════════════════════════════════════════════════════════════════

// IssueVoucherCommand identifies the student to issue for. An empty id
// resolves to the roster's current selection fallback.
type IssueVoucherCommand struct {
	StudentID string
}

// IssueVoucherHandler handles the IssueVoucherCommand.
type IssueVoucherHandler struct {
	roster *roster.Store
	ledger *voucher.Ledger
	policy voucher.Policy
	ids    voucher.IDSource
	now    voucher.Clock
	state  *state.Manager
	bus    *messaging.EventBus
	log    *logger.Logger
}

// NewIssueVoucherHandler creates a new IssueVoucherHandler.
func NewIssueVoucherHandler(
	rosterStore *roster.Store,
	ledger *voucher.Ledger,
	policy voucher.Policy,
	ids voucher.IDSource,
	now voucher.Clock,
	stateManager *state.Manager,
	bus *messaging.EventBus,
	log *logger.Logger,
) *IssueVoucherHandler {
	if log == nil {
		log = logger.Default()
	}
	return &IssueVoucherHandler{
		roster: rosterStore,
		ledger: ledger,
		policy: policy.Normalize(),
		ids:    ids,
		now:    now,
		state:  stateManager,
		bus:    bus,
		log:    log.With(logger.String("command", "issue_voucher")),
	}
}

// Handle runs the issuance protocol. On rejection (no student, below
// threshold) no state changes occur. On success the returned voucher is
// the new active voucher for display and printing.
func (h *IssueVoucherHandler) Handle(ctx context.Context, cmd IssueVoucherCommand) (*voucher.Voucher, error) {
	st := h.roster.Find(cmd.StudentID)
	if st == nil {
		return nil, shared.ErrNoStudentSelected
	}

	v, err := h.ledger.Issue(st, h.policy, h.ids, h.now)
	if err != nil {
		h.log.Debug("issuance rejected",
			logger.String("student_id", st.ID),
			logger.Int("commendations", st.Commendations.Int()),
			logger.Err(err))
		return nil, err
	}

	// Debit before persisting anything, so the pair of writes observes one
	// consistent in-memory state. The floor clamp in Adjust keeps the
	// balance non-negative even if it somehow dropped below the threshold.
	h.roster.AdjustCommendations(st.ID, -h.policy.Threshold)

	h.state.SaveLedger(ctx, h.ledger)
	h.state.SaveRoster(ctx, h.roster)

	if h.bus != nil {
		h.bus.Publish(voucher.NewIssuedEvent(v))
		h.bus.Publish(roster.NewCommendationsAdjustedEvent(st, -h.policy.Threshold))
	}

	h.log.Info("voucher issued",
		logger.String("voucher_id", v.ShortID()),
		logger.String("student_id", st.ID),
		logger.Int("amount_pence", v.AmountPence))

	return v, nil
}
