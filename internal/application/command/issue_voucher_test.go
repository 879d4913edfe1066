package command

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merit-hub/merit-cafe-hub/internal/domain/roster"
	"github.com/merit-hub/merit-cafe-hub/internal/domain/shared"
	"github.com/merit-hub/merit-cafe-hub/internal/domain/voucher"
	"github.com/merit-hub/merit-cafe-hub/internal/infrastructure/messaging"
	"github.com/merit-hub/merit-cafe-hub/internal/infrastructure/persistence/kv"
	"github.com/merit-hub/merit-cafe-hub/internal/infrastructure/persistence/state"
	"github.com/merit-hub/merit-cafe-hub/pkg/logger"
)

// brokenStore fails every operation, simulating an unavailable backend.
type brokenStore struct{}

func (brokenStore) Load(context.Context, string) ([]byte, error) {
	return nil, kv.ErrUnavailable
}

func (brokenStore) Save(context.Context, string, []byte) error {
	return kv.ErrUnavailable
}

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("test-voucher-%04d", s.n)
}

type fixture struct {
	store  kv.Store
	state  *state.Manager
	roster *roster.Store
	ledger *voucher.Ledger
	issue  *IssueVoucherHandler
	adjust *AdjustCommendationsHandler
	toggle *ToggleRedeemedHandler
	rename *RenameStudentHandler
}

func newFixture(t *testing.T, store kv.Store, students ...*roster.Student) *fixture {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelError)
	sm := state.NewManager(store, log)
	rs := roster.NewStore(students)
	ledger := voucher.NewLedger(nil)
	bus := messaging.NewEventBus(log)
	policy := voucher.DefaultPolicy()

	return &fixture{
		store:  store,
		state:  sm,
		roster: rs,
		ledger: ledger,
		issue:  NewIssueVoucherHandler(rs, ledger, policy, &seqIDs{}, time.Now, sm, bus, log),
		adjust: NewAdjustCommendationsHandler(rs, sm, bus, log),
		toggle: NewToggleRedeemedHandler(ledger, sm, bus, log),
		rename: NewRenameStudentHandler(rs, sm, bus, log),
	}
}

func newStudent(t *testing.T, id string, commendations int) *roster.Student {
	t.Helper()
	st, err := roster.NewStudent(id, "Amelia Clarke", commendations)
	require.NoError(t, err)
	return st
}

func TestIssueVoucher_ExactThreshold(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, kv.NewMemory(), newStudent(t, "s1", 5))

	v, err := f.issue.Handle(ctx, IssueVoucherCommand{StudentID: "s1"})
	require.NoError(t, err)

	assert.Equal(t, 0, f.roster.Get("s1").Commendations.Int())
	assert.Equal(t, 290, v.AmountPence)
	assert.False(t, v.Redeemed)
	assert.Equal(t, "s1", v.StudentID)
	require.Equal(t, 1, f.ledger.Len())
	assert.Equal(t, v.ID, f.ledger.Vouchers()[0].ID)
}

func TestIssueVoucher_SurplusKept(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, kv.NewMemory(), newStudent(t, "s1", 7))

	_, err := f.issue.Handle(ctx, IssueVoucherCommand{StudentID: "s1"})
	require.NoError(t, err)

	// Debit is the threshold, not a reset to zero.
	assert.Equal(t, 2, f.roster.Get("s1").Commendations.Int())
}

func TestIssueVoucher_NotEligibleNoStateChange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, kv.NewMemory(), newStudent(t, "s1", 4))

	v, err := f.issue.Handle(ctx, IssueVoucherCommand{StudentID: "s1"})
	assert.Nil(t, v)
	assert.ErrorIs(t, err, shared.ErrNotEligible)

	assert.Equal(t, 4, f.roster.Get("s1").Commendations.Int())
	assert.Equal(t, 0, f.ledger.Len())

	// Nothing was persisted either.
	_, loadErr := f.store.Load(ctx, state.KeyVoucherLog)
	assert.ErrorIs(t, loadErr, kv.ErrNotFound)
}

func TestIssueVoucher_AtomicDebit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, kv.NewMemory(), newStudent(t, "s1", 11))

	before := f.roster.Get("s1").Commendations.Int()
	lenBefore := f.ledger.Len()

	_, err := f.issue.Handle(ctx, IssueVoucherCommand{StudentID: "s1"})
	require.NoError(t, err)

	assert.Equal(t, before-5, f.roster.Get("s1").Commendations.Int())
	assert.Equal(t, lenBefore+1, f.ledger.Len())
}

func TestIssueVoucher_EmptyRoster(t *testing.T) {
	f := newFixture(t, kv.NewMemory())

	v, err := f.issue.Handle(context.Background(), IssueVoucherCommand{})
	assert.Nil(t, v)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestIssueVoucher_FallbackSelection(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, kv.NewMemory(), newStudent(t, "s1", 6), newStudent(t, "s2", 9))

	// No explicit selection: the first student is used.
	v, err := f.issue.Handle(ctx, IssueVoucherCommand{})
	require.NoError(t, err)
	assert.Equal(t, "s1", v.StudentID)
	assert.Equal(t, 1, f.roster.Get("s1").Commendations.Int())
	assert.Equal(t, 9, f.roster.Get("s2").Commendations.Int())
}

func TestIssueVoucher_PersistsBothRecords(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	f := newFixture(t, mem, newStudent(t, "s1", 5))

	_, err := f.issue.Handle(ctx, IssueVoucherCommand{StudentID: "s1"})
	require.NoError(t, err)

	// A fresh manager over the same store sees the committed pair.
	reloaded := state.NewManager(mem, logger.New(io.Discard, logger.LevelError))
	assert.Equal(t, 0, reloaded.LoadRoster(ctx).Get("s1").Commendations.Int())
	assert.Equal(t, 1, reloaded.LoadLedger(ctx).Len())
}

func TestIssueVoucher_StorageFailureDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, brokenStore{}, newStudent(t, "s1", 5))

	v, err := f.issue.Handle(ctx, IssueVoucherCommand{StudentID: "s1"})
	require.NoError(t, err)
	require.NotNil(t, v)

	// In-memory state is authoritative for the session.
	assert.Equal(t, 0, f.roster.Get("s1").Commendations.Int())
	assert.Equal(t, 1, f.ledger.Len())
}

func TestAdjustCommendations_PersistsRoster(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	f := newFixture(t, mem, newStudent(t, "s1", 1))

	f.adjust.Handle(ctx, AdjustCommendationsCommand{StudentID: "s1", Delta: 3})
	assert.Equal(t, 4, f.roster.Get("s1").Commendations.Int())

	reloaded := state.NewManager(mem, logger.New(io.Discard, logger.LevelError))
	assert.Equal(t, 4, reloaded.LoadRoster(ctx).Get("s1").Commendations.Int())
}

func TestAdjustCommendations_UnknownIDPersistsNothing(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	f := newFixture(t, mem, newStudent(t, "s1", 1))

	f.adjust.Handle(ctx, AdjustCommendationsCommand{StudentID: "ghost", Delta: 3})

	_, err := mem.Load(ctx, state.KeyRoster)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestToggleRedeemed_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	f := newFixture(t, mem, newStudent(t, "s1", 5))

	v, err := f.issue.Handle(ctx, IssueVoucherCommand{StudentID: "s1"})
	require.NoError(t, err)

	f.toggle.Handle(ctx, ToggleRedeemedCommand{VoucherID: v.ID})
	assert.True(t, f.ledger.Find(v.ID).Redeemed)

	reloaded := state.NewManager(mem, logger.New(io.Discard, logger.LevelError))
	assert.True(t, reloaded.LoadLedger(ctx).Find(v.ID).Redeemed)

	f.toggle.Handle(ctx, ToggleRedeemedCommand{VoucherID: v.ID})
	assert.False(t, f.ledger.Find(v.ID).Redeemed)
}

func TestRenameStudent_DoesNotRewriteVouchers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, kv.NewMemory(), newStudent(t, "s1", 5))

	v, err := f.issue.Handle(ctx, IssueVoucherCommand{StudentID: "s1"})
	require.NoError(t, err)
	require.Equal(t, "Amelia Clarke", v.StudentName)

	f.rename.Handle(ctx, RenameStudentCommand{StudentID: "s1", Name: "A. Clarke-Smith"})
	assert.Equal(t, "A. Clarke-Smith", f.roster.Get("s1").Name)
	assert.Equal(t, "Amelia Clarke", f.ledger.Find(v.ID).StudentName)
}

func TestIssueVoucher_ManySequentialDistinctIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, kv.NewMemory(), newStudent(t, "s1", 100))

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		v, err := f.issue.Handle(ctx, IssueVoucherCommand{StudentID: "s1"})
		require.NoError(t, err)
		assert.False(t, seen[v.ID], "duplicate id %s", v.ID)
		seen[v.ID] = true
	}
	assert.Equal(t, 0, f.roster.Get("s1").Commendations.Int())
	assert.Equal(t, 20, f.ledger.Len())
}
