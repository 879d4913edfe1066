package state

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merit-hub/merit-cafe-hub/internal/domain/roster"
	"github.com/merit-hub/merit-cafe-hub/internal/domain/voucher"
	"github.com/merit-hub/merit-cafe-hub/internal/infrastructure/persistence/kv"
	"github.com/merit-hub/merit-cafe-hub/pkg/logger"
)

func testManager(store kv.Store) *Manager {
	return NewManager(store, logger.New(io.Discard, logger.LevelError))
}

func TestLoadRoster_FirstRunSeeds(t *testing.T) {
	m := testManager(kv.NewMemory())

	r := m.LoadRoster(context.Background())
	assert.Equal(t, len(roster.Seed()), r.Len())
}

func TestLoadRoster_CorruptRecordFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Save(ctx, KeyRoster, []byte("{not json")))

	// The voucher log is independent and must survive roster corruption.
	ledger := voucher.NewLedger([]*voucher.Voucher{
		{ID: "v1", StudentID: "s1", StudentName: "Amelia", AmountPence: 290},
	})
	m := testManager(mem)
	m.SaveLedger(ctx, ledger)

	r := m.LoadRoster(ctx)
	assert.Equal(t, len(roster.Seed()), r.Len())

	reloaded := m.LoadLedger(ctx)
	require.Equal(t, 1, reloaded.Len())
	assert.Equal(t, "v1", reloaded.Vouchers()[0].ID)
}

func TestLoadLedger_CorruptRecordStartsEmpty(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Save(ctx, KeyVoucherLog, []byte("[[[")))

	m := testManager(mem)
	assert.Equal(t, 0, m.LoadLedger(ctx).Len())
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	m := testManager(mem)

	st, err := roster.NewStudent("s1", "Amelia Clarke", 4)
	require.NoError(t, err)
	m.SaveRoster(ctx, roster.NewStore([]*roster.Student{st}))

	ledger := voucher.NewLedger([]*voucher.Voucher{
		{ID: "v2", StudentID: "s1", StudentName: "Amelia Clarke", AmountPence: 290, Redeemed: true},
		{ID: "v1", StudentID: "s1", StudentName: "Amelia Clarke", AmountPence: 290},
	})
	m.SaveLedger(ctx, ledger)

	r := m.LoadRoster(ctx)
	require.Equal(t, 1, r.Len())
	assert.Equal(t, 4, r.Get("s1").Commendations.Int())

	l := m.LoadLedger(ctx)
	require.Equal(t, 2, l.Len())
	assert.Equal(t, "v2", l.Vouchers()[0].ID)
	assert.True(t, l.Vouchers()[0].Redeemed)
	assert.Equal(t, "v1", l.Vouchers()[1].ID)
}

func TestPersistedLayout_JSONArrays(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	m := testManager(mem)

	st, err := roster.NewStudent("s1", "Amelia", 2)
	require.NoError(t, err)
	m.SaveRoster(ctx, roster.NewStore([]*roster.Student{st}))

	data, err := mem.Load(ctx, KeyRoster)
	require.NoError(t, err)

	var arr []map[string]any
	require.NoError(t, json.Unmarshal(data, &arr))
	require.Len(t, arr, 1)
	assert.Equal(t, "s1", arr[0]["id"])
	assert.Equal(t, float64(2), arr[0]["commendations"])
}

func TestLoadRoster_SanitizesHandEditedRecord(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	raw := `[{"id":"s1","name":"Amelia","commendations":-3},{"id":"","name":"ghost"},{"id":"s2","name":"Ben","commendations":1}]`
	require.NoError(t, mem.Save(ctx, KeyRoster, []byte(raw)))

	r := testManager(mem).LoadRoster(ctx)
	require.Equal(t, 2, r.Len())
	assert.Equal(t, 0, r.Get("s1").Commendations.Int())
	assert.Equal(t, 1, r.Get("s2").Commendations.Int())
}
