package store

import (
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocdb/database"
	"ocdb/model"
)

func newTestStore(t *testing.T) (*VenueStore, *sqlx.DB) {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.InitSchema(db))

	st, err := Load(db)
	require.NoError(t, err)
	return st, db
}

func TestLoadEmptyDatabase(t *testing.T) {
	st, _ := newTestStore(t)

	assert.Zero(t, st.Len())
	assert.Empty(t, st.Snapshot())
}

func TestAppendPersistsAndPreservesOrder(t *testing.T) {
	st, db := newTestStore(t)

	records := []model.Venue{
		{ID: "1", Name: "Bar Ypê", City: "Biguaçu", CreatedAt: 100},
		{ID: "2", Name: "Clube X", City: "Florianópolis", CreatedAt: 200},
	}
	require.NoError(t, st.Append(records))
	assert.Equal(t, 2, st.Len())

	// Reabrindo o store a partir do mesmo banco, tudo continua lá.
	reloaded, err := Load(db)
	require.NoError(t, err)
	assert.Equal(t, records, reloaded.Snapshot())
}

func TestAppendEmptyIsNoOp(t *testing.T) {
	st, _ := newTestStore(t)
	require.NoError(t, st.Append(nil))
	assert.Zero(t, st.Len())
}

func TestReplaceAll(t *testing.T) {
	st, _ := newTestStore(t)
	require.NoError(t, st.Append([]model.Venue{
		{ID: "1", Name: "A", City: "X"},
		{ID: "2", Name: "B", City: "Y"},
	}))

	require.NoError(t, st.ReplaceAll([]model.Venue{{ID: "1", Name: "A", City: "X"}}))

	snapshot := st.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "1", snapshot[0].ID)
}

func TestRemove(t *testing.T) {
	st, _ := newTestStore(t)
	require.NoError(t, st.Append([]model.Venue{
		{ID: "1", Name: "A", City: "X"},
		{ID: "2", Name: "B", City: "Y"},
	}))

	found, err := st.Remove("1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, st.Len())

	// Remover ID inexistente é no-op.
	found, err = st.Remove("nope")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 1, st.Len())
}

func TestUpdateKeepsIDAndCreatedAt(t *testing.T) {
	st, _ := newTestStore(t)
	require.NoError(t, st.Append([]model.Venue{
		{ID: "1", Name: "Clube X", City: "Florianópolis", DDD: "48", CreatedAt: 12345},
	}))

	found, err := st.Update(model.VenueUpdateInput{
		ID:          "1",
		Name:        "Clube X Premium",
		City:        "São José",
		DDD:         "48",
		SocialMedia: "@clubex",
		DistanceKm:  12.5,
		TravelTime:  "20min",
		Notes:       "falar com o gerente",
	})
	require.NoError(t, err)
	assert.True(t, found)

	v := st.Snapshot()[0]
	assert.Equal(t, "1", v.ID)
	assert.Equal(t, int64(12345), v.CreatedAt)
	assert.Equal(t, "Clube X Premium", v.Name)
	assert.Equal(t, "São José", v.City)
	assert.Equal(t, "@clubex", v.SocialMedia)
	assert.Equal(t, "falar com o gerente", v.Notes)
}

func TestUpdateRequiresNameAndCity(t *testing.T) {
	st, _ := newTestStore(t)
	require.NoError(t, st.Append([]model.Venue{{ID: "1", Name: "A", City: "X"}}))

	_, err := st.Update(model.VenueUpdateInput{ID: "1", Name: " ", City: "X"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = st.Update(model.VenueUpdateInput{ID: "1", Name: "A", City: ""})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestAdmitDedupesAndAppendsAtomically(t *testing.T) {
	st, db := newTestStore(t)
	require.NoError(t, st.Append([]model.Venue{
		{ID: "1", Name: "Clube X", City: "Florianópolis"},
	}))

	result, err := st.Admit([]model.VenueCandidate{
		{Name: "CLUBE X", City: "florianopolis"},
		{Name: "Bar Ypê", City: "Biguaçu", DDD: "48"},
	})
	require.NoError(t, err)

	require.Len(t, result.Admitted, 1)
	assert.Equal(t, 1, result.Rejected)
	assert.Equal(t, 2, st.Len())

	// Persistido: recarregar do mesmo banco mantém o admitido.
	reloaded, err := Load(db)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Len())
}

func TestAdmitAllDuplicatesDoesNotSave(t *testing.T) {
	st, _ := newTestStore(t)
	require.NoError(t, st.Append([]model.Venue{
		{ID: "1", Name: "Clube X", City: "Florianópolis"},
	}))

	result, err := st.Admit([]model.VenueCandidate{
		{Name: "clube x", City: "FLORIANOPOLIS"},
	})
	require.NoError(t, err)

	assert.Empty(t, result.Admitted)
	assert.Equal(t, 1, result.Rejected)
	assert.Equal(t, 1, st.Len())
}

func TestCompactFirstWinsAndPersists(t *testing.T) {
	st, db := newTestStore(t)
	require.NoError(t, st.Append([]model.Venue{
		{ID: "1", Name: "Clube X", City: "Florianópolis"},
		{ID: "2", Name: "CLUBE X", City: "florianopolis"},
		{ID: "3", Name: "Bar Ypê", City: "Biguaçu"},
	}))

	removed, remaining, err := st.Compact()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, remaining)

	reloaded, err := Load(db)
	require.NoError(t, err)
	snapshot := reloaded.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "1", snapshot[0].ID)
	assert.Equal(t, "3", snapshot[1].ID)
}

func TestCompactEmptyAndCleanStore(t *testing.T) {
	st, _ := newTestStore(t)

	removed, remaining, err := st.Compact()
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Zero(t, remaining)

	require.NoError(t, st.Append([]model.Venue{{ID: "1", Name: "A", City: "X"}}))
	removed, remaining, err = st.Compact()
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Equal(t, 1, remaining)
}

func TestCompactKeepsRecordAppendedConcurrently(t *testing.T) {
	// Uma ingestão que termina durante a limpeza não pode ser engolida
	// pela troca da lista: ambos mutam sob o mesmo escritor único.
	st, _ := newTestStore(t)
	require.NoError(t, st.Append([]model.Venue{
		{ID: "1", Name: "Clube X", City: "Florianópolis"},
		{ID: "2", Name: "clube x", City: "florianopolis"},
	}))

	var wg sync.WaitGroup
	var appendErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		appendErr = st.Append([]model.Venue{{ID: "5", Name: "Casa Nova", City: "Palhoça"}})
	}()

	_, _, err := st.Compact()
	require.NoError(t, err)
	wg.Wait()
	require.NoError(t, appendErr)

	ids := make(map[string]bool)
	for _, v := range st.Snapshot() {
		ids[v.ID] = true
	}
	assert.True(t, ids["5"], "registro anexado durante a limpeza foi perdido")
	assert.True(t, ids["1"])
	assert.False(t, ids["2"])
}

func TestUpdateMissingIDIsNoOp(t *testing.T) {
	st, _ := newTestStore(t)
	require.NoError(t, st.Append([]model.Venue{{ID: "1", Name: "A", City: "X"}}))

	found, err := st.Update(model.VenueUpdateInput{ID: "nope", Name: "B", City: "Y"})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdateDoesNotRevalidateIdentity(t *testing.T) {
	// Editar pode criar uma duplicata; isso é recolhido só na limpeza.
	st, _ := newTestStore(t)
	require.NoError(t, st.Append([]model.Venue{
		{ID: "1", Name: "Clube X", City: "Florianópolis"},
		{ID: "2", Name: "Outro Lugar", City: "Florianópolis"},
	}))

	found, err := st.Update(model.VenueUpdateInput{ID: "2", Name: "CLUBE X", City: "florianopolis"})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, st.Len())
}

func TestSnapshotIsACopy(t *testing.T) {
	st, _ := newTestStore(t)
	require.NoError(t, st.Append([]model.Venue{{ID: "1", Name: "A", City: "X"}}))

	snapshot := st.Snapshot()
	snapshot[0].Name = "alterado"

	assert.Equal(t, "A", st.Snapshot()[0].Name)
}
