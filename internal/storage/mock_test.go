package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jwebster45206/combat-engine/pkg/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockStorage_Rosters(t *testing.T) {
	m := NewMockStorage()
	ctx := context.Background()

	loaded, err := m.LoadRoster(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, loaded, "missing roster is nil without error")

	roster := testRoster()
	require.NoError(t, m.SaveRoster(ctx, roster))

	roster.Entries[0].Stun = 9
	loaded, err = m.LoadRoster(ctx, roster.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.Entries[0].Stun, "saved roster is a copy")

	ids, err := m.ListRosters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{roster.SessionID}, ids)

	require.NoError(t, m.DeleteRoster(ctx, roster.SessionID))
	ids, err = m.ListRosters(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestMockStorage_Errors(t *testing.T) {
	m := NewMockStorage()
	ctx := context.Background()
	boom := errors.New("boom")

	m.SetPingError(boom)
	assert.ErrorIs(t, m.Ping(ctx), boom)
	m.SetPingError(nil)
	assert.NoError(t, m.Ping(ctx))

	m.SetSaveError(boom)
	assert.ErrorIs(t, m.SaveRoster(ctx, testRoster()), boom)
	assert.Error(t, m.SaveRoster(ctx, nil))
}

func TestMockStorage_Sheets(t *testing.T) {
	m := NewMockStorage()
	ctx := context.Background()
	m.AddSheetSpec(&sheet.Spec{ID: "street_sam"})
	m.AddSheetSpec(&sheet.Spec{ID: "adept"})

	ids, err := m.ListSheets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"adept", "street_sam"}, ids)

	spec, err := m.GetSheetSpec(ctx, "adept")
	require.NoError(t, err)
	assert.Equal(t, "adept", spec.ID)

	_, err = m.GetSheetSpec(ctx, "troll")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}
