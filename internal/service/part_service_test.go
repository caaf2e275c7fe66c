package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/techmaintain/parts-service/internal/domain"
	"github.com/techmaintain/parts-service/internal/repository"
)

func TestPartService_CRUD(t *testing.T) {
	ctx := context.Background()
	parts := repository.NewMemoryPartRepository()
	svc := NewPartService(parts, zap.NewNop())

	created, err := svc.CreatePart(ctx, domain.CreatePartInput{
		SerialNumber: "SN-100",
		Module:       "hydraulics",
		Quantity:     3,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.PartID)
	_, err = uuid.Parse(created.PartID)
	require.NoError(t, err, "part ids are uuids")
	assert.False(t, created.CreatedAt.IsZero())

	t.Run("get", func(t *testing.T) {
		got, err := svc.GetPart(ctx, created.PartID)
		require.NoError(t, err)
		assert.Equal(t, "SN-100", got.SerialNumber)
		assert.Equal(t, 3, got.Quantity)
	})

	t.Run("get unknown", func(t *testing.T) {
		_, err := svc.GetPart(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrPartNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := svc.GetPart(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrInvalidPartID)

		assert.ErrorIs(t, svc.UpdatePart(ctx, "not-a-uuid", domain.UpdatePartInput{}), ErrInvalidPartID)
		assert.ErrorIs(t, svc.DeletePart(ctx, "not-a-uuid"), ErrInvalidPartID)
	})

	t.Run("partial update", func(t *testing.T) {
		module := "pneumatics"
		require.NoError(t, svc.UpdatePart(ctx, created.PartID, domain.UpdatePartInput{Module: &module}))

		got, err := svc.GetPart(ctx, created.PartID)
		require.NoError(t, err)
		assert.Equal(t, "pneumatics", got.Module)
		assert.Equal(t, "SN-100", got.SerialNumber, "unset fields stay untouched")
		assert.Equal(t, 3, got.Quantity)
	})

	t.Run("update unknown", func(t *testing.T) {
		quantity := 5
		err := svc.UpdatePart(ctx, uuid.NewString(), domain.UpdatePartInput{Quantity: &quantity})
		assert.ErrorIs(t, err, ErrPartNotFound)
	})

	t.Run("list", func(t *testing.T) {
		listed, err := svc.ListParts(ctx)
		require.NoError(t, err)
		assert.Len(t, listed, 1)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.DeletePart(ctx, created.PartID))
		assert.ErrorIs(t, svc.DeletePart(ctx, created.PartID), ErrPartNotFound)

		_, err := svc.GetPart(ctx, created.PartID)
		assert.ErrorIs(t, err, ErrPartNotFound)
	})
}
