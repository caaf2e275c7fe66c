package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/techmaintain/parts-service/internal/domain"
	"github.com/techmaintain/parts-service/internal/repository"
)

// PartService is a thin pass-through over the part catalog store.
type PartService struct {
	partStore PartStore
	logger    *zap.Logger
}

func NewPartService(partStore PartStore, logger *zap.Logger) *PartService {
	return &PartService{
		partStore: partStore,
		logger:    logger,
	}
}

func (s *PartService) CreatePart(ctx context.Context, input domain.CreatePartInput) (*domain.Part, error) {
	now := time.Now().UTC()
	part := &domain.Part{
		PartID:       uuid.NewString(),
		SerialNumber: input.SerialNumber,
		Module:       input.Module,
		Quantity:     input.Quantity,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.partStore.CreatePart(ctx, part); err != nil {
		s.logger.Error("Failed to save part",
			zap.String("part_id", part.PartID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Part created successfully",
		zap.String("part_id", part.PartID),
		zap.String("serial_number", part.SerialNumber),
		zap.Int("initial_stock", part.Quantity))

	return part, nil
}

func (s *PartService) GetPart(ctx context.Context, partID string) (*domain.Part, error) {
	if _, err := uuid.Parse(partID); err != nil {
		return nil, ErrInvalidPartID
	}

	part, err := s.partStore.GetPart(ctx, partID)
	if err != nil {
		if errors.Is(err, repository.ErrPartNotFound) {
			return nil, ErrPartNotFound
		}
		return nil, err
	}
	return part, nil
}

func (s *PartService) ListParts(ctx context.Context) ([]domain.Part, error) {
	return s.partStore.ListParts(ctx)
}

func (s *PartService) UpdatePart(ctx context.Context, partID string, input domain.UpdatePartInput) error {
	if _, err := uuid.Parse(partID); err != nil {
		return ErrInvalidPartID
	}

	if err := s.partStore.UpdatePart(ctx, partID, input); err != nil {
		if errors.Is(err, repository.ErrPartNotFound) {
			return ErrPartNotFound
		}
		return err
	}
	return nil
}

func (s *PartService) DeletePart(ctx context.Context, partID string) error {
	if _, err := uuid.Parse(partID); err != nil {
		return ErrInvalidPartID
	}

	if err := s.partStore.DeletePart(ctx, partID); err != nil {
		if errors.Is(err, repository.ErrPartNotFound) {
			return ErrPartNotFound
		}
		return err
	}
	return nil
}
