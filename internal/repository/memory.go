package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/techmaintain/parts-service/internal/domain"
)

// In-memory stores backing LOCAL_MODE and tests. Same contracts as the
// DynamoDB repositories, including the conditional stock deduction.

type MemoryPartRepository struct {
	mu    sync.RWMutex
	parts map[string]*domain.Part
}

func NewMemoryPartRepository() *MemoryPartRepository {
	return &MemoryPartRepository{
		parts: make(map[string]*domain.Part),
	}
}

func (r *MemoryPartRepository) CreatePart(_ context.Context, part *domain.Part) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *part
	r.parts[part.PartID] = &copied
	return nil
}

func (r *MemoryPartRepository) GetPart(_ context.Context, partID string) (*domain.Part, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	part, exists := r.parts[partID]
	if !exists {
		return nil, ErrPartNotFound
	}
	copied := *part
	return &copied, nil
}

func (r *MemoryPartRepository) ListParts(_ context.Context) ([]domain.Part, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parts := make([]domain.Part, 0, len(r.parts))
	for _, part := range r.parts {
		parts = append(parts, *part)
	}
	sort.Slice(parts, func(i, j int) bool {
		return parts[i].CreatedAt.Before(parts[j].CreatedAt)
	})
	return parts, nil
}

func (r *MemoryPartRepository) UpdatePart(_ context.Context, partID string, input domain.UpdatePartInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	part, exists := r.parts[partID]
	if !exists {
		return ErrPartNotFound
	}
	if input.SerialNumber != nil {
		part.SerialNumber = *input.SerialNumber
	}
	if input.Module != nil {
		part.Module = *input.Module
	}
	if input.Quantity != nil {
		part.Quantity = *input.Quantity
	}
	part.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryPartRepository) DeletePart(_ context.Context, partID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.parts[partID]; !exists {
		return ErrPartNotFound
	}
	delete(r.parts, partID)
	return nil
}

func (r *MemoryPartRepository) DeductStock(_ context.Context, partID string, quantity int) (newStock int, previousStock int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	part, exists := r.parts[partID]
	if !exists {
		return 0, 0, ErrPartNotFound
	}

	previousStock = part.Quantity
	if part.Quantity < quantity {
		return 0, previousStock, ErrInsufficientStock
	}

	part.Quantity -= quantity
	part.UpdatedAt = time.Now()
	return part.Quantity, previousStock, nil
}

func (r *MemoryPartRepository) RestoreStock(_ context.Context, partID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	part, exists := r.parts[partID]
	if !exists {
		return ErrPartNotFound
	}
	part.Quantity += quantity
	part.UpdatedAt = time.Now()
	return nil
}

type MemoryRequestRepository struct {
	mu       sync.RWMutex
	requests map[string]*domain.Request
}

func NewMemoryRequestRepository() *MemoryRequestRepository {
	return &MemoryRequestRepository{
		requests: make(map[string]*domain.Request),
	}
}

func (r *MemoryRequestRepository) InsertRequest(_ context.Context, request *domain.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *request
	r.requests[request.RequestID] = &copied
	return nil
}

func (r *MemoryRequestRepository) GetRequest(_ context.Context, requestID string) (*domain.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	request, exists := r.requests[requestID]
	if !exists {
		return nil, ErrRequestNotFound
	}
	copied := *request
	return &copied, nil
}

func (r *MemoryRequestRepository) UpdateRequestStatus(_ context.Context, requestID string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, exists := r.requests[requestID]
	if !exists {
		return ErrRequestNotFound
	}
	request.Status = status
	return nil
}

func (r *MemoryRequestRepository) ListRequests(_ context.Context) ([]domain.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	requests := make([]domain.Request, 0, len(r.requests))
	for _, request := range r.requests {
		requests = append(requests, *request)
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].RequestDate.After(requests[j].RequestDate)
	})
	return requests, nil
}
