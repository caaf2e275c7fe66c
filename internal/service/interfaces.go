package service

import (
	"context"

	"github.com/techmaintain/parts-service/internal/domain"
	"github.com/techmaintain/parts-service/internal/events"
)

// PartStore is the part catalog contract. DeductStock must be atomic against
// concurrent deductions on the same part id: the store applies the
// sufficiency check and the subtraction as one conditional update.
type PartStore interface {
	CreatePart(ctx context.Context, part *domain.Part) error
	GetPart(ctx context.Context, partID string) (*domain.Part, error)
	ListParts(ctx context.Context) ([]domain.Part, error)
	UpdatePart(ctx context.Context, partID string, input domain.UpdatePartInput) error
	DeletePart(ctx context.Context, partID string) error
	DeductStock(ctx context.Context, partID string, quantity int) (newStock int, previousStock int, err error)
	RestoreStock(ctx context.Context, partID string, quantity int) error
}

type RequestStore interface {
	InsertRequest(ctx context.Context, request *domain.Request) error
	UpdateRequestStatus(ctx context.Context, requestID string, status string) error
	ListRequests(ctx context.Context) ([]domain.Request, error)
}

// Publisher hands a request-created event to the notification pipeline after
// the authoritative state change has committed.
type Publisher interface {
	PublishRequestCreated(event events.RequestCreatedEvent) error
}
