package service

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/techmaintain/parts-service/internal/domain"
	"github.com/techmaintain/parts-service/internal/events"
	"github.com/techmaintain/parts-service/internal/repository"
)

const defaultRequester = "Anonymous"

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// RequestService drives the part-request lifecycle: validated creation with
// an atomic stock deduction, open-ended status transitions, and post-commit
// notification.
type RequestService struct {
	partStore    PartStore
	requestStore RequestStore
	publisher    Publisher
	logger       *zap.Logger
}

func NewRequestService(partStore PartStore, requestStore RequestStore, publisher Publisher, logger *zap.Logger) *RequestService {
	return &RequestService{
		partStore:    partStore,
		requestStore: requestStore,
		publisher:    publisher,
		logger:       logger,
	}
}

// CreateRequest validates the input, deducts the part's stock, records the
// request and triggers the notification. Validation checks run in a fixed
// order so the first failure determines the error.
func (s *RequestService) CreateRequest(ctx context.Context, input domain.CreateRequestInput) (*domain.Request, error) {
	if missing := missingFields(input); len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}
	if !emailPattern.MatchString(input.ResponsibleEmail) {
		return nil, ErrInvalidEmail
	}
	if _, err := uuid.Parse(input.PartID); err != nil {
		return nil, ErrInvalidPartID
	}

	quantity, err := strconv.Atoi(input.Quantity.String())
	if err != nil || quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	requiredDate, err := parseRequiredDate(input.RequiredDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	part, err := s.partStore.GetPart(ctx, input.PartID)
	if err != nil {
		if errors.Is(err, repository.ErrPartNotFound) {
			return nil, ErrPartNotFound
		}
		return nil, err
	}

	// The store applies the sufficiency check and the subtraction as one
	// conditional update, so concurrent requests cannot jointly overdraw.
	_, previousStock, err := s.partStore.DeductStock(ctx, input.PartID, quantity)
	if err != nil {
		if errors.Is(err, repository.ErrPartNotFound) {
			return nil, ErrPartNotFound
		}
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, &InsufficientStockError{Available: previousStock}
		}
		return nil, err
	}

	requester := input.Requester
	if requester == "" {
		requester = defaultRequester
	}

	request := &domain.Request{
		RequestID:        uuid.NewString(),
		PartID:           input.PartID,
		Quantity:         quantity,
		RequestDate:      time.Now().UTC(),
		RequiredDate:     requiredDate,
		Priority:         input.Priority,
		Reason:           input.Reason,
		Status:           domain.StatusPending,
		Requester:        requester,
		ResponsibleEmail: input.ResponsibleEmail,
	}

	if err := s.requestStore.InsertRequest(ctx, request); err != nil {
		s.logger.Error("Failed to insert request, restoring stock",
			zap.String("part_id", input.PartID),
			zap.Int("quantity", quantity),
			zap.Error(err))

		if restoreErr := s.partStore.RestoreStock(ctx, input.PartID, quantity); restoreErr != nil {
			s.logger.Error("Failed to restore stock after insert failure",
				zap.String("part_id", input.PartID),
				zap.Int("quantity", quantity),
				zap.Error(restoreErr))
		}
		return nil, err
	}

	s.logger.Info("Request created successfully",
		zap.String("request_id", request.RequestID),
		zap.String("part_id", part.PartID),
		zap.Int("quantity", quantity),
		zap.Int("remaining_stock", previousStock-quantity))

	s.publishCreated(request, part)

	return request, nil
}

// publishCreated hands the event to the notification pipeline off the
// request path. Publish failures are logged and never affect the caller.
func (s *RequestService) publishCreated(request *domain.Request, part *domain.Part) {
	if s.publisher == nil {
		return
	}

	event := events.RequestCreatedEvent{
		EventID:          uuid.NewString(),
		RequestID:        request.RequestID,
		PartID:           part.PartID,
		PartSerialNumber: part.SerialNumber,
		PartModule:       part.Module,
		Quantity:         request.Quantity,
		Priority:         request.Priority,
		Reason:           request.Reason,
		Requester:        request.Requester,
		ResponsibleEmail: request.ResponsibleEmail,
		RequestDate:      request.RequestDate,
		RequiredDate:     request.RequiredDate,
		Timestamp:        time.Now().UTC(),
	}

	go func() {
		if err := s.publisher.PublishRequestCreated(event); err != nil {
			s.logger.Error("Failed to publish request created event",
				zap.String("request_id", event.RequestID),
				zap.Error(err))
		}
	}()
}

// UpdateRequestStatus overwrites the status label only. Labels are
// open-ended; the store rejects unknown request ids.
func (s *RequestService) UpdateRequestStatus(ctx context.Context, requestID string, status string) error {
	if strings.TrimSpace(status) == "" {
		return ErrMissingStatus
	}

	if err := s.requestStore.UpdateRequestStatus(ctx, requestID, status); err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	s.logger.Info("Request status updated",
		zap.String("request_id", requestID),
		zap.String("status", status))
	return nil
}

func (s *RequestService) ListRequests(ctx context.Context) ([]domain.Request, error) {
	return s.requestStore.ListRequests(ctx)
}

func missingFields(input domain.CreateRequestInput) []string {
	var missing []string
	if input.PartID == "" {
		missing = append(missing, "partId")
	}
	if input.Quantity.String() == "" {
		missing = append(missing, "quantity")
	}
	if input.RequiredDate == "" {
		missing = append(missing, "requiredDate")
	}
	if input.Priority == "" {
		missing = append(missing, "priority")
	}
	if input.Reason == "" {
		missing = append(missing, "reason")
	}
	if input.ResponsibleEmail == "" {
		missing = append(missing, "responsibleEmail")
	}
	return missing
}

// parseRequiredDate accepts RFC 3339 timestamps and bare dates.
func parseRequiredDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
