package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jefftrojan/afritrade-rev/internal/docstore"
	"github.com/jefftrojan/afritrade-rev/internal/model"
)

type DeliveryService interface {
	ListRequests(ctx context.Context) ([]model.DeliveryRequest, error)
	ListConfirmedRequests(ctx context.Context) ([]model.DeliveryRequest, error)
	CreateRequest(ctx context.Context, req *model.DeliveryRequest) error
	Accept(ctx context.Context, requestID string, courierID uint64) (*model.DeliveryStatus, error)
	Decline(ctx context.Context, requestID string, courierID uint64) (*model.DeliveryRequest, error)

	ListActive(ctx context.Context) ([]model.DeliveryStatus, error)
	ListDelivered(ctx context.Context) ([]model.DeliveryStatus, error)
	UpdateDeliveryState(ctx context.Context, id string, next model.DeliveryState, courierID uint64) (*model.DeliveryStatus, error)
}

type deliveryService struct {
	requests docstore.DeliveryRequestRepository
	statuses docstore.DeliveryStatusRepository
	notify   NotificationService
}

func NewDeliveryService(requests docstore.DeliveryRequestRepository, statuses docstore.DeliveryStatusRepository, notify NotificationService) DeliveryService {
	return &deliveryService{requests: requests, statuses: statuses, notify: notify}
}

func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, docstore.ErrAlreadyResolved):
		return ErrAlreadyResolved
	case errors.Is(err, docstore.ErrBadTransition):
		return ErrBadTransition
	default:
		return err
	}
}

func (s *deliveryService) ListRequests(ctx context.Context) ([]model.DeliveryRequest, error) {
	return s.requests.List(ctx)
}

func (s *deliveryService) ListConfirmedRequests(ctx context.Context) ([]model.DeliveryRequest, error) {
	return s.requests.ListByStatus(ctx, model.RequestStatusAccepted)
}

func (s *deliveryService) CreateRequest(ctx context.Context, req *model.DeliveryRequest) error {
	req.Product = strings.TrimSpace(req.Product)
	if req.Product == "" {
		return errors.New("product is required")
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}
	req.Status = model.RequestStatusPending
	return s.requests.Create(ctx, req)
}

// Accept resolves the request and returns the single tracking record the
// transition created.
func (s *deliveryService) Accept(ctx context.Context, requestID string, courierID uint64) (*model.DeliveryStatus, error) {
	ds, err := s.requests.Accept(ctx, requestID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if s.notify != nil {
		req, err := s.requests.Get(ctx, requestID)
		if err != nil {
			req = &model.DeliveryRequest{
				ID:      requestID,
				Product: ds.Product,
				Status:  model.RequestStatusAccepted,
			}
		}
		s.notify.RequestResolved(ctx, courierID, req)
	}
	return ds, nil
}

// Decline marks the request Declined; the record stays listed with the
// updated label rather than disappearing.
func (s *deliveryService) Decline(ctx context.Context, requestID string, courierID uint64) (*model.DeliveryRequest, error) {
	if err := s.requests.Decline(ctx, requestID); err != nil {
		return nil, mapStoreErr(err)
	}
	req, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if s.notify != nil {
		s.notify.RequestResolved(ctx, courierID, req)
	}
	return req, nil
}

func (s *deliveryService) ListActive(ctx context.Context) ([]model.DeliveryStatus, error) {
	return s.statuses.ListActive(ctx)
}

func (s *deliveryService) ListDelivered(ctx context.Context) ([]model.DeliveryStatus, error) {
	return s.statuses.ListDelivered(ctx)
}

func (s *deliveryService) UpdateDeliveryState(ctx context.Context, id string, next model.DeliveryState, courierID uint64) (*model.DeliveryStatus, error) {
	if !next.Valid() {
		return nil, ErrBadTransition
	}
	ds, err := s.statuses.UpdateState(ctx, id, next)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if next == model.DeliveryStateDelivered && s.notify != nil {
		s.notify.DeliveryCompleted(ctx, courierID, ds)
	}
	return ds, nil
}
