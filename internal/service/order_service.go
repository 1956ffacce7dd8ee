package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jefftrojan/afritrade-rev/internal/docstore"
	"github.com/jefftrojan/afritrade-rev/internal/model"
	"github.com/jefftrojan/afritrade-rev/internal/repository"
	"gorm.io/gorm"
)

type CreateOrderInput struct {
	ProductID   uint64
	ProductName string
	BuyerID     uint64
	BuyerName   string
	Location    string
	Quantity    uint
	Price       string // display price, e.g. "$25.00"
	RequestID   string // optional idempotency key
}

type OrderService interface {
	// Create is the single order-creation path. Replaying the same
	// (buyer, request id) returns the original order with created=false.
	Create(ctx context.Context, in CreateOrderInput) (order *model.Order, created bool, err error)
	Get(ctx context.Context, id string) (*model.Order, error)
	ListByBuyer(ctx context.Context, buyerID uint64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	Confirm(ctx context.Context, id string, buyerID uint64) (*model.Order, error)
}

type orderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	requests docstore.DeliveryRequestRepository
	notify   NotificationService
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, requests docstore.DeliveryRequestRepository, notify NotificationService) OrderService {
	return &orderService{orders: orders, products: products, requests: requests, notify: notify}
}

// ParsePrice converts a display price like "$25.00" or "1,200" to a value.
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, errors.New("price is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	if v < 0 {
		return 0, errors.New("price must not be negative")
	}
	return v, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *orderService) Create(ctx context.Context, in CreateOrderInput) (*model.Order, bool, error) {
	if in.BuyerID == 0 {
		return nil, false, errors.New("buyer is required")
	}
	if in.ProductName == "" {
		return nil, false, errors.New("product name is required")
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	unit, err := ParsePrice(in.Price)
	if err != nil {
		return nil, false, err
	}

	if in.RequestID != "" {
		existing, err := s.orders.FindByBuyerAndRequest(ctx, in.BuyerID, in.RequestID)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, false, nil
		}
	}

	var requestID *string
	if in.RequestID != "" {
		requestID = &in.RequestID
	}
	o := &model.Order{
		ID:          "ORD-" + uuid.NewString(),
		RequestID:   requestID,
		ProductID:   in.ProductID,
		ProductName: in.ProductName,
		BuyerID:     in.BuyerID,
		BuyerName:   in.BuyerName,
		Location:    in.Location,
		Quantity:    in.Quantity,
		UnitPrice:   unit,
		TotalAmount: round2(unit * float64(in.Quantity)),
		Status:      model.OrderStatusPending,

		Carrier:           "To be assigned",
		TrackingNumber:    "To be generated",
		EstimatedDelivery: "To be calculated",
		CurrentLocation:   "Warehouse",
	}
	if err := s.orders.Create(ctx, o); err != nil {
		// Two replays of the same key can pass the lookup before either
		// insert commits; the unique index decides, and the loser returns
		// the winner's order.
		if in.RequestID != "" && errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, lookupErr := s.orders.FindByBuyerAndRequest(ctx, in.BuyerID, in.RequestID)
			if lookupErr == nil && existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}

	// Placing an order opens a delivery request for couriers. Losing it is
	// recoverable (the request can be re-created); losing the order is not,
	// so the document write does not fail the operation.
	source := in.Location
	if s.products != nil && in.ProductID != 0 {
		if p, err := s.products.FindByID(ctx, in.ProductID); err == nil {
			source = p.Location
		}
	}
	req := &model.DeliveryRequest{
		Product:       in.ProductName,
		Source:        source,
		Destination:   in.Location,
		Quantity:      int(in.Quantity),
		ClientContact: in.BuyerName,
		Status:        model.RequestStatusPending,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		log.Printf("delivery request not created for order %s: %v", o.ID, err)
	}

	if s.notify != nil {
		s.notify.OrderPlaced(ctx, o)
	}
	return o, true, nil
}

func (s *orderService) Get(ctx context.Context, id string) (*model.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *orderService) ListByBuyer(ctx context.Context, buyerID uint64) ([]model.Order, error) {
	if buyerID == 0 {
		return nil, errors.New("buyer is required")
	}
	return s.orders.ListByBuyer(ctx, buyerID)
}

func (s *orderService) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown order status %q", status)
	}
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	o.Status = status
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *orderService) Confirm(ctx context.Context, id string, buyerID uint64) (*model.Order, error) {
	rows, err := s.orders.ConfirmIfBuyer(ctx, id, buyerID)
	if err != nil {
		return nil, err
	}
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rows == 0 {
		if o.BuyerID != buyerID {
			return nil, ErrForbidden
		}
		// already confirmed; idempotent
	} else if s.notify != nil {
		s.notify.OrderConfirmed(ctx, o)
	}
	return o, nil
}
