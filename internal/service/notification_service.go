package service

import (
	"context"
	"fmt"
	"log"

	"github.com/jefftrojan/afritrade-rev/internal/model"
	"github.com/jefftrojan/afritrade-rev/internal/repository"
)

// NotificationService records events users see as banners. Writes are best
// effort; a lost notification never fails the triggering operation.
type NotificationService interface {
	OrderPlaced(ctx context.Context, o *model.Order)
	OrderConfirmed(ctx context.Context, o *model.Order)
	RequestResolved(ctx context.Context, courierID uint64, req *model.DeliveryRequest)
	DeliveryCompleted(ctx context.Context, courierID uint64, ds *model.DeliveryStatus)
	List(ctx context.Context, userID uint64, unreadOnly bool, limit int) ([]model.Notification, error)
	MarkAllRead(ctx context.Context, userID uint64) error
	CountUnread(ctx context.Context, userID uint64) (int64, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) create(ctx context.Context, n *model.Notification) {
	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("notification dropped (type=%s user=%d): %v", n.Type, n.UserID, err)
	}
}

func (s *notificationService) OrderPlaced(ctx context.Context, o *model.Order) {
	s.create(ctx, &model.Notification{
		UserID:  o.BuyerID,
		Type:    "order_placed",
		Title:   "Order placed",
		Body:    fmt.Sprintf("Order %s for %s was placed successfully.", o.ID, o.ProductName),
		OrderID: &o.ID,
	})
}

func (s *notificationService) OrderConfirmed(ctx context.Context, o *model.Order) {
	s.create(ctx, &model.Notification{
		UserID:  o.BuyerID,
		Type:    "order_confirmed",
		Title:   "Order confirmed",
		Body:    fmt.Sprintf("You confirmed receipt of order %s.", o.ID),
		OrderID: &o.ID,
	})
}

func (s *notificationService) RequestResolved(ctx context.Context, courierID uint64, req *model.DeliveryRequest) {
	s.create(ctx, &model.Notification{
		UserID:    courierID,
		Type:      "request_" + string(req.Status),
		Title:     fmt.Sprintf("Delivery request %s", req.Status),
		Body:      fmt.Sprintf("%s from %s to %s.", req.Product, req.Source, req.Destination),
		RequestID: &req.ID,
	})
}

func (s *notificationService) DeliveryCompleted(ctx context.Context, courierID uint64, ds *model.DeliveryStatus) {
	s.create(ctx, &model.Notification{
		UserID:    courierID,
		Type:      "delivery_completed",
		Title:     "Delivery completed",
		Body:      fmt.Sprintf("%s (x%d) was delivered.", ds.Product, ds.Quantity),
		RequestID: &ds.RequestID,
	})
}

func (s *notificationService) List(ctx context.Context, userID uint64, unreadOnly bool, limit int) ([]model.Notification, error) {
	return s.repo.ListByUser(ctx, userID, unreadOnly, limit)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uint64) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *notificationService) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
