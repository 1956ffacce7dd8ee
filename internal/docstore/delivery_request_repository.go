package docstore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/jefftrojan/afritrade-rev/internal/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type DeliveryRequestRepository interface {
	List(ctx context.Context) ([]model.DeliveryRequest, error)
	ListByStatus(ctx context.Context, st model.RequestStatus) ([]model.DeliveryRequest, error)
	Get(ctx context.Context, id string) (*model.DeliveryRequest, error)
	Create(ctx context.Context, req *model.DeliveryRequest) error
	Accept(ctx context.Context, id string) (*model.DeliveryStatus, error)
	Decline(ctx context.Context, id string) error
	SetClient(c *firestore.Client)
}

type deliveryRequestRepository struct {
	client *firestore.Client
}

func NewDeliveryRequestRepository(c *firestore.Client) DeliveryRequestRepository {
	return &deliveryRequestRepository{client: c}
}

func (r *deliveryRequestRepository) List(ctx context.Context) ([]model.DeliveryRequest, error) {
	if r.client == nil {
		return nil, ErrStoreNotReady
	}
	return collectRequests(r.client.Collection(requestsCollection).Documents(ctx))
}

func (r *deliveryRequestRepository) ListByStatus(ctx context.Context, st model.RequestStatus) ([]model.DeliveryRequest, error) {
	if r.client == nil {
		return nil, ErrStoreNotReady
	}
	it := r.client.Collection(requestsCollection).
		Where("status", "==", string(st)).
		Documents(ctx)
	return collectRequests(it)
}

func collectRequests(it *firestore.DocumentIterator) ([]model.DeliveryRequest, error) {
	defer it.Stop()
	out := make([]model.DeliveryRequest, 0)
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, decodeDeliveryRequest(snap.Ref.ID, snap.Data()))
	}
	return out, nil
}

func (r *deliveryRequestRepository) Get(ctx context.Context, id string) (*model.DeliveryRequest, error) {
	if r.client == nil {
		return nil, ErrStoreNotReady
	}
	snap, err := r.client.Collection(requestsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	req := decodeDeliveryRequest(snap.Ref.ID, snap.Data())
	return &req, nil
}

func (r *deliveryRequestRepository) Create(ctx context.Context, req *model.DeliveryRequest) error {
	if r.client == nil {
		return ErrStoreNotReady
	}
	if req.Status == "" {
		req.Status = model.RequestStatusPending
	}
	ref := r.client.Collection(requestsCollection).NewDoc()
	req.ID = ref.ID
	_, err := ref.Create(ctx, requestDoc(req))
	return err
}

// Accept transitions a Pending request to AcceptedRequest and creates the
// linked tracking document in the same transaction, so a request that leaves
// Pending produces exactly one DeliveryStatus record and concurrent accepts
// lose with ErrAlreadyResolved instead of double-writing.
func (r *deliveryRequestRepository) Accept(ctx context.Context, id string) (*model.DeliveryStatus, error) {
	if r.client == nil {
		return nil, ErrStoreNotReady
	}
	var created model.DeliveryStatus
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := r.client.Collection(requestsCollection).Doc(id)
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		req := decodeDeliveryRequest(snap.Ref.ID, snap.Data())
		if req.Status.Resolved() {
			return ErrAlreadyResolved
		}
		statusRef := r.client.Collection(statusCollection).NewDoc()
		created = model.DeliveryStatus{
			ID:            statusRef.ID,
			RequestID:     id,
			Product:       req.Product,
			Quantity:      req.Quantity,
			ClientContact: req.ClientContact,
			Date:          time.Now().UTC(),
			Status:        model.DeliveryStatePending,
		}
		if err := tx.Update(ref, []firestore.Update{
			{Path: "status", Value: string(model.RequestStatusAccepted)},
		}); err != nil {
			return err
		}
		return tx.Create(statusRef, statusDoc(&created))
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *deliveryRequestRepository) Decline(ctx context.Context, id string) error {
	if r.client == nil {
		return ErrStoreNotReady
	}
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := r.client.Collection(requestsCollection).Doc(id)
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		req := decodeDeliveryRequest(snap.Ref.ID, snap.Data())
		if req.Status.Resolved() {
			return ErrAlreadyResolved
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: string(model.RequestStatusDeclined)},
		})
	})
}

func (r *deliveryRequestRepository) SetClient(c *firestore.Client) {
	r.client = c
}
