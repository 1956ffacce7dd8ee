package docstore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/jefftrojan/afritrade-rev/internal/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type DeliveryStatusRepository interface {
	ListActive(ctx context.Context) ([]model.DeliveryStatus, error)
	ListDelivered(ctx context.Context) ([]model.DeliveryStatus, error)
	Get(ctx context.Context, id string) (*model.DeliveryStatus, error)
	UpdateState(ctx context.Context, id string, next model.DeliveryState) (*model.DeliveryStatus, error)
	SetClient(c *firestore.Client)
}

type deliveryStatusRepository struct {
	client *firestore.Client
}

func NewDeliveryStatusRepository(c *firestore.Client) DeliveryStatusRepository {
	return &deliveryStatusRepository{client: c}
}

// ListActive fetches the full collection and filters in process: documents
// without a status field count as Pending, which a != query would skip.
func (r *deliveryStatusRepository) ListActive(ctx context.Context) ([]model.DeliveryStatus, error) {
	if r.client == nil {
		return nil, ErrStoreNotReady
	}
	all, err := collectStatuses(r.client.Collection(statusCollection).Documents(ctx))
	if err != nil {
		return nil, err
	}
	active := make([]model.DeliveryStatus, 0, len(all))
	for _, ds := range all {
		if ds.Status != model.DeliveryStateDelivered {
			active = append(active, ds)
		}
	}
	return active, nil
}

func (r *deliveryStatusRepository) ListDelivered(ctx context.Context) ([]model.DeliveryStatus, error) {
	if r.client == nil {
		return nil, ErrStoreNotReady
	}
	it := r.client.Collection(statusCollection).
		Where("status", "==", string(model.DeliveryStateDelivered)).
		Documents(ctx)
	return collectStatuses(it)
}

func collectStatuses(it *firestore.DocumentIterator) ([]model.DeliveryStatus, error) {
	defer it.Stop()
	out := make([]model.DeliveryStatus, 0)
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, decodeDeliveryStatus(snap.Ref.ID, snap.Data()))
	}
	return out, nil
}

func (r *deliveryStatusRepository) Get(ctx context.Context, id string) (*model.DeliveryStatus, error) {
	if r.client == nil {
		return nil, ErrStoreNotReady
	}
	snap, err := r.client.Collection(statusCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	ds := decodeDeliveryStatus(snap.Ref.ID, snap.Data())
	return &ds, nil
}

// UpdateState applies the forward-only transition check inside a
// transaction; two couriers racing on the same record cannot regress it.
func (r *deliveryStatusRepository) UpdateState(ctx context.Context, id string, next model.DeliveryState) (*model.DeliveryStatus, error) {
	if r.client == nil {
		return nil, ErrStoreNotReady
	}
	var updated model.DeliveryStatus
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := r.client.Collection(statusCollection).Doc(id)
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		ds := decodeDeliveryStatus(snap.Ref.ID, snap.Data())
		if !ds.Status.CanTransition(next) {
			return ErrBadTransition
		}
		ds.Status = next
		updated = ds
		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: string(next)},
		})
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *deliveryStatusRepository) SetClient(c *firestore.Client) {
	r.client = c
}
