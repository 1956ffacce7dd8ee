package service

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/jefftrojan/afritrade-rev/internal/docstore"
	"github.com/jefftrojan/afritrade-rev/internal/model"
	"gorm.io/gorm"
)

type fakeOrderRepo struct {
	orders map[string]*model.Order
	// missNextFind makes the next FindByBuyerAndRequest report no match,
	// imitating a concurrent insert that has not committed yet.
	missNextFind bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*model.Order{}}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *model.Order) error {
	for _, ex := range f.orders {
		if o.RequestID != nil && ex.RequestID != nil &&
			ex.BuyerID == o.BuyerID && *ex.RequestID == *o.RequestID {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id string) (*model.Order, error) {
	if o, ok := f.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepo) FindByBuyerAndRequest(_ context.Context, buyerID uint64, requestID string) (*model.Order, error) {
	if f.missNextFind {
		f.missNextFind = false
		return nil, nil
	}
	for _, o := range f.orders {
		if o.BuyerID == buyerID && o.RequestID != nil && *o.RequestID == requestID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) ListByBuyer(_ context.Context, buyerID uint64) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		if o.BuyerID == buyerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) Update(_ context.Context, o *model.Order) error {
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) ConfirmIfBuyer(_ context.Context, id string, buyerID uint64) (int64, error) {
	o, ok := f.orders[id]
	if !ok {
		return 0, nil
	}
	if o.BuyerID != buyerID || o.Confirmed {
		return 0, nil
	}
	o.Confirmed = true
	return 1, nil
}

func (f *fakeOrderRepo) SetDB(_ *gorm.DB) {}

type fakeProductRepo struct {
	byID map[uint64]*model.Product
}

func newFakeProductRepo(products ...model.Product) *fakeProductRepo {
	f := &fakeProductRepo{byID: map[uint64]*model.Product{}}
	for i := range products {
		f.byID[products[i].ID] = &products[i]
	}
	return f
}

func (f *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	p.ID = uint64(len(f.byID) + 1)
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProductRepo) List(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepo) ListByOwner(_ context.Context, userID uint64) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.byID {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uint64) (*model.Product, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) FindByOwnerAndName(_ context.Context, userID uint64, name string) (*model.Product, error) {
	for _, p := range f.byID {
		if p.UserID == userID && p.ProductName == name {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProductRepo) DeleteByOwnerAndName(_ context.Context, userID uint64, name string) (int64, error) {
	for id, p := range f.byID {
		if p.UserID == userID && p.ProductName == name {
			delete(f.byID, id)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeProductRepo) SetDB(_ *gorm.DB) {}

// fakeRequestRepo mirrors the transactional semantics of the Firestore
// implementation: resolving twice fails, and an accept creates exactly one
// tracking record in statuses.
type fakeRequestRepo struct {
	requests map[string]*model.DeliveryRequest
	statuses *fakeStatusRepo
	seq      int
}

func newFakeRequestRepo(statuses *fakeStatusRepo) *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[string]*model.DeliveryRequest{}, statuses: statuses}
}

func (f *fakeRequestRepo) List(_ context.Context) ([]model.DeliveryRequest, error) {
	out := make([]model.DeliveryRequest, 0, len(f.requests))
	for _, r := range f.requests {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRequestRepo) ListByStatus(_ context.Context, st model.RequestStatus) ([]model.DeliveryRequest, error) {
	out := make([]model.DeliveryRequest, 0)
	for _, r := range f.requests {
		if r.Status == st {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) Get(_ context.Context, id string) (*model.DeliveryRequest, error) {
	if r, ok := f.requests[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, docstore.ErrNotFound
}

func (f *fakeRequestRepo) Create(_ context.Context, req *model.DeliveryRequest) error {
	f.seq++
	req.ID = fmt.Sprintf("req-%d", f.seq)
	if req.Status == "" {
		req.Status = model.RequestStatusPending
	}
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakeRequestRepo) Accept(_ context.Context, id string) (*model.DeliveryStatus, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	if r.Status.Resolved() {
		return nil, docstore.ErrAlreadyResolved
	}
	r.Status = model.RequestStatusAccepted
	ds := model.DeliveryStatus{
		ID:            "status-" + id,
		RequestID:     id,
		Product:       r.Product,
		Quantity:      r.Quantity,
		ClientContact: r.ClientContact,
		Date:          time.Now().UTC(),
		Status:        model.DeliveryStatePending,
	}
	f.statuses.records[ds.ID] = &ds
	return &ds, nil
}

func (f *fakeRequestRepo) Decline(_ context.Context, id string) error {
	r, ok := f.requests[id]
	if !ok {
		return docstore.ErrNotFound
	}
	if r.Status.Resolved() {
		return docstore.ErrAlreadyResolved
	}
	r.Status = model.RequestStatusDeclined
	return nil
}

func (f *fakeRequestRepo) SetClient(_ *firestore.Client) {}

type fakeStatusRepo struct {
	records map[string]*model.DeliveryStatus
}

func newFakeStatusRepo() *fakeStatusRepo {
	return &fakeStatusRepo{records: map[string]*model.DeliveryStatus{}}
}

func (f *fakeStatusRepo) ListActive(_ context.Context) ([]model.DeliveryStatus, error) {
	out := make([]model.DeliveryStatus, 0)
	for _, ds := range f.records {
		if ds.Status != model.DeliveryStateDelivered {
			out = append(out, *ds)
		}
	}
	return out, nil
}

func (f *fakeStatusRepo) ListDelivered(_ context.Context) ([]model.DeliveryStatus, error) {
	out := make([]model.DeliveryStatus, 0)
	for _, ds := range f.records {
		if ds.Status == model.DeliveryStateDelivered {
			out = append(out, *ds)
		}
	}
	return out, nil
}

func (f *fakeStatusRepo) Get(_ context.Context, id string) (*model.DeliveryStatus, error) {
	if ds, ok := f.records[id]; ok {
		cp := *ds
		return &cp, nil
	}
	return nil, docstore.ErrNotFound
}

func (f *fakeStatusRepo) UpdateState(_ context.Context, id string, next model.DeliveryState) (*model.DeliveryStatus, error) {
	ds, ok := f.records[id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	if !ds.Status.CanTransition(next) {
		return nil, docstore.ErrBadTransition
	}
	ds.Status = next
	cp := *ds
	return &cp, nil
}

func (f *fakeStatusRepo) SetClient(_ *firestore.Client) {}

// fakeNotify counts events per type and keeps the last resolved request.
type fakeNotify struct {
	events      map[string]int
	lastRequest *model.DeliveryRequest
}

func newFakeNotify() *fakeNotify {
	return &fakeNotify{events: map[string]int{}}
}

func (f *fakeNotify) OrderPlaced(_ context.Context, _ *model.Order)    { f.events["order_placed"]++ }
func (f *fakeNotify) OrderConfirmed(_ context.Context, _ *model.Order) { f.events["order_confirmed"]++ }
func (f *fakeNotify) RequestResolved(_ context.Context, _ uint64, req *model.DeliveryRequest) {
	f.events["request_"+string(req.Status)]++
	f.lastRequest = req
}
func (f *fakeNotify) DeliveryCompleted(_ context.Context, _ uint64, _ *model.DeliveryStatus) {
	f.events["delivery_completed"]++
}
func (f *fakeNotify) List(_ context.Context, _ uint64, _ bool, _ int) ([]model.Notification, error) {
	return nil, nil
}
func (f *fakeNotify) MarkAllRead(_ context.Context, _ uint64) error { return nil }
func (f *fakeNotify) CountUnread(_ context.Context, _ uint64) (int64, error) {
	return 0, nil
}
