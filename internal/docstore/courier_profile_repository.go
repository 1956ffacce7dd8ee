package docstore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/jefftrojan/afritrade-rev/internal/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type CourierProfileRepository interface {
	// Get returns the profile for uid, creating an empty document on first
	// access so the profile screen always has something to render.
	Get(ctx context.Context, uid, name, email string) (*model.CourierProfile, error)
	Update(ctx context.Context, p *model.CourierProfile) error
	SetLicense(ctx context.Context, uid, licenseURL string) error
	SetClient(c *firestore.Client)
}

type courierProfileRepository struct {
	client *firestore.Client
}

func NewCourierProfileRepository(c *firestore.Client) CourierProfileRepository {
	return &courierProfileRepository{client: c}
}

func decodeProfile(uid string, data map[string]interface{}) model.CourierProfile {
	p := model.CourierProfile{
		UserID:     uid,
		Name:       coerceString(data["name"]),
		Email:      coerceString(data["email"]),
		Phone:      coerceString(data["phone"]),
		Vehicle:    coerceString(data["vehicle"]),
		LicenseURL: coerceString(data["license"]),
	}
	if raw, ok := data["availability"].([]interface{}); ok {
		for _, v := range raw {
			p.Availability = append(p.Availability, coerceString(v))
		}
	}
	return p
}

func profileDoc(p *model.CourierProfile) map[string]interface{} {
	avail := p.Availability
	if avail == nil {
		avail = []string{}
	}
	return map[string]interface{}{
		"name":         p.Name,
		"email":        p.Email,
		"phone":        p.Phone,
		"vehicle":      p.Vehicle,
		"availability": avail,
		"license":      p.LicenseURL,
	}
}

func (r *courierProfileRepository) Get(ctx context.Context, uid, name, email string) (*model.CourierProfile, error) {
	if r.client == nil {
		return nil, ErrStoreNotReady
	}
	ref := r.client.Collection(usersCollection).Doc(uid)
	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			return nil, err
		}
		p := &model.CourierProfile{UserID: uid, Name: name, Email: email}
		if _, err := ref.Create(ctx, profileDoc(p)); err != nil {
			return nil, err
		}
		return p, nil
	}
	p := decodeProfile(uid, snap.Data())
	return &p, nil
}

func (r *courierProfileRepository) Update(ctx context.Context, p *model.CourierProfile) error {
	if r.client == nil {
		return ErrStoreNotReady
	}
	_, err := r.client.Collection(usersCollection).Doc(p.UserID).Set(ctx, profileDoc(p))
	return err
}

func (r *courierProfileRepository) SetLicense(ctx context.Context, uid, licenseURL string) error {
	if r.client == nil {
		return ErrStoreNotReady
	}
	_, err := r.client.Collection(usersCollection).Doc(uid).Set(ctx, map[string]interface{}{
		"license": licenseURL,
	}, firestore.MergeAll)
	return err
}

func (r *courierProfileRepository) SetClient(c *firestore.Client) {
	r.client = c
}
