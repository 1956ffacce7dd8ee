package service

import (
	"context"
	"io"

	"github.com/jefftrojan/afritrade-rev/internal/docstore"
	"github.com/jefftrojan/afritrade-rev/internal/model"
	"github.com/jefftrojan/afritrade-rev/internal/storage"
)

type ProfileService interface {
	Get(ctx context.Context, session ProfileOwner) (*model.CourierProfile, error)
	Update(ctx context.Context, session ProfileOwner, p *model.CourierProfile) error
	// AttachLicense stores the uploaded document and records its URL on the
	// profile. Returns the stored URL.
	AttachLicense(ctx context.Context, session ProfileOwner, filename, contentType string, r io.Reader) (string, error)
}

// ProfileOwner identifies whose document is touched; profiles are keyed by
// the courier's user id.
type ProfileOwner struct {
	UID   string
	Name  string
	Email string
}

type profileService struct {
	profiles docstore.CourierProfileRepository
	uploads  storage.Uploader
}

func NewProfileService(profiles docstore.CourierProfileRepository, uploads storage.Uploader) ProfileService {
	return &profileService{profiles: profiles, uploads: uploads}
}

func (s *profileService) Get(ctx context.Context, owner ProfileOwner) (*model.CourierProfile, error) {
	return s.profiles.Get(ctx, owner.UID, owner.Name, owner.Email)
}

func (s *profileService) Update(ctx context.Context, owner ProfileOwner, p *model.CourierProfile) error {
	p.UserID = owner.UID
	return s.profiles.Update(ctx, p)
}

func (s *profileService) AttachLicense(ctx context.Context, owner ProfileOwner, filename, contentType string, r io.Reader) (string, error) {
	if s.uploads == nil {
		return "", storage.ErrNotConfigured
	}
	url, err := s.uploads.Upload(ctx, "licenses/"+owner.UID, filename, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.profiles.SetLicense(ctx, owner.UID, url); err != nil {
		return "", err
	}
	return url, nil
}
