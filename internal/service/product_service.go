package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/jefftrojan/afritrade-rev/internal/ai"
	"github.com/jefftrojan/afritrade-rev/internal/model"
	"github.com/jefftrojan/afritrade-rev/internal/repository"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(ctx context.Context, p *model.Product) error
	List(ctx context.Context) ([]model.Product, error)
	ListByOwner(ctx context.Context, userID uint64) ([]model.Product, error)
	Get(ctx context.Context, id uint64) (*model.Product, error)
	Update(ctx context.Context, userID uint64, name string, updated *model.Product) (*model.Product, error)
	Delete(ctx context.Context, userID uint64, name string) error
}

type productService struct {
	repo    repository.ProductRepository
	details *ai.DetailClient
}

func NewProductService(repo repository.ProductRepository, details *ai.DetailClient) ProductService {
	return &productService{repo: repo, details: details}
}

func (s *productService) Create(ctx context.Context, p *model.Product) error {
	p.ProductName = strings.TrimSpace(p.ProductName)
	if p.ProductName == "" || len(p.ProductName) > 120 {
		return errors.New("invalid product name")
	}
	if p.UserID == 0 {
		return errors.New("user_id is required")
	}
	if existing, err := s.repo.FindByOwnerAndName(ctx, p.UserID, p.ProductName); err == nil && existing != nil {
		return errors.New("product already exists")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if p.ProductDetails == "" && s.details != nil {
		genCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if text, err := s.details.Generate(genCtx, p.ProductName); err == nil {
			p.ProductDetails = text
		} else {
			log.Printf("product details generation skipped: %v", err)
		}
	}
	return s.repo.Create(ctx, p)
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	return s.repo.List(ctx)
}

func (s *productService) ListByOwner(ctx context.Context, userID uint64) ([]model.Product, error) {
	return s.repo.ListByOwner(ctx, userID)
}

func (s *productService) Get(ctx context.Context, id uint64) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *productService) Update(ctx context.Context, userID uint64, name string, updated *model.Product) (*model.Product, error) {
	p, err := s.repo.FindByOwnerAndName(ctx, userID, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if updated.ProductName != "" {
		p.ProductName = strings.TrimSpace(updated.ProductName)
	}
	if updated.Location != "" {
		p.Location = updated.Location
	}
	if updated.SupplierName != "" {
		p.SupplierName = updated.SupplierName
	}
	if updated.ProductDetails != "" {
		p.ProductDetails = updated.ProductDetails
	}
	if updated.ImageURL != "" {
		p.ImageURL = updated.ImageURL
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) Delete(ctx context.Context, userID uint64, name string) error {
	rows, err := s.repo.DeleteByOwnerAndName(ctx, userID, strings.TrimSpace(name))
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
