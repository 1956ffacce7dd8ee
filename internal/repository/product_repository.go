package repository

import (
	"context"

	"github.com/jefftrojan/afritrade-rev/internal/model"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	List(ctx context.Context) ([]model.Product, error)
	ListByOwner(ctx context.Context, userID uint64) ([]model.Product, error)
	FindByID(ctx context.Context, id uint64) (*model.Product, error)
	// Products are keyed by (owner, name) on the wire, matching the
	// original API contract.
	FindByOwnerAndName(ctx context.Context, userID uint64, name string) (*model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	DeleteByOwnerAndName(ctx context.Context, userID uint64, name string) (int64, error)
	SetDB(db *gorm.DB)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Product
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *productRepository) ListByOwner(ctx context.Context, userID uint64) ([]model.Product, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Product
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *productRepository) FindByID(ctx context.Context, id uint64) (*model.Product, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var p model.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) FindByOwnerAndName(ctx context.Context, userID uint64, name string) (*model.Product, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var p model.Product
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_name = ?", userID, name).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepository) DeleteByOwnerAndName(ctx context.Context, userID uint64, name string) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_name = ?", userID, name).
		Delete(&model.Product{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *productRepository) SetDB(db *gorm.DB) {
	r.db = db
}
