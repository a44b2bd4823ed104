package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/product"
)

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepo{db: db}
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	var p product.Product
	if err := dbFrom(ctx, r.db).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) GetBySlug(ctx context.Context, slug string) (*product.Product, error) {
	var p product.Product
	if err := dbFrom(ctx, r.db).Where("slug = ?", slug).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) ListAll(ctx context.Context) ([]*product.Product, error) {
	var list []*product.Product
	if err := dbFrom(ctx, r.db).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *productRepo) ListOnline(ctx context.Context) ([]*product.Product, error) {
	var list []*product.Product
	if err := dbFrom(ctx, r.db).
		Where("status = ?", product.StatusOnline).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *productRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*product.Product, error) {
	var list []*product.Product
	if err := dbFrom(ctx, r.db).
		Where("status = ? AND category_id = ?", product.StatusOnline, categoryID).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *productRepo) Create(ctx context.Context, p *product.Product) error {
	return dbFrom(ctx, r.db).Create(p).Error
}

func (r *productRepo) Update(ctx context.Context, p *product.Product) error {
	return dbFrom(ctx, r.db).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	return dbFrom(ctx, r.db).Delete(&product.Product{}, id).Error
}
