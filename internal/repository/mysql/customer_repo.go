package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/customer"
)

type customerRepo struct {
	db *gorm.DB
}

// NewCustomerRepository 创建购买者仓储
func NewCustomerRepository(db *gorm.DB) customer.Repository {
	return &customerRepo{db: db}
}

func (r *customerRepo) GetByID(ctx context.Context, id int64) (*customer.Customer, error) {
	var c customer.Customer
	if err := dbFrom(ctx, r.db).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) GetByUserID(ctx context.Context, userID int64) (*customer.Customer, error) {
	var c customer.Customer
	if err := dbFrom(ctx, r.db).Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) Create(ctx context.Context, c *customer.Customer) error {
	return dbFrom(ctx, r.db).Create(c).Error
}

func (r *customerRepo) Update(ctx context.Context, c *customer.Customer) error {
	return dbFrom(ctx, r.db).Save(c).Error
}

func (r *customerRepo) ListAll(ctx context.Context) ([]*customer.Customer, error) {
	var list []*customer.Customer
	if err := dbFrom(ctx, r.db).Order("id DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
