package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/order"
)

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepo{db: db}
}

// Create 写入订单及其快照条目
func (r *orderRepo) Create(ctx context.Context, o *order.Order) error {
	db := dbFrom(ctx, r.db)
	if err := db.Create(o).Error; err != nil {
		return err
	}
	for _, it := range o.Items {
		it.OrderID = o.ID
		if err := db.Create(it).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	if err := dbFrom(ctx, r.db).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) Update(ctx context.Context, o *order.Order) error {
	return dbFrom(ctx, r.db).Save(o).Error
}

func (r *orderRepo) ListByCustomer(ctx context.Context, customerID int64) ([]*order.Order, error) {
	var list []*order.Order
	if err := dbFrom(ctx, r.db).
		Where("customer_id = ?", customerID).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepo) ListRecent(ctx context.Context, limit int) ([]*order.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	var list []*order.Order
	if err := dbFrom(ctx, r.db).
		Order("id DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepo) ListItems(ctx context.Context, orderID int64) ([]*order.Item, error) {
	var list []*order.Item
	if err := dbFrom(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
