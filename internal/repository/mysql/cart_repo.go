package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/cart"
)

type cartRepo struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepo{db: db}
}

func (r *cartRepo) GetByID(ctx context.Context, id int64) (*cart.Cart, error) {
	var c cart.Cart
	if err := dbFrom(ctx, r.db).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cartRepo) GetByIDForUpdate(ctx context.Context, id int64) (*cart.Cart, error) {
	var c cart.Cart
	if err := dbFrom(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cartRepo) GetActiveByCustomer(ctx context.Context, customerID int64) (*cart.Cart, error) {
	var c cart.Cart
	if err := dbFrom(ctx, r.db).
		Where("customer_id = ? AND in_order = ?", customerID, false).
		Order("id DESC").
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cartRepo) GetActiveBySession(ctx context.Context, token string) (*cart.Cart, error) {
	var c cart.Cart
	if err := dbFrom(ctx, r.db).
		Where("session_token = ? AND for_anonymous_user = ? AND in_order = ?", token, true, false).
		Order("id DESC").
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cartRepo) Create(ctx context.Context, c *cart.Cart) error {
	return dbFrom(ctx, r.db).Create(c).Error
}

func (r *cartRepo) Update(ctx context.Context, c *cart.Cart) error {
	return dbFrom(ctx, r.db).Save(c).Error
}

func (r *cartRepo) GetItem(ctx context.Context, cartID, productID int64) (*cart.Item, error) {
	var it cart.Item
	if err := dbFrom(ctx, r.db).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *cartRepo) ListItems(ctx context.Context, cartID int64) ([]*cart.Item, error) {
	var list []*cart.Item
	if err := dbFrom(ctx, r.db).
		Where("cart_id = ?", cartID).
		Order("id").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *cartRepo) SaveItem(ctx context.Context, it *cart.Item) error {
	return dbFrom(ctx, r.db).Save(it).Error
}

func (r *cartRepo) DeleteItem(ctx context.Context, cartID, productID int64) error {
	return dbFrom(ctx, r.db).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&cart.Item{}).Error
}
