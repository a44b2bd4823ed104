package cart

import (
	"context"
	"time"
)

// Item 购物车条目，LineTotal 为派生值，任何数量/商品变更时重算
type Item struct {
	ID        int64 `gorm:"primaryKey"`
	CartID    int64 `gorm:"index:idx_cart_product,unique;not null"`
	ProductID int64 `gorm:"index:idx_cart_product,unique;not null"`
	Quantity  int64 `gorm:"not null"` // 始终 >= 1
	UnitPrice int64 `gorm:"not null"` // 最近一次变更时的商品单价（分）
	LineTotal int64 `gorm:"not null"` // Quantity * UnitPrice（分）
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Cart 购物车聚合。TotalItemCount / TotalPrice 必须与当前条目集合一致，
// 在同一事务内随条目变更一起重算。
type Cart struct {
	ID               int64  `gorm:"primaryKey"`
	CustomerID       *int64 `gorm:"index"`                 // 登录用户的购物车
	SessionToken     string `gorm:"index;size:128"`        // 匿名购物车的会话标识
	ForAnonymousUser bool   ``
	TotalItemCount   int64  `gorm:"not null"`
	TotalPrice       int64  `gorm:"not null"` // 分
	InOrder          bool   `gorm:"index"`    // 生成订单后置为 true，购物车即冻结
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Items []*Item `gorm:"-"` // 由仓储装配，不作为关联列
}

// Recompute 依据条目集合重算聚合值，空车归零
func (c *Cart) Recompute(items []*Item) {
	var count, total int64
	for _, it := range items {
		count += it.Quantity
		total += it.LineTotal
	}
	c.TotalItemCount = count
	c.TotalPrice = total
}

// Repository 购物车仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Cart, error)
	// GetByIDForUpdate 在事务内加行锁读取，用于聚合重算期间防止并发写
	GetByIDForUpdate(ctx context.Context, id int64) (*Cart, error)
	GetActiveByCustomer(ctx context.Context, customerID int64) (*Cart, error)
	GetActiveBySession(ctx context.Context, token string) (*Cart, error)
	Create(ctx context.Context, c *Cart) error
	Update(ctx context.Context, c *Cart) error

	GetItem(ctx context.Context, cartID, productID int64) (*Item, error)
	ListItems(ctx context.Context, cartID int64) ([]*Item, error)
	SaveItem(ctx context.Context, it *Item) error
	DeleteItem(ctx context.Context, cartID, productID int64) error
}
