package order

import (
	"context"
	"time"
)

// Status 订单状态，只允许沿固定顺序向前流转
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusReady      Status = "ready"
	StatusCompleted  Status = "completed"
)

// Next 返回当前状态的直接后继，completed 没有后继
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusNew:
		return StatusInProgress, true
	case StatusInProgress:
		return StatusReady, true
	case StatusReady:
		return StatusCompleted, true
	default:
		return "", false
	}
}

// Valid 是否为已定义的状态值
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusReady, StatusCompleted:
		return true
	}
	return false
}

// CanAdvanceTo 仅允许流转到直接后继
func (s Status) CanAdvanceTo(target Status) bool {
	next, ok := s.Next()
	return ok && next == target
}

// BuyingType 收货方式，下单时确定且不再变更
type BuyingType string

const (
	BuyingTypeSelf     BuyingType = "self"     // 自提
	BuyingTypeDelivery BuyingType = "delivery" // 配送
)

// Valid 是否为已定义的收货方式
func (b BuyingType) Valid() bool {
	return b == BuyingTypeSelf || b == BuyingTypeDelivery
}

// Item 订单条目，下单时从购物车快照而来；
// 商品后续改价/下架不影响历史订单。
type Item struct {
	ID           int64  `gorm:"primaryKey"`
	OrderID      int64  `gorm:"index;not null"`
	ProductID    int64  `gorm:"index;not null"`
	ProductTitle string `gorm:"size:255;not null"`
	UnitPrice    int64  `gorm:"not null"` // 下单时单价（分）
	Quantity     int64  `gorm:"not null"`
	LineTotal    int64  `gorm:"not null"` // 分
	CreatedAt    time.Time
}

// Order 订单模型，创建后仅状态可变，永不删除
type Order struct {
	ID         int64      `gorm:"primaryKey"`
	CustomerID int64      `gorm:"index;not null"`
	CartID     int64      `gorm:"index;not null"`
	FirstName  string     `gorm:"size:255;not null"`
	LastName   string     `gorm:"size:255;not null"`
	Phone      string     `gorm:"size:20;not null"`
	Address    string     `gorm:"size:1024"`
	Comment    string     `gorm:"size:2048"`
	Status     Status     `gorm:"size:32;index;not null"`
	BuyingType BuyingType `gorm:"size:32;not null"`

	// 下单时的购物车快照
	TotalItemCount int64 `gorm:"not null"`
	TotalPrice     int64 `gorm:"not null"` // 分

	OrderDate time.Time `gorm:"not null"` // 期望收货/自提日期
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []*Item `gorm:"-"` // 由仓储装配
}

// Repository 订单仓储接口
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	Update(ctx context.Context, o *Order) error
	ListByCustomer(ctx context.Context, customerID int64) ([]*Order, error)
	ListRecent(ctx context.Context, limit int) ([]*Order, error)
	ListItems(ctx context.Context, orderID int64) ([]*Item, error)
}
