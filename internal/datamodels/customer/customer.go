package customer

import (
	"context"
	"time"
)

// Customer 购买者档案，关联登录用户并保存联系方式
type Customer struct {
	ID        int64  `gorm:"primaryKey"`
	UserID    int64  `gorm:"uniqueIndex;not null"`
	Phone     string `gorm:"size:20"`
	Address   string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository 购买者仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Customer, error)
	GetByUserID(ctx context.Context, userID int64) (*Customer, error)
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	ListAll(ctx context.Context) ([]*Customer, error)
}
