package product

import (
	"context"
	"time"
)

// 商品状态
const (
	StatusOffline = 0 // 下架
	StatusOnline  = 1 // 在售
)

// Product 商品模型，价格单位为分
type Product struct {
	ID          int64  `gorm:"primaryKey"`
	CategoryID  int64  `gorm:"index;not null"`
	Title       string `gorm:"size:255;not null"`
	Slug        string `gorm:"uniqueIndex;size:255;not null"`
	Description string `gorm:"size:2048"`
	Price       int64  `gorm:"not null"` // 分
	Image       string `gorm:"size:512"` // 缩略图路径
	Status      int    `gorm:"index"`

	// 冰球装备属性（可选）
	AgeGroup    string  `gorm:"size:64"`  // 适用年龄段
	Flex        int     ``               // 球杆硬度
	Material    string  `gorm:"size:64"`  // 材质
	Curvature   string  `gorm:"size:64"`  // 杆刃弯曲度
	WeightGrams int     ``               // 质量（克）
	Fullness    string  `gorm:"size:64"`  // 冰鞋肥瘦度

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Available 商品是否可加入购物车
func (p *Product) Available() bool {
	return p != nil && p.Status == StatusOnline
}

// Repository 商品仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	ListAll(ctx context.Context) ([]*Product, error)
	ListOnline(ctx context.Context) ([]*Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
}
