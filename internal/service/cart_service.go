package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/cart"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/product"
)

// CartService 购物车逻辑：条目增删改、行小计与聚合值在同一事务内重算
type CartService struct {
	cartRepo    cart.Repository
	productRepo product.Repository
	tx          TxManager
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo cart.Repository, productRepo product.Repository, tx TxManager) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo, tx: tx}
}

// GetOrCreateForCustomer 懒创建登录用户的活跃购物车
func (s *CartService) GetOrCreateForCustomer(ctx context.Context, customerID int64) (*cart.Cart, error) {
	c, err := s.cartRepo.GetActiveByCustomer(ctx, customerID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	c = &cart.Cart{CustomerID: &customerID}
	if err := s.cartRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetOrCreateForSession 懒创建匿名会话的活跃购物车
func (s *CartService) GetOrCreateForSession(ctx context.Context, token string) (*cart.Cart, error) {
	c, err := s.cartRepo.GetActiveBySession(ctx, token)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	c = &cart.Cart{SessionToken: token, ForAnonymousUser: true}
	if err := s.cartRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get 返回带条目的购物车
func (s *CartService) Get(ctx context.Context, cartID int64) (*cart.Cart, error) {
	c, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	items, err := s.cartRepo.ListItems(ctx, cartID)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return c, nil
}

// SetItem 设置 (cart, product) 条目的数量；qty <= 0 等价于删除该条目。
// 行小计按当前商品单价重算，聚合值在同一事务内跟随重算。
func (s *CartService) SetItem(ctx context.Context, cartID, productID, qty int64) (*cart.Cart, error) {
	if qty <= 0 {
		return s.RemoveItem(ctx, cartID, productID)
	}

	var result *cart.Cart
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		c, err := s.lockOpenCart(ctx, cartID)
		if err != nil {
			return err
		}

		p, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductUnavailable
			}
			return err
		}
		if !p.Available() {
			return ErrProductUnavailable
		}

		it, err := s.cartRepo.GetItem(ctx, cartID, productID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			it = &cart.Item{CartID: cartID, ProductID: productID}
		}
		it.Quantity = qty
		it.UnitPrice = p.Price
		it.LineTotal = qty * p.Price
		if err := s.cartRepo.SaveItem(ctx, it); err != nil {
			return err
		}

		result, err = s.recompute(ctx, c)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddItem 在现有数量上累加 qty（加入购物车按钮），qty 必须为正
func (s *CartService) AddItem(ctx context.Context, cartID, productID, qty int64) (*cart.Cart, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	var current int64
	if it, err := s.cartRepo.GetItem(ctx, cartID, productID); err == nil {
		current = it.Quantity
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.SetItem(ctx, cartID, productID, current+qty)
}

// RemoveItem 删除条目并重算聚合值
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID int64) (*cart.Cart, error) {
	var result *cart.Cart
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		c, err := s.lockOpenCart(ctx, cartID)
		if err != nil {
			return err
		}
		if err := s.cartRepo.DeleteItem(ctx, cartID, productID); err != nil {
			return err
		}
		result, err = s.recompute(ctx, c)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// lockOpenCart 行锁读取购物车并校验未被下单冻结
func (s *CartService) lockOpenCart(ctx context.Context, cartID int64) (*cart.Cart, error) {
	c, err := s.cartRepo.GetByIDForUpdate(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("load cart %d: %w", cartID, err)
	}
	if c.InOrder {
		return nil, ErrCartAlreadyOrdered
	}
	return c, nil
}

// recompute 以当前条目集合重算聚合值并保存
func (s *CartService) recompute(ctx context.Context, c *cart.Cart) (*cart.Cart, error) {
	items, err := s.cartRepo.ListItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Recompute(items)
	if err := s.cartRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	c.Items = items
	return c, nil
}
