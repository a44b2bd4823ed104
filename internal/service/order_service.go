package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/order"
)

// OrderService 订单查询与状态流转
type OrderService struct {
	repo order.Repository
}

// NewOrderService 创建订单服务
func NewOrderService(repo order.Repository) *OrderService {
	return &OrderService{repo: repo}
}

// GetByID 返回带快照条目的订单
func (s *OrderService) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

// ListByCustomer 查询某购买者的全部订单
func (s *OrderService) ListByCustomer(ctx context.Context, customerID int64) ([]*order.Order, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

// ListRecent 查询最新的订单记录（后台）
func (s *OrderService) ListRecent(ctx context.Context, limit int) ([]*order.Order, error) {
	return s.repo.ListRecent(ctx, limit)
}

// AdvanceStatus 推进订单状态。只接受当前状态的直接后继，
// new → in_progress → ready → completed，不允许跳跃或回退。
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID int64, target order.Status) (*order.Order, error) {
	if !target.Valid() {
		return nil, ErrInvalidStatusTransition
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanAdvanceTo(target) {
		return nil, ErrInvalidStatusTransition
	}

	from := o.Status
	o.Status = target
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	zap.L().Info("order status advanced",
		zap.Int64("order_id", o.ID),
		zap.String("from", string(from)),
		zap.String("to", string(target)))
	return o, nil
}
