package service

import (
	"context"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/customer"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/order"
)

// CustomerService 购买者档案与个人中心
type CustomerService struct {
	repo      customer.Repository
	orderRepo order.Repository
}

func NewCustomerService(repo customer.Repository, orderRepo order.Repository) *CustomerService {
	return &CustomerService{repo: repo, orderRepo: orderRepo}
}

// GetByUserID 按登录用户取购买者档案
func (s *CustomerService) GetByUserID(ctx context.Context, userID int64) (*customer.Customer, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// UpdateContact 更新联系方式
func (s *CustomerService) UpdateContact(ctx context.Context, customerID int64, phone, address string) (*customer.Customer, error) {
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	c.Phone = phone
	c.Address = address
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListOrders 个人中心的历史订单
func (s *CustomerService) ListOrders(ctx context.Context, customerID int64) ([]*order.Order, error) {
	return s.orderRepo.ListByCustomer(ctx, customerID)
}
