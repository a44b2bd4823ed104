package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/cart"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/order"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/product"
)

// OrderEventsQueue 订单事件队列名，cmd/notify-worker 消费
const OrderEventsQueue = "order_events"

// OrderCreatedEvent 下单成功后发布的通知事件
type OrderCreatedEvent struct {
	OrderID    int64  `json:"order_id"`
	CustomerID int64  `json:"customer_id"`
	TotalPrice int64  `json:"total_price"` // 分
	BuyingType string `json:"buying_type"`
	CreatedAt  string `json:"created_at"`
}

// CheckoutForm 结算页提交的联系信息
type CheckoutForm struct {
	FirstName  string
	LastName   string
	Phone      string
	Address    string
	Comment    string
	BuyingType order.BuyingType
	OrderDate  time.Time
}

// CheckoutService 把购物车转成订单：校验、快照、冻结购物车，全部在一个事务内
type CheckoutService struct {
	cartRepo    cart.Repository
	productRepo product.Repository
	orderRepo   order.Repository
	tx          TxManager
	mqConn      *amqp.Connection // 可为 nil，事件发布为尽力而为
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(cartRepo cart.Repository, productRepo product.Repository, orderRepo order.Repository, tx TxManager, mqConn *amqp.Connection) *CheckoutService {
	return &CheckoutService{cartRepo: cartRepo, productRepo: productRepo, orderRepo: orderRepo, tx: tx, mqConn: mqConn}
}

// Checkout 由购物车创建订单。
// 空车返回 ErrEmptyCart，重复结算返回 ErrCartAlreadyOrdered；
// 订单条目为商品名/单价/小计的快照，商品后续改动不影响历史订单。
func (s *CheckoutService) Checkout(ctx context.Context, cartID, customerID int64, form CheckoutForm) (*order.Order, error) {
	if !form.BuyingType.Valid() {
		return nil, ErrInvalidBuyingType
	}
	if form.OrderDate.IsZero() {
		form.OrderDate = time.Now()
	}

	var created *order.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		c, err := s.cartRepo.GetByIDForUpdate(ctx, cartID)
		if err != nil {
			return err
		}
		if c.InOrder {
			return ErrCartAlreadyOrdered
		}

		items, err := s.cartRepo.ListItems(ctx, cartID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		o := &order.Order{
			CustomerID: customerID,
			CartID:     c.ID,
			FirstName:  form.FirstName,
			LastName:   form.LastName,
			Phone:      form.Phone,
			Address:    form.Address,
			Comment:    form.Comment,
			Status:     order.StatusNew,
			BuyingType: form.BuyingType,
			OrderDate:  form.OrderDate,
		}
		for _, it := range items {
			o.Items = append(o.Items, &order.Item{
				ProductID:    it.ProductID,
				ProductTitle: s.productTitle(ctx, it.ProductID),
				UnitPrice:    it.UnitPrice,
				Quantity:     it.Quantity,
				LineTotal:    it.LineTotal,
			})
			o.TotalItemCount += it.Quantity
			o.TotalPrice += it.LineTotal
		}

		if err := s.orderRepo.Create(ctx, o); err != nil {
			return err
		}

		c.InOrder = true
		if err := s.cartRepo.Update(ctx, c); err != nil {
			return err
		}

		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishCreated(ctx, created)
	return created, nil
}

// productTitle 快照商品名；商品在加车后被物理删除时保留空名，订单金额不受影响
func (s *CheckoutService) productTitle(ctx context.Context, productID int64) string {
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Warn("load product for snapshot failed", zap.Int64("product_id", productID), zap.Error(err))
		}
		return ""
	}
	return p.Title
}

// publishCreated 下单事件写入 MQ，失败只记日志不影响订单
func (s *CheckoutService) publishCreated(ctx context.Context, o *order.Order) {
	if s.mqConn == nil || o == nil {
		return
	}
	ch, err := s.mqConn.Channel()
	if err != nil {
		zap.L().Warn("open mq channel failed", zap.Error(err))
		return
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(OrderEventsQueue, true, false, false, false, nil); err != nil {
		zap.L().Warn("declare order events queue failed", zap.Error(err))
		return
	}

	body, err := json.Marshal(&OrderCreatedEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		TotalPrice: o.TotalPrice,
		BuyingType: string(o.BuyingType),
		CreatedAt:  o.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		OrderEventsQueue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		zap.L().Warn("publish order event failed", zap.Int64("order_id", o.ID), zap.Error(err))
	}
}
