package main

import (
	"context"
	"fmt"
	"log"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/order"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/product"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/repository/memory"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/service"
)

// 离线演示：在内存存储上走完 加购 → 改数量 → 结算 → 状态流转 全流程，
// 不需要 MySQL / Redis / RabbitMQ。
func main() {
	ctx := context.Background()

	store := memory.NewStore()
	tx := memory.NewTx(store)
	products := memory.NewProducts(store)
	carts := memory.NewCarts(store)
	orders := memory.NewOrders(store)

	cartSvc := service.NewCartService(carts, products, tx)
	checkoutSvc := service.NewCheckoutService(carts, products, orders, tx, nil)
	orderSvc := service.NewOrderService(orders)

	// 准备商品
	stick := &product.Product{Title: "Bauer Vapor X3 球杆", Slug: "bauer-vapor-x3", Price: 1000, Status: product.StatusOnline}
	puck := &product.Product{Title: "比赛用冰球", Slug: "puck", Price: 550, Status: product.StatusOnline}
	mustNil(products.Create(ctx, stick))
	mustNil(products.Create(ctx, puck))

	c, err := cartSvc.GetOrCreateForCustomer(ctx, 1)
	mustNil(err)

	// 加购：2 根球杆 + 1 只冰球
	_, err = cartSvc.SetItem(ctx, c.ID, stick.ID, 2)
	mustNil(err)
	full, err := cartSvc.SetItem(ctx, c.ID, puck.ID, 1)
	mustNil(err)
	fmt.Printf("cart: %d items, total %d 分\n", full.TotalItemCount, full.TotalPrice)

	// 结算
	o, err := checkoutSvc.Checkout(ctx, c.ID, 1, service.CheckoutForm{
		FirstName:  "Владимир",
		LastName:   "Жуков",
		Phone:      "+7-900-000-00-00",
		Address:    "Москва",
		BuyingType: order.BuyingTypeDelivery,
	})
	mustNil(err)
	fmt.Printf("order #%d created, status=%s, total=%d 分\n", o.ID, o.Status, o.TotalPrice)

	// 状态流转
	for _, st := range []order.Status{order.StatusInProgress, order.StatusReady, order.StatusCompleted} {
		o, err = orderSvc.AdvanceStatus(ctx, o.ID, st)
		mustNil(err)
		fmt.Printf("order #%d -> %s\n", o.ID, o.Status)
	}

	// 重复结算应失败
	if _, err := checkoutSvc.Checkout(ctx, c.ID, 1, service.CheckoutForm{BuyingType: order.BuyingTypeSelf}); err != nil {
		fmt.Printf("second checkout rejected: %v\n", err)
	}
}

func mustNil(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
