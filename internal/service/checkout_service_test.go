package service

import (
	"context"
	"errors"
	"testing"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/order"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/product"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/repository/memory"
)

func setupCheckout(t *testing.T) (*memory.Store, *CartService, *CheckoutService) {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTx(store)
	carts := memory.NewCarts(store)
	products := memory.NewProducts(store)
	cartSvc := NewCartService(carts, products, tx)
	checkoutSvc := NewCheckoutService(carts, products, memory.NewOrders(store), tx, nil)
	return store, cartSvc, checkoutSvc
}

func validForm() CheckoutForm {
	return CheckoutForm{
		FirstName:  "Иван",
		LastName:   "Петров",
		Phone:      "+7-900-000-00-00",
		Address:    "Москва",
		BuyingType: order.BuyingTypeDelivery,
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	ctx := context.Background()
	_, cartSvc, checkoutSvc := setupCheckout(t)

	c, err := cartSvc.GetOrCreateForCustomer(ctx, 1)
	if err != nil {
		t.Fatalf("create cart: %v", err)
	}
	if _, err := checkoutSvc.Checkout(ctx, c.ID, 1, validForm()); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
}

func TestCheckoutInvalidBuyingType(t *testing.T) {
	ctx := context.Background()
	_, cartSvc, checkoutSvc := setupCheckout(t)
	c, _ := cartSvc.GetOrCreateForCustomer(ctx, 1)

	form := validForm()
	form.BuyingType = order.BuyingType("courier")
	if _, err := checkoutSvc.Checkout(ctx, c.ID, 1, form); !errors.Is(err, ErrInvalidBuyingType) {
		t.Fatalf("want ErrInvalidBuyingType, got %v", err)
	}
}

func TestCheckoutCreatesSnapshotOrder(t *testing.T) {
	ctx := context.Background()
	store, cartSvc, checkoutSvc := setupCheckout(t)
	stick := seedProduct(t, store, "stick", 1000, product.StatusOnline)
	puck := seedProduct(t, store, "puck", 550, product.StatusOnline)

	c, _ := cartSvc.GetOrCreateForCustomer(ctx, 1)
	if _, err := cartSvc.SetItem(ctx, c.ID, stick.ID, 2); err != nil {
		t.Fatalf("set item: %v", err)
	}
	if _, err := cartSvc.SetItem(ctx, c.ID, puck.ID, 1); err != nil {
		t.Fatalf("set item: %v", err)
	}

	o, err := checkoutSvc.Checkout(ctx, c.ID, 1, validForm())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if o.Status != order.StatusNew {
		t.Fatalf("new order status = %s, want %s", o.Status, order.StatusNew)
	}
	if o.TotalPrice != 2550 || o.TotalItemCount != 3 {
		t.Fatalf("order totals = %d/%d, want 2550/3", o.TotalPrice, o.TotalItemCount)
	}
	if len(o.Items) != 2 {
		t.Fatalf("order items = %d, want 2", len(o.Items))
	}
	for _, it := range o.Items {
		if it.ProductTitle == "" {
			t.Fatalf("item %d missing title snapshot", it.ProductID)
		}
		if it.LineTotal != it.UnitPrice*int64(it.Quantity) {
			t.Fatalf("item %d line total = %d, want %d", it.ProductID, it.LineTotal, it.UnitPrice*int64(it.Quantity))
		}
	}

	// 结算后购物车被冻结
	frozen, err := memory.NewCarts(store).GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("reload cart: %v", err)
	}
	if !frozen.InOrder {
		t.Fatalf("cart must be frozen after checkout")
	}
}

func TestCheckoutTwiceRejected(t *testing.T) {
	ctx := context.Background()
	store, cartSvc, checkoutSvc := setupCheckout(t)
	p := seedProduct(t, store, "stick", 1000, product.StatusOnline)

	c, _ := cartSvc.GetOrCreateForCustomer(ctx, 1)
	if _, err := cartSvc.SetItem(ctx, c.ID, p.ID, 1); err != nil {
		t.Fatalf("set item: %v", err)
	}
	if _, err := checkoutSvc.Checkout(ctx, c.ID, 1, validForm()); err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	if _, err := checkoutSvc.Checkout(ctx, c.ID, 1, validForm()); !errors.Is(err, ErrCartAlreadyOrdered) {
		t.Fatalf("want ErrCartAlreadyOrdered, got %v", err)
	}

	// 冻结的车也不能再改
	if _, err := cartSvc.SetItem(ctx, c.ID, p.ID, 5); !errors.Is(err, ErrCartAlreadyOrdered) {
		t.Fatalf("frozen cart edit: want ErrCartAlreadyOrdered, got %v", err)
	}
}

func TestSnapshotImmuneToPriceChange(t *testing.T) {
	ctx := context.Background()
	store, cartSvc, checkoutSvc := setupCheckout(t)
	products := memory.NewProducts(store)
	p := seedProduct(t, store, "stick", 1000, product.StatusOnline)

	c, _ := cartSvc.GetOrCreateForCustomer(ctx, 1)
	if _, err := cartSvc.SetItem(ctx, c.ID, p.ID, 2); err != nil {
		t.Fatalf("set item: %v", err)
	}
	o, err := checkoutSvc.Checkout(ctx, c.ID, 1, validForm())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	// 事后涨价并改名
	p.Price = 9999
	p.Title = "renamed"
	if err := products.Update(ctx, p); err != nil {
		t.Fatalf("update product: %v", err)
	}

	reloaded, err := NewOrderService(memory.NewOrders(store)).GetByID(ctx, o.ID)
	if err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if reloaded.TotalPrice != 2000 {
		t.Fatalf("order total changed to %d, snapshot must stay 2000", reloaded.TotalPrice)
	}
	if len(reloaded.Items) != 1 {
		t.Fatalf("order items = %d, want 1", len(reloaded.Items))
	}
	if reloaded.Items[0].UnitPrice != 1000 || reloaded.Items[0].ProductTitle != "stick" {
		t.Fatalf("order item snapshot mutated: %+v", reloaded.Items[0])
	}
}
