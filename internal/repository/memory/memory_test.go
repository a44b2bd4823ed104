package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/cart"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/order"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/product"
)

func TestProductsCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewProducts(NewStore())

	p := &product.Product{Title: "球杆", Slug: "stick", Price: 1000, Status: product.StatusOnline}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == 0 {
		t.Fatalf("create must assign an id")
	}

	got, err := repo.GetBySlug(ctx, "stick")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if got.ID != p.ID {
		t.Fatalf("slug lookup returned id %d, want %d", got.ID, p.ID)
	}

	got.Price = 1200
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	reloaded, _ := repo.GetByID(ctx, p.ID)
	if reloaded.Price != 1200 {
		t.Fatalf("price = %d, want 1200", reloaded.Price)
	}

	if _, err := repo.GetByID(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing id: want ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted id: want ErrNotFound, got %v", err)
	}
}

func TestListOnlineFiltersOffline(t *testing.T) {
	ctx := context.Background()
	repo := NewProducts(NewStore())

	if err := repo.Create(ctx, &product.Product{Slug: "a", Status: product.StatusOnline}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, &product.Product{Slug: "b", Status: product.StatusOffline}); err != nil {
		t.Fatalf("create: %v", err)
	}

	online, err := repo.ListOnline(ctx)
	if err != nil {
		t.Fatalf("list online: %v", err)
	}
	if len(online) != 1 || online[0].Slug != "a" {
		t.Fatalf("online = %d items, want only slug a", len(online))
	}
}

func TestCartItemLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewCarts(store)

	custID := int64(1)
	c := &cart.Cart{CustomerID: &custID}
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("create cart: %v", err)
	}

	it := &cart.Item{CartID: c.ID, ProductID: 10, Quantity: 2, UnitPrice: 500, LineTotal: 1000}
	if err := repo.SaveItem(ctx, it); err != nil {
		t.Fatalf("save item: %v", err)
	}

	// 同一商品再存是更新而不是新行
	it.Quantity = 3
	it.LineTotal = 1500
	if err := repo.SaveItem(ctx, it); err != nil {
		t.Fatalf("resave item: %v", err)
	}
	items, _ := repo.ListItems(ctx, c.ID)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("qty = %d, want 3", items[0].Quantity)
	}

	if err := repo.DeleteItem(ctx, c.ID, 10); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	items, _ = repo.ListItems(ctx, c.ID)
	if len(items) != 0 {
		t.Fatalf("items after delete = %d, want 0", len(items))
	}
	// 删除不存在的行不报错
	if err := repo.DeleteItem(ctx, c.ID, 10); err != nil {
		t.Fatalf("double delete: %v", err)
	}
}

func TestActiveCartLookupSkipsFrozen(t *testing.T) {
	ctx := context.Background()
	repo := NewCarts(NewStore())

	custID := int64(7)
	frozen := &cart.Cart{CustomerID: &custID, InOrder: true}
	if err := repo.Create(ctx, frozen); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.GetActiveByCustomer(ctx, custID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("frozen cart must not resolve as active, got %v", err)
	}

	open := &cart.Cart{CustomerID: &custID}
	if err := repo.Create(ctx, open); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.GetActiveByCustomer(ctx, custID)
	if err != nil {
		t.Fatalf("active lookup: %v", err)
	}
	if got.ID != open.ID {
		t.Fatalf("active cart = %d, want %d", got.ID, open.ID)
	}
}

func TestOrderCreatePersistsItems(t *testing.T) {
	ctx := context.Background()
	repo := NewOrders(NewStore())

	o := &order.Order{
		CustomerID: 1,
		Status:     order.StatusNew,
		BuyingType: order.BuyingTypeSelf,
		Items: []*order.Item{
			{ProductID: 1, ProductTitle: "A", UnitPrice: 1000, Quantity: 2, LineTotal: 2000},
			{ProductID: 2, ProductTitle: "B", UnitPrice: 550, Quantity: 1, LineTotal: 550},
		},
	}
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("create: %v", err)
	}

	items, err := repo.ListItems(ctx, o.ID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	for _, it := range items {
		if it.OrderID != o.ID {
			t.Fatalf("item %d bound to order %d, want %d", it.ID, it.OrderID, o.ID)
		}
	}
}

func TestListRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewOrders(NewStore())

	var last int64
	for i := 0; i < 5; i++ {
		o := &order.Order{CustomerID: 1, Status: order.StatusNew, BuyingType: order.BuyingTypeSelf}
		if err := repo.Create(ctx, o); err != nil {
			t.Fatalf("create: %v", err)
		}
		last = o.ID
	}

	recent, err := repo.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("recent = %d, want 3", len(recent))
	}
	if recent[0].ID != last {
		t.Fatalf("first recent = %d, want newest %d", recent[0].ID, last)
	}
}

func TestWithTransactionNoDeadlock(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	tx := NewTx(store)
	repo := NewProducts(store)

	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		// 事务内读写都走标记路径，不会重入锁
		if err := repo.Create(ctx, &product.Product{Slug: "in-tx", Status: product.StatusOnline}); err != nil {
			return err
		}
		_, err := repo.GetBySlug(ctx, "in-tx")
		return err
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	// 事务外能看到已提交的数据
	if _, err := repo.GetBySlug(ctx, "in-tx"); err != nil {
		t.Fatalf("after tx: %v", err)
	}
}

func TestWithTransactionPropagatesError(t *testing.T) {
	store := NewStore()
	tx := NewTx(store)
	sentinel := errors.New("boom")

	err := tx.WithTransaction(context.Background(), func(ctx context.Context) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("want sentinel error, got %v", err)
	}
}
