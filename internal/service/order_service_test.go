package service

import (
	"context"
	"errors"
	"testing"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/order"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/repository/memory"
)

func seedOrder(t *testing.T, store *memory.Store, status order.Status) *order.Order {
	t.Helper()
	o := &order.Order{CustomerID: 1, Status: status, BuyingType: order.BuyingTypeSelf}
	if err := memory.NewOrders(store).Create(context.Background(), o); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return o
}

func TestAdvanceStatusFullChain(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewOrderService(memory.NewOrders(store))
	o := seedOrder(t, store, order.StatusNew)

	for _, target := range []order.Status{order.StatusInProgress, order.StatusReady, order.StatusCompleted} {
		got, err := svc.AdvanceStatus(ctx, o.ID, target)
		if err != nil {
			t.Fatalf("advance to %s: %v", target, err)
		}
		if got.Status != target {
			t.Fatalf("status = %s, want %s", got.Status, target)
		}
	}
}

func TestAdvanceStatusRejectsSkipAndRollback(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewOrderService(memory.NewOrders(store))

	o := seedOrder(t, store, order.StatusNew)
	// 跳过 in_progress
	if _, err := svc.AdvanceStatus(ctx, o.ID, order.StatusReady); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("skip: want ErrInvalidStatusTransition, got %v", err)
	}

	ready := seedOrder(t, store, order.StatusReady)
	// 回退
	if _, err := svc.AdvanceStatus(ctx, ready.ID, order.StatusNew); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("rollback: want ErrInvalidStatusTransition, got %v", err)
	}
	// 原地
	if _, err := svc.AdvanceStatus(ctx, ready.ID, order.StatusReady); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("same state: want ErrInvalidStatusTransition, got %v", err)
	}

	done := seedOrder(t, store, order.StatusCompleted)
	// 终态之后没有流转
	if _, err := svc.AdvanceStatus(ctx, done.ID, order.StatusInProgress); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("terminal: want ErrInvalidStatusTransition, got %v", err)
	}

	// 失败流转不落库
	got, err := svc.GetByID(ctx, ready.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != order.StatusReady {
		t.Fatalf("rejected transition must not persist, status = %s", got.Status)
	}
}

func TestAdvanceStatusUnknownTarget(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewOrderService(memory.NewOrders(store))
	o := seedOrder(t, store, order.StatusNew)

	if _, err := svc.AdvanceStatus(ctx, o.ID, order.Status("cancelled")); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("unknown status: want ErrInvalidStatusTransition, got %v", err)
	}
}

func TestListByCustomer(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewOrderService(memory.NewOrders(store))
	orders := memory.NewOrders(store)

	for i := 0; i < 3; i++ {
		if err := orders.Create(ctx, &order.Order{CustomerID: 1, Status: order.StatusNew, BuyingType: order.BuyingTypeSelf}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if err := orders.Create(ctx, &order.Order{CustomerID: 2, Status: order.StatusNew, BuyingType: order.BuyingTypeSelf}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	mine, err := svc.ListByCustomer(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 3 {
		t.Fatalf("customer 1 orders = %d, want 3", len(mine))
	}
}
