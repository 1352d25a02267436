package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coffee-bar/internal/constants"
	"github.com/coffee-bar/internal/models"
)

func createTestOrder(t *testing.T, repo *GormOrderRepository, orderNo, session string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:     orderNo,
		SessionID:   session,
		Status:      constants.OrderStatusConfirmed,
		ItemCount:   3,
		TotalAmount: models.NewMoneyFromInt(380),
	}
	items := []models.OrderItem{
		{Name: "Espresso", UnitPrice: models.NewMoneyFromInt(120), Quantity: 2, TotalPrice: models.NewMoneyFromInt(240)},
		{Name: "Latte", UnitPrice: models.NewMoneyFromInt(140), Quantity: 1, TotalPrice: models.NewMoneyFromInt(140)},
	}
	if err := repo.Create(context.Background(), order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderCreateAndFetch(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(openTestDB(t))
	created := createTestOrder(t, repo, "CB-1", "s1")
	if created.ID == 0 || len(created.Items) != 2 || created.Items[0].OrderID != created.ID {
		t.Fatalf("unexpected created order: %+v", created)
	}

	got, err := repo.GetByOrderNo(ctx, "CB-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.TotalAmount.String() != "380.00" || len(got.Items) != 2 {
		t.Fatalf("unexpected order: total=%s items=%d", got.TotalAmount.String(), len(got.Items))
	}

	if _, err := repo.GetByOrderNo(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}
}

func TestOrderListBySessionNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(openTestDB(t))
	createTestOrder(t, repo, "CB-1", "s1")
	createTestOrder(t, repo, "CB-2", "s2")
	createTestOrder(t, repo, "CB-3", "s1")

	orders, err := repo.ListBySession(ctx, "s1", 1, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 2 || orders[0].OrderNo != "CB-3" || orders[1].OrderNo != "CB-1" {
		t.Fatalf("unexpected orders: %+v", orders)
	}
}

func TestOrderListBySessionPages(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(openTestDB(t))
	createTestOrder(t, repo, "CB-1", "s1")
	createTestOrder(t, repo, "CB-2", "s1")
	createTestOrder(t, repo, "CB-3", "s1")

	cases := []struct {
		name     string
		page     int
		pageSize int
		want     []string
	}{
		{name: "first page", page: 1, pageSize: 2, want: []string{"CB-3", "CB-2"}},
		{name: "second page", page: 2, pageSize: 2, want: []string{"CB-1"}},
		{name: "invalid page clamps", page: 0, pageSize: 1, want: []string{"CB-3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			orders, err := repo.ListBySession(ctx, "s1", tc.page, tc.pageSize)
			if err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if len(orders) != len(tc.want) {
				t.Fatalf("want %d orders got %d", len(tc.want), len(orders))
			}
			for i, no := range tc.want {
				if orders[i].OrderNo != no {
					t.Fatalf("order %d want %s got %s", i, no, orders[i].OrderNo)
				}
			}
		})
	}
}

func TestOrderMarkNotified(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(openTestDB(t))
	createTestOrder(t, repo, "CB-9", "s1")

	if err := repo.MarkNotified(ctx, "CB-9", time.Now()); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	got, err := repo.GetByOrderNo(ctx, "CB-9")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != constants.OrderStatusNotified || got.NotifiedAt == nil {
		t.Fatalf("order not marked: %+v", got)
	}
	if err := repo.MarkNotified(ctx, "nope", time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}
}

func TestOrderMarkCancelledOnlyFromConfirmed(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(openTestDB(t))
	createTestOrder(t, repo, "CB-7", "s1")
	createTestOrder(t, repo, "CB-8", "s1")

	if err := repo.MarkCancelled(ctx, "CB-7"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	got, err := repo.GetByOrderNo(ctx, "CB-7")
	if err != nil || got.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want cancelled got %+v err=%v", got, err)
	}

	if err := repo.MarkNotified(ctx, "CB-8", time.Now()); err != nil {
		t.Fatalf("mark notified failed: %v", err)
	}
	if err := repo.MarkCancelled(ctx, "CB-8"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("notified order should not be cancelled, got %v", err)
	}
}
