package service

import (
	"context"
	"errors"
	"testing"

	"github.com/coffee-bar/internal/catalog"
	"github.com/coffee-bar/internal/checkout"
	"github.com/coffee-bar/internal/constants"
	"github.com/coffee-bar/internal/models"
	"github.com/coffee-bar/internal/store"
)

func TestCheckoutEmptyCart(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)

	out, err := f.checkout.Checkout(ctx, "visitor")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if out.Message != "Cart is empty!" || out.ClearCart || out.Order != nil || out.Modal != constants.ModalEmpty {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if !out.Cart.IsEmpty() {
		t.Fatalf("cart should stay empty")
	}
}

func TestCheckoutRecordsOrderAndEmptiesCart(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	if _, _, err := f.carts.Add(ctx, "visitor", 0, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, _, err := f.carts.Add(ctx, "visitor", 3, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	out, err := f.checkout.Checkout(ctx, "visitor")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if out.Message != "Order Confirmed! Thank you for ordering." || !out.Cart.IsEmpty() {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if out.Order == nil || out.Order.TotalAmount.String() != "400.00" || out.Order.ItemCount != 3 {
		t.Fatalf("unexpected order: %+v", out.Order)
	}

	reloaded, err := f.carts.Get(ctx, "visitor")
	if err != nil || !reloaded.IsEmpty() {
		t.Fatalf("cart should reload empty, err=%v", err)
	}
	orders, err := f.orders.ListBySession(ctx, "visitor", 1, 10)
	if err != nil || len(orders) != 1 || len(orders[0].Items) != 2 {
		t.Fatalf("expected one order with two items, got %+v err=%v", orders, err)
	}
}

func TestCheckoutKeepsCartWhenOrderFails(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	if _, _, err := f.carts.Add(ctx, "visitor", 2, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := f.db.Migrator().DropTable(&models.OrderItem{}, &models.Order{}); err != nil {
		t.Fatalf("drop tables failed: %v", err)
	}

	if _, err := f.checkout.Checkout(ctx, "visitor"); err == nil {
		t.Fatalf("checkout should fail when the order cannot be recorded")
	}
	c, err := f.carts.Get(ctx, "visitor")
	if err != nil || c.QuantityOf("Latte") != 2 {
		t.Fatalf("cart must stay intact, qty=%d err=%v", c.QuantityOf("Latte"), err)
	}
}

type writeFailStore struct {
	*store.MemoryStore
	failWrites bool
}

func (s *writeFailStore) Store(ctx context.Context, key, value string) error {
	if s.failWrites {
		return errors.New("snapshot write failed")
	}
	return s.MemoryStore.Store(ctx, key, value)
}

func TestCheckoutCancelsOrderWhenCartCannotBeCleared(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	kv := &writeFailStore{MemoryStore: store.NewMemoryStore()}
	carts := NewCartService(catalog.Default(), kv, CartServiceOptions{})
	checkoutSvc := NewCheckoutService(carts, f.orders, nil)
	if _, _, err := carts.Add(ctx, "visitor", 1, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	kv.failWrites = true
	out, err := checkoutSvc.Checkout(ctx, "visitor")
	if err == nil {
		t.Fatalf("checkout should fail when the cart cannot be cleared")
	}
	if out.Order != nil || out.Cart.QuantityOf("Cappuccino") != 2 {
		t.Fatalf("outcome should report the unchanged cart, got order=%+v lines=%+v", out.Order, out.Cart.Lines())
	}
	orders, err := f.orders.ListBySession(ctx, "visitor", 1, 10)
	if err != nil || len(orders) != 1 || orders[0].Status != constants.OrderStatusCancelled {
		t.Fatalf("recorded order should be cancelled, got %+v err=%v", orders, err)
	}

	kv.failWrites = false
	out, err = checkoutSvc.Checkout(ctx, "visitor")
	if err != nil || out.Order == nil || !out.Cart.IsEmpty() {
		t.Fatalf("retry should succeed, out=%+v err=%v", out, err)
	}
	orders, _ = f.orders.ListBySession(ctx, "visitor", 1, 10)
	confirmed := 0
	for _, order := range orders {
		if order.Status == constants.OrderStatusConfirmed {
			confirmed++
		}
	}
	if confirmed != 1 {
		t.Fatalf("want exactly one confirmed order, got %d", confirmed)
	}
}

func TestDismissReturnsIdle(t *testing.T) {
	f := newServiceFixture(t)
	if f.checkout.Dismiss() != checkout.StateIdle {
		t.Fatalf("dismiss should return idle")
	}
}

func TestOrderMarkNotified(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	if _, _, err := f.carts.Add(ctx, "visitor", 4, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	out, err := f.checkout.Checkout(ctx, "visitor")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if err := f.orders.MarkNotified(ctx, out.Order.OrderNo); err != nil {
		t.Fatalf("mark notified failed: %v", err)
	}
	orders, _ := f.orders.ListBySession(ctx, "visitor", 1, 1)
	if orders[0].Status != constants.OrderStatusNotified {
		t.Fatalf("status want notified got %s", orders[0].Status)
	}
}
