package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/coffee-bar/internal/catalog"
	"github.com/coffee-bar/internal/models"
	"github.com/coffee-bar/internal/repository"
	"github.com/coffee-bar/internal/store"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type serviceFixture struct {
	db       *gorm.DB
	store    *store.MemoryStore
	carts    *CartService
	orders   *OrderService
	checkout *CheckoutService
}

func openServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	db := openServiceDB(t)
	kv := store.NewMemoryStore()
	carts := NewCartService(catalog.Default(), kv, CartServiceOptions{})
	orders := NewOrderService(repository.NewOrderRepository(db))
	return &serviceFixture{
		db:       db,
		store:    kv,
		carts:    carts,
		orders:   orders,
		checkout: NewCheckoutService(carts, orders, nil),
	}
}
