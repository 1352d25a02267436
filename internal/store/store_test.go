package store

import (
	"context"
	"testing"
	"time"

	"github.com/coffee-bar/internal/models"
	"github.com/coffee-bar/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type fakeRedis struct {
	data map[string]string
	ttl  map[string]time.Duration
}

func (f *fakeRedis) GetString(_ context.Context, key string) (string, bool, error) {
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeRedis) SetString(_ context.Context, key, value string, ttl time.Duration) error {
	f.data[key] = value
	f.ttl[key] = ttl
	return nil
}

func openSnapshotRepo(t *testing.T) *repository.GormCartSnapshotRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:store_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.CartSnapshot{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return repository.NewCartSnapshotRepository(db)
}

func TestDriversRoundTrip(t *testing.T) {
	redis := &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
	drivers := map[string]KV{
		"memory":   NewMemoryStore(),
		"redis":    NewRedisStore(redis),
		"database": NewDBStore(openSnapshotRepo(t)),
	}
	for name, kv := range drivers {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := "coffeeBarCart:" + name
			if _, found, err := kv.Load(ctx, key); err != nil || found {
				t.Fatalf("fresh key want miss, found=%v err=%v", found, err)
			}
			if err := kv.Store(ctx, key, `[{"name":"Mocha","price":160,"qty":2}]`); err != nil {
				t.Fatalf("store failed: %v", err)
			}
			const latte = `[{"name":"Latte","price":140,"qty":1}]`
			if err := kv.Store(ctx, key, latte); err != nil {
				t.Fatalf("overwrite failed: %v", err)
			}
			got, found, err := kv.Load(ctx, key)
			if err != nil || !found || got != latte {
				t.Fatalf("load want latte/true got %q/%v err=%v", got, found, err)
			}
		})
	}
	if redis.ttl["coffeeBarCart:redis"] != 0 {
		t.Fatalf("redis carts should not expire")
	}
}

func TestNewSelectsDriver(t *testing.T) {
	cases := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "memory", opts: Options{Driver: "memory"}},
		{name: "redis without client", opts: Options{Driver: "redis"}, wantErr: true},
		{name: "redis", opts: Options{Driver: "Redis", Redis: &fakeRedis{}}},
		{name: "database without repo", opts: Options{Driver: "database"}, wantErr: true},
		{name: "default is database", opts: Options{Snapshots: openSnapshotRepo(t)}},
		{name: "unknown", opts: Options{Driver: "localStorage"}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kv, err := New(tc.opts)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil || kv == nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDBStoreDeletesEmptyCart(t *testing.T) {
	ctx := context.Background()
	repo := openSnapshotRepo(t)
	kv := NewDBStore(repo)
	const key = "coffeeBarCart:emptied"

	if err := kv.Store(ctx, key, `[{"name":"Mocha","price":160,"qty":2}]`); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if err := kv.Store(ctx, key, "[]"); err != nil {
		t.Fatalf("store empty failed: %v", err)
	}
	snapshot, err := repo.Get(ctx, key)
	if err != nil || snapshot != nil {
		t.Fatalf("snapshot row should be deleted, got %+v err=%v", snapshot, err)
	}
	if _, found, err := kv.Load(ctx, key); err != nil || found {
		t.Fatalf("emptied cart should load as a miss, found=%v err=%v", found, err)
	}
	if err := kv.Store(ctx, "coffeeBarCart:never", "[]"); err != nil {
		t.Fatalf("emptying a missing snapshot should succeed: %v", err)
	}
}
