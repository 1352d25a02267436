package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/coffee-bar/internal/cart"
	"github.com/coffee-bar/internal/catalog"
	"github.com/coffee-bar/internal/store"
)

func TestCartServiceEspressoScenario(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)

	res, c, err := f.carts.AddRaw(ctx, "visitor", 0, "5")
	if err != nil || res.Outcome != cart.AddOutcomeAdded || c.QuantityOf("Espresso") != 5 {
		t.Fatalf("add 5 failed: outcome=%s qty=%d err=%v", res.Outcome, c.QuantityOf("Espresso"), err)
	}
	res, c, err = f.carts.AddRaw(ctx, "visitor", 0, "6")
	if err != nil || res.Outcome != cart.AddOutcomeRejected || res.SuggestedInput != 5 || c.QuantityOf("Espresso") != 5 {
		t.Fatalf("add 6 should be rejected with hint 5: %+v qty=%d err=%v", res, c.QuantityOf("Espresso"), err)
	}
	if c, err = f.carts.Adjust(ctx, "visitor", "Espresso", -1); err != nil || c.QuantityOf("Espresso") != 4 {
		t.Fatalf("decrement failed: qty=%d err=%v", c.QuantityOf("Espresso"), err)
	}
	if c, err = f.carts.Adjust(ctx, "visitor", "Espresso", -4); err != nil || !c.IsEmpty() {
		t.Fatalf("cart should be empty: %v err=%v", c.Lines(), err)
	}

	raw, found, _ := f.store.Load(ctx, "coffeeBarCart:visitor")
	if !found || raw != "[]" {
		t.Fatalf("persisted state want [] got %q found=%v", raw, found)
	}
}

func TestCartServiceIgnoresBadInput(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	for _, raw := range []string{"", "abc", "2.5", "0", "-2"} {
		res, c, err := f.carts.AddRaw(ctx, "visitor", 1, raw)
		if err != nil || res.Outcome != cart.AddOutcomeIgnored || !c.IsEmpty() {
			t.Fatalf("input %q should be ignored: %+v err=%v", raw, res, err)
		}
	}
	if _, found, _ := f.store.Load(ctx, "coffeeBarCart:visitor"); found {
		t.Fatalf("ignored input must not persist")
	}
}

func TestCartServiceSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	if _, _, err := f.carts.Add(ctx, "a", 2, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	c, err := f.carts.Get(ctx, "b")
	if err != nil || !c.IsEmpty() {
		t.Fatalf("session b should see an empty cart")
	}
}

func TestCartServiceRequiresSession(t *testing.T) {
	f := newServiceFixture(t)
	if _, err := f.carts.Get(context.Background(), "  "); !errors.Is(err, ErrSessionRequired) {
		t.Fatalf("want ErrSessionRequired got %v", err)
	}
}

func TestCartServiceMalformedPolicy(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	_ = kv.Store(ctx, "coffeeBarCart:v", `[{"name":"Latte","price":140,"qty":0}]`)

	strict := NewCartService(catalog.Default(), kv, CartServiceOptions{MalformedPolicy: cart.PolicyFail})
	if _, err := strict.Get(ctx, "v"); !errors.Is(err, cart.ErrMalformedCart) {
		t.Fatalf("fail policy want ErrMalformedCart got %v", err)
	}
	raw, _, _ := kv.Load(ctx, "coffeeBarCart:v")
	if raw != `[{"name":"Latte","price":140,"qty":0}]` {
		t.Fatalf("fail policy must not touch stored blob")
	}

	lenient := NewCartService(catalog.Default(), kv, CartServiceOptions{})
	if _, _, err := lenient.Add(ctx, "v", 0, 1); err != nil {
		t.Fatalf("reset policy add failed: %v", err)
	}
	raw, _, _ = kv.Load(ctx, "coffeeBarCart:v")
	if raw != `[{"name":"Espresso","price":120,"qty":1}]` {
		t.Fatalf("next mutation should overwrite bad blob, got %s", raw)
	}
}

func TestCartServiceSerializesSameSession(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	added, rejected := 0, 0
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, _, err := f.carts.Add(ctx, "busy", 0, 1)
			if err != nil {
				t.Errorf("add failed: %v", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			switch res.Outcome {
			case cart.AddOutcomeAdded:
				added++
			case cart.AddOutcomeRejected:
				rejected++
			}
		}()
	}
	wg.Wait()

	if added != 10 || rejected != 2 {
		t.Fatalf("want 10 added / 2 rejected got %d / %d", added, rejected)
	}
	c, _ := f.carts.Get(ctx, "busy")
	if c.QuantityOf("Espresso") != 10 {
		t.Fatalf("final quantity want 10 got %d", c.QuantityOf("Espresso"))
	}
	if f.carts.locks.size() != 0 {
		t.Fatalf("session locks should be released")
	}
}
