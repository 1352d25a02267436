package catalog

import (
	"errors"
	"testing"
)

type fixedReservations map[string]int

func (f fixedReservations) QuantityOf(name string) int {
	return f[name]
}

func TestNewRejectsInvalidEntries(t *testing.T) {
	cases := []struct {
		name    string
		entries []MenuEntry
		want    error
	}{
		{name: "blank name", entries: []MenuEntry{{Name: "  ", UnitPrice: 1, TotalStock: 1}}, want: ErrInvalidEntry},
		{name: "negative stock", entries: []MenuEntry{{Name: "Latte", UnitPrice: 1, TotalStock: -1}}, want: ErrInvalidEntry},
		{name: "negative price", entries: []MenuEntry{{Name: "Latte", UnitPrice: -5, TotalStock: 1}}, want: ErrInvalidEntry},
		{name: "duplicate", entries: []MenuEntry{{Name: "Latte", TotalStock: 1}, {Name: "Latte", TotalStock: 2}}, want: ErrDuplicateEntry},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.entries); !errors.Is(err, tc.want) {
				t.Fatalf("error want %v got %v", tc.want, err)
			}
		})
	}
}

func TestLookups(t *testing.T) {
	c := Default()
	if c.Len() != 5 {
		t.Fatalf("default menu size want 5 got %d", c.Len())
	}
	first, ok := c.ByIndex(0)
	if !ok || first.Name != "Espresso" || first.UnitPrice != 120 || first.TotalStock != 10 {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	if _, ok := c.ByIndex(5); ok {
		t.Fatalf("index out of range should not be found")
	}
	if _, ok := c.ByIndex(-1); ok {
		t.Fatalf("negative index should not be found")
	}
	mocha, ok := c.ByName("Mocha")
	if !ok || mocha.TotalStock != 6 {
		t.Fatalf("unexpected mocha entry: %+v", mocha)
	}
	if _, ok := c.ByName("Tea"); ok {
		t.Fatalf("unknown name should not be found")
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	c := Default()
	entries := c.Entries()
	entries[0].TotalStock = 999
	again, _ := c.ByIndex(0)
	if again.TotalStock != 10 {
		t.Fatalf("catalog must stay immutable, got stock %d", again.TotalStock)
	}
}

func TestStockLeft(t *testing.T) {
	c := Default()
	if got := c.StockLeft("Espresso", nil); got != 10 {
		t.Fatalf("stock left without cart want 10 got %d", got)
	}
	if got := c.StockLeft("Espresso", fixedReservations{"Espresso": 4}); got != 6 {
		t.Fatalf("stock left want 6 got %d", got)
	}
	if got := c.StockLeft("Tea", fixedReservations{"Tea": 1}); got != 0 {
		t.Fatalf("unknown entry stock left want 0 got %d", got)
	}
}
