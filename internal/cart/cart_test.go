package cart

import "testing"

func snapshot(id uint, price float64, stock int) ProductSnapshot {
	return ProductSnapshot{ID: id, Name: "Producto", Price: price, Stock: stock}
}

func TestAddClampsToStock(t *testing.T) {
	s := NewStore()

	// stock=3, requesting 5 yields 3.
	s.Add(1, 1, snapshot(10, 25, 3), 5)

	got := s.Get(1, 1)
	if len(got.Items) != 1 || got.Items[0].Quantity != 3 {
		t.Fatalf("expected one line with quantity 3, got %+v", got.Items)
	}
}

func TestAddMergesExistingLine(t *testing.T) {
	s := NewStore()
	p := snapshot(10, 25, 10)

	s.Add(1, 1, p, 2)
	s.Add(1, 1, p, 3)

	got := s.Get(1, 1)
	if len(got.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(got.Items))
	}
	if got.Items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", got.Items[0].Quantity)
	}

	// Merging past stock clamps: 5 existing + 7 requested, stock 10.
	s.Add(1, 1, p, 7)
	if got := s.Get(1, 1); got.Items[0].Quantity != 10 {
		t.Errorf("quantity = %d, want 10", got.Items[0].Quantity)
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	s := NewStore()
	s.Add(1, 1, snapshot(10, 25, 5), 2)
	s.Add(1, 1, snapshot(11, 10, 5), 1)

	s.SetQuantity(1, 1, 10, 0)

	got := s.Get(1, 1)
	if len(got.Items) != 1 || got.Items[0].Product.ID != 11 {
		t.Fatalf("expected only product 11 left, got %+v", got.Items)
	}
	if got.TotalItems != 1 {
		t.Errorf("TotalItems = %d, want 1", got.TotalItems)
	}
	if got.TotalAmount != 10 {
		t.Errorf("TotalAmount = %v, want 10", got.TotalAmount)
	}
}

func TestSetQuantityClamps(t *testing.T) {
	s := NewStore()
	s.Add(1, 1, snapshot(10, 25, 4), 1)

	s.SetQuantity(1, 1, 10, 99)

	if got := s.Get(1, 1); got.Items[0].Quantity != 4 {
		t.Errorf("quantity = %d, want 4", got.Items[0].Quantity)
	}
}

func TestTotals(t *testing.T) {
	s := NewStore()
	s.Add(1, 1, snapshot(10, 25.5, 10), 2)
	s.Add(1, 1, snapshot(11, 10, 10), 3)

	got := s.Get(1, 1)
	if got.TotalItems != 5 {
		t.Errorf("TotalItems = %d, want 5", got.TotalItems)
	}
	if got.TotalAmount != 25.5*2+10*3 {
		t.Errorf("TotalAmount = %v, want %v", got.TotalAmount, 25.5*2+10*3)
	}
}

func TestCartsAreIsolatedPerClientAndTenant(t *testing.T) {
	s := NewStore()

	s.Add(1, 1, snapshot(10, 25, 10), 2)
	s.Add(1, 2, snapshot(10, 25, 10), 4)
	s.Add(2, 1, snapshot(10, 25, 10), 1)

	if got := s.Get(1, 1); got.TotalItems != 2 {
		t.Errorf("tenant 1 client 1: TotalItems = %d, want 2", got.TotalItems)
	}
	if got := s.Get(1, 2); got.TotalItems != 4 {
		t.Errorf("tenant 1 client 2: TotalItems = %d, want 4", got.TotalItems)
	}
	if got := s.Get(2, 1); got.TotalItems != 1 {
		t.Errorf("tenant 2 client 1: TotalItems = %d, want 1", got.TotalItems)
	}

	s.Clear(1, 1)
	if got := s.Get(1, 1); len(got.Items) != 0 {
		t.Errorf("tenant 1 client 1 should be empty after Clear")
	}
	if got := s.Get(1, 2); got.TotalItems != 4 {
		t.Errorf("clearing one cart must not touch another")
	}
}
