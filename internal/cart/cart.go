package cart

import "sync"

// Snapshot of the product at the moment it entered the cart. Stock is
// part of the snapshot because quantity clamping happens against it.
type ProductSnapshot struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
	Stock int     `json:"stock"`
}

type Line struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

type Summary struct {
	Items       []Line  `json:"items"`
	TotalItems  int     `json:"total_items"`
	TotalAmount float64 `json:"total_amount"`
}

type key struct {
	tenantID uint
	clientID uint
}

// Store holds one cart per (tenant, client), in memory only. Carts are
// deliberately not persisted: a server restart drops them, the same
// way a page reload dropped the original in-browser cart.
type Store struct {
	mu    sync.Mutex
	carts map[key][]Line
}

func NewStore() *Store {
	return &Store{carts: make(map[key][]Line)}
}

// Add merges quantity into an existing line or appends a new one. The
// resulting quantity never exceeds the product's stock.
func (s *Store) Add(tenantID, clientID uint, p ProductSnapshot, qty int) {
	if qty <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{tenantID, clientID}
	lines := s.carts[k]

	for i := range lines {
		if lines[i].Product.ID == p.ID {
			lines[i].Product = p
			lines[i].Quantity = clamp(lines[i].Quantity+qty, p.Stock)
			return
		}
	}

	s.carts[k] = append(lines, Line{Product: p, Quantity: clamp(qty, p.Stock)})
}

// SetQuantity clamps to [1, stock]; zero or less removes the line.
func (s *Store) SetQuantity(tenantID, clientID, productID uint, qty int) {
	if qty <= 0 {
		s.Remove(tenantID, clientID, productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[key{tenantID, clientID}]
	for i := range lines {
		if lines[i].Product.ID == productID {
			lines[i].Quantity = clamp(qty, lines[i].Product.Stock)
			return
		}
	}
}

func (s *Store) Remove(tenantID, clientID, productID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{tenantID, clientID}
	lines := s.carts[k]

	filtered := lines[:0]
	for _, l := range lines {
		if l.Product.ID != productID {
			filtered = append(filtered, l)
		}
	}

	if len(filtered) == 0 {
		delete(s.carts, k)
		return
	}
	s.carts[k] = filtered
}

func (s *Store) Clear(tenantID, clientID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, key{tenantID, clientID})
}

// Get returns a copy of the cart with totals recomputed from the
// current lines.
func (s *Store) Get(tenantID, clientID uint) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[key{tenantID, clientID}]

	out := Summary{Items: make([]Line, len(lines))}
	copy(out.Items, lines)

	for _, l := range lines {
		out.TotalItems += l.Quantity
		out.TotalAmount += l.Product.Price * float64(l.Quantity)
	}

	return out
}

func clamp(qty, stock int) int {
	if qty > stock {
		return stock
	}
	return qty
}
