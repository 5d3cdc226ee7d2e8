package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// LineItem is one product entry in a session's cart. Price is captured when
// the line is first added and is not refreshed afterwards, so a shopper keeps
// the price they saw.
type LineItem struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
}

// Store holds carts keyed by session id. All methods are safe for concurrent
// use; every mutation happens under the store lock and lines keep their
// insertion order.
type Store struct {
	mu    sync.Mutex
	carts map[string][]LineItem
}

// NewStore builds an empty cart store.
func NewStore() *Store {
	return &Store{carts: make(map[string][]LineItem)}
}

// Lines returns a copy of the session's cart lines in insertion order.
func (s *Store) Lines(sessionID string) []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLines(s.carts[sessionID])
}

// Increment bumps the quantity of an existing line, reporting whether the
// line was present. Check and bump happen under one lock so a concurrent
// removal cannot slip between them.
func (s *Store) Increment(sessionID string, productID int) ([]LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity++
			return copyLines(lines), true
		}
	}
	return copyLines(lines), false
}

// Add increments the quantity of an existing line or appends a new one at the
// end of the cart. The stored price of an existing line is left untouched.
func (s *Store) Add(sessionID string, item LineItem) []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ProductID == item.ProductID {
			lines[i].Quantity++
			return copyLines(lines)
		}
	}

	item.Quantity = 1
	lines = append(lines, item)
	s.carts[sessionID] = lines
	return copyLines(lines)
}

// Decrease lowers a line's quantity by one, removing the line entirely when
// the quantity would drop to zero. Unknown product ids are a no-op.
func (s *Store) Decrease(sessionID string, productID int) []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ProductID != productID {
			continue
		}
		if lines[i].Quantity > 1 {
			lines[i].Quantity--
		} else {
			lines = append(lines[:i], lines[i+1:]...)
			s.carts[sessionID] = lines
		}
		break
	}
	return copyLines(lines)
}

// Remove drops a line regardless of quantity. Unknown product ids are a no-op.
func (s *Store) Remove(sessionID string, productID int) []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines = append(lines[:i], lines[i+1:]...)
			s.carts[sessionID] = lines
			break
		}
	}
	return copyLines(lines)
}

// Clear empties the session's cart.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

func copyLines(lines []LineItem) []LineItem {
	out := make([]LineItem, len(lines))
	copy(out, lines)
	return out
}
