// Package cart holds the storefront shopping cart: an ordered list of line
// items whose totals are always derived from the items themselves.
package cart

import "github.com/shopspring/decimal"

// MaxQuantity caps the quantity of a single line.
const MaxQuantity = 999

// Item is a single cart line keyed by the product's numeric identifier.
type Item struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	PartNumber string          `json:"partNumber"`
	Image      string          `json:"image"`
}

// State is the cart contents in insertion order plus aggregates that are
// recomputed after every transition.
type State struct {
	Items         []Item          `json:"items"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

// Empty returns a cart with no items.
func Empty() State {
	return State{Items: []Item{}, TotalAmount: decimal.Zero}
}

// Len returns the number of distinct items.
func (s State) Len() int {
	return len(s.Items)
}

// Find returns the item with the given id.
func (s State) Find(id int) (Item, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.Items[i], true
	}
	return Item{}, false
}

func (s State) indexOf(id int) int {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) clone() State {
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	s.Items = items
	return s
}

func lineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// summarize builds a State whose aggregates are summed from items.
func summarize(items []Item) State {
	totalQuantity := 0
	totalAmount := decimal.Zero
	for _, item := range items {
		totalQuantity += item.Quantity
		totalAmount = totalAmount.Add(item.TotalPrice)
	}
	return State{Items: items, TotalQuantity: totalQuantity, TotalAmount: totalAmount}
}
