package cart

// Action is a cart transition. The set is closed: Add, Remove, UpdateQuantity and Clear.
type Action interface {
	isAction()
}

// Add appends a new line or increases the quantity of an existing one.
// A Quantity of zero or less counts as one. The line quantity is capped at
// MaxQuantity.
type Add struct {
	Item     Item
	Quantity int
}

// Remove drops the line with the given id. Unknown ids are ignored.
type Remove struct {
	ID int
}

// UpdateQuantity replaces a line's quantity. Non-positive quantities are
// ignored; use Remove to drop a line. Larger values are capped at MaxQuantity.
type UpdateQuantity struct {
	ID       int
	Quantity int
}

// Clear empties the cart.
type Clear struct{}

func (Add) isAction()            {}
func (Remove) isAction()         {}
func (UpdateQuantity) isAction() {}
func (Clear) isAction()          {}

// Reduce returns the state that results from applying action to state.
// The input state is never modified.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case Add:
		return add(state, a)
	case Remove:
		return remove(state, a.ID)
	case UpdateQuantity:
		return updateQuantity(state, a)
	case Clear:
		return Empty()
	default:
		return state
	}
}

func add(state State, a Add) State {
	quantity := a.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	quantity = min(quantity, MaxQuantity)

	next := state.clone()
	if i := next.indexOf(a.Item.ID); i >= 0 {
		item := next.Items[i]
		item.Quantity = min(item.Quantity+quantity, MaxQuantity)
		item.TotalPrice = lineTotal(item.Price, item.Quantity)
		next.Items[i] = item
		return summarize(next.Items)
	}

	item := a.Item
	item.Quantity = quantity
	item.TotalPrice = lineTotal(item.Price, quantity)
	return summarize(append(next.Items, item))
}

func remove(state State, id int) State {
	i := state.indexOf(id)
	if i < 0 {
		return state
	}
	items := make([]Item, 0, len(state.Items)-1)
	items = append(items, state.Items[:i]...)
	items = append(items, state.Items[i+1:]...)
	return summarize(items)
}

func updateQuantity(state State, a UpdateQuantity) State {
	if a.Quantity <= 0 {
		return state
	}
	i := state.indexOf(a.ID)
	if i < 0 {
		return state
	}
	quantity := min(a.Quantity, MaxQuantity)
	next := state.clone()
	item := next.Items[i]
	item.Quantity = quantity
	item.TotalPrice = lineTotal(item.Price, quantity)
	next.Items[i] = item
	return summarize(next.Items)
}
