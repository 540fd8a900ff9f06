package ir

// Registry holds the named character classes of one batch.
//
// A Registry is immutable once built: NewRegistry copies its input and no
// method mutates it, so it is safe to share between word workers.
type Registry struct {
	cats  map[rune][]rune
	order []rune
}

// Category is one named class as parsed from a "K=abc" line.
// Member order matters for parallel correspondence.
type Category struct {
	ID      rune   `json:"id"`
	Members []rune `json:"members"`
}

// NewRegistry builds a registry from categories in definition order.
// A later definition of the same identifier replaces the earlier one but
// keeps its original position in Categories().
func NewRegistry(cats []Category) *Registry {
	r := &Registry{cats: make(map[rune][]rune, len(cats))}
	for _, c := range cats {
		if _, seen := r.cats[c.ID]; !seen {
			r.order = append(r.order, c.ID)
		}
		members := make([]rune, len(c.Members))
		copy(members, c.Members)
		r.cats[c.ID] = members
	}
	return r
}

// Has reports whether id names a category.
func (r *Registry) Has(id rune) bool {
	if r == nil {
		return false
	}
	_, ok := r.cats[id]
	return ok
}

// Lookup returns the members of category id.
// The returned slice must not be modified.
func (r *Registry) Lookup(id rune) ([]rune, bool) {
	if r == nil {
		return nil, false
	}
	m, ok := r.cats[id]
	return m, ok
}

// IndexOf returns the position of member within category id, or -1.
func (r *Registry) IndexOf(id, member rune) int {
	m, ok := r.Lookup(id)
	if !ok {
		return -1
	}
	for i, c := range m {
		if c == member {
			return i
		}
	}
	return -1
}

// Len returns the number of categories.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Categories returns all categories in definition order.
func (r *Registry) Categories() []Category {
	if r == nil {
		return nil
	}
	out := make([]Category, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, Category{ID: id, Members: append([]rune(nil), r.cats[id]...)})
	}
	return out
}
