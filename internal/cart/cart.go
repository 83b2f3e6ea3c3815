package cart

import "github.com/google/uuid"

// Item is a denormalized snapshot of a book taken at add-time. Later
// catalog edits do not rewrite items already in a cart.
type Item struct {
	BookID      uuid.UUID `json:"book_id"`
	Name        string    `json:"name"`
	PageCount   int       `json:"page_count"`
	SubjectName string    `json:"subject_name"`
	YearName    string    `json:"year_name"`
}

// Cart is the per-session selection, kept in insertion order.
type Cart struct {
	Items []Item `json:"items"`
}

// Contains reports whether the book id is already in the cart.
func (c *Cart) Contains(bookID uuid.UUID) bool {
	for _, item := range c.Items {
		if item.BookID == bookID {
			return true
		}
	}
	return false
}

// Add appends the item unless its book id is already present. Returns
// false on the duplicate no-op.
func (c *Cart) Add(item Item) bool {
	if c.Contains(item.BookID) {
		return false
	}
	c.Items = append(c.Items, item)
	return true
}

// Remove deletes the matching entry. Returns false when nothing matched.
func (c *Cart) Remove(bookID uuid.UUID) bool {
	for i, item := range c.Items {
		if item.BookID == bookID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
