package cart

// DTO is the cart payload returned to clients. AlreadyInCart is set
// when an add was skipped because the book was already present.
type DTO struct {
	Items         []Item `json:"items"`
	Count         int    `json:"count"`
	AlreadyInCart bool   `json:"already_in_cart,omitempty"`
}

func newDTO(cart *Cart, alreadyInCart bool) *DTO {
	items := cart.Items
	if items == nil {
		items = []Item{}
	}
	return &DTO{
		Items:         items,
		Count:         len(items),
		AlreadyInCart: alreadyInCart,
	}
}
