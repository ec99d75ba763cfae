package wishlists

import (
	"strings"

	"github.com/Development-Team-8/wishlists/internal/items"
)

// Wishlist es una colección de items con nombre, de un cliente.
// ID es opaco: hex de ObjectID en Mongo, UUID en Postgres.
type Wishlist struct {
	ID         string       `json:"_id" bson:"-"`
	Name       string       `json:"name" bson:"name"`
	CustomerID string       `json:"customer_id" bson:"customer_id"`
	IsPublic   bool         `json:"isPublic" bson:"isPublic"`
	Items      []items.Item `json:"items" bson:"items"`
}

// normalized garantiza que items se serialice como [] y nunca como null.
func (wishlist Wishlist) normalized() Wishlist {
	if wishlist.Items == nil {
		wishlist.Items = []items.Item{}
	}
	return wishlist
}

// emptied arma una wishlist nueva con la misma identidad y sin items.
func (wishlist Wishlist) emptied() Wishlist {
	return Wishlist{
		ID:         wishlist.ID,
		Name:       wishlist.Name,
		CustomerID: wishlist.CustomerID,
		IsPublic:   wishlist.IsPublic,
		Items:      []items.Item{},
	}
}

// CreateWishlistInput es el payload de POST /wishlists.
// Cada item embebido se valida como un item completo.
type CreateWishlistInput struct {
	Name       string            `json:"name" validate:"required"`
	CustomerID string            `json:"customer_id" validate:"required"`
	IsPublic   *bool             `json:"isPublic"`
	Items      []items.ItemInput `json:"items" validate:"omitempty,dive"`
}

// UpdateWishlistInput es el payload de PUT /wishlists/{id}.
// Usamos punteros para saber si el cliente mandó o no cada campo.
type UpdateWishlistInput struct {
	Name       *string            `json:"name" validate:"omitempty,min=1"`
	CustomerID *string            `json:"customer_id" validate:"omitempty,min=1"`
	IsPublic   *bool              `json:"isPublic"`
	Items      *[]items.ItemInput `json:"items" validate:"omitempty,dive"`
}

func (input UpdateWishlistInput) empty() bool {
	return input.Name == nil && input.CustomerID == nil && input.IsPublic == nil && input.Items == nil
}

// AddItemInput es el payload de POST /wishlists/{id}/items.
type AddItemInput struct {
	ItemID *items.FlexInt `json:"item_id" validate:"required"`
}

// SetPublicInput es el payload opcional de PUT /wishlists/{id}/public.
// Sin isPublic el flag se invierte.
type SetPublicInput struct {
	IsPublic *bool `json:"isPublic"`
}

// ListFilter filtra GET /wishlists por igualdad exacta.
// Si vienen los dos, customer_id tiene prioridad.
type ListFilter struct {
	CustomerID string
	Name       string
}

// Normalize deja un solo criterio activo.
func (filter ListFilter) Normalize() ListFilter {
	filter.CustomerID = strings.TrimSpace(filter.CustomerID)
	filter.Name = strings.TrimSpace(filter.Name)
	if filter.CustomerID != "" {
		filter.Name = ""
	}
	return filter
}

func toItems(inputs []items.ItemInput) ([]items.Item, error) {
	out := make([]items.Item, 0, len(inputs))
	for _, input := range inputs {
		item, err := input.ToItem()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
