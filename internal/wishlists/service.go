package wishlists

import (
	"context"
	"errors"
	"fmt"

	"github.com/Development-Team-8/wishlists/internal/items"
	pkgvalidator "github.com/Development-Team-8/wishlists/internal/validator"
)

// Errores de dominio (no HTTP). El handler los traduce a status codes.
var (
	ErrorInvalidInput      = errors.New("invalid input")
	ErrorWishlistNotFound  = errors.New("wishlist not found")
	ErrorItemNotFound      = errors.New("item not found")
	ErrorItemNotInWishlist = errors.New("item not in wishlist")
)

// RepositoryAPI es lo que el service necesita del store.
// GetByID y Replace devuelven ErrorWishlistNotFound también para ids mal formados.
type RepositoryAPI interface {
	Insert(ctx context.Context, wishlist Wishlist) (Wishlist, error)
	GetByID(ctx context.Context, id string) (Wishlist, error)
	List(ctx context.Context, filter ListFilter) ([]Wishlist, error)
	Replace(ctx context.Context, wishlist Wishlist) (Wishlist, error)
	Delete(ctx context.Context, id string) error
}

// ItemFinder resuelve items del catálogo. *items.Service lo implementa.
type ItemFinder interface {
	Get(ctx context.Context, id int64) (items.Item, error)
}

// Service contiene reglas de negocio de wishlists.
type Service struct {
	repository RepositoryAPI
	catalog    ItemFinder
}

// NewService crea un service de wishlists.
func NewService(repository RepositoryAPI, catalog ItemFinder) *Service {
	return &Service{repository: repository, catalog: catalog}
}

// Create valida el payload y persiste la wishlist. items es opcional.
func (service *Service) Create(ctx context.Context, input CreateWishlistInput) (Wishlist, error) {
	if err := pkgvalidator.Validate(&input); err != nil {
		return Wishlist{}, fmt.Errorf("%w: %s", ErrorInvalidInput, pkgvalidator.Describe(err))
	}

	embedded, err := toItems(input.Items)
	if err != nil {
		return Wishlist{}, fmt.Errorf("%w: %v", ErrorInvalidInput, err)
	}

	wishlist := Wishlist{
		Name:       input.Name,
		CustomerID: input.CustomerID,
		Items:      embedded,
	}
	if input.IsPublic != nil {
		wishlist.IsPublic = *input.IsPublic
	}

	created, err := service.repository.Insert(ctx, wishlist)
	if err != nil {
		return Wishlist{}, err
	}
	return created.normalized(), nil
}

// Get obtiene una wishlist por ID.
func (service *Service) Get(ctx context.Context, id string) (Wishlist, error) {
	wishlist, err := service.repository.GetByID(ctx, id)
	if err != nil {
		return Wishlist{}, err
	}
	return wishlist.normalized(), nil
}

// List devuelve wishlists, opcionalmente filtradas por customer_id o name.
func (service *Service) List(ctx context.Context, filter ListFilter) ([]Wishlist, error) {
	wishlists, err := service.repository.List(ctx, filter.Normalize())
	if err != nil {
		return nil, err
	}

	out := make([]Wishlist, 0, len(wishlists))
	for _, wishlist := range wishlists {
		out = append(out, wishlist.normalized())
	}
	return out, nil
}

// Update pisa los campos presentes en el payload.
// Si cambia el nombre y choca con otra wishlist, se le agrega un sufijo numérico.
func (service *Service) Update(ctx context.Context, id string, input UpdateWishlistInput) (Wishlist, error) {
	if input.empty() {
		return Wishlist{}, fmt.Errorf("%w: at least one field is required", ErrorInvalidInput)
	}
	if err := pkgvalidator.Validate(&input); err != nil {
		return Wishlist{}, fmt.Errorf("%w: %s", ErrorInvalidInput, pkgvalidator.Describe(err))
	}

	wishlist, err := service.repository.GetByID(ctx, id)
	if err != nil {
		return Wishlist{}, err
	}

	if input.CustomerID != nil {
		wishlist.CustomerID = *input.CustomerID
	}
	if input.IsPublic != nil {
		wishlist.IsPublic = *input.IsPublic
	}
	if input.Items != nil {
		embedded, err := toItems(*input.Items)
		if err != nil {
			return Wishlist{}, fmt.Errorf("%w: %v", ErrorInvalidInput, err)
		}
		wishlist.Items = embedded
	}
	if input.Name != nil && *input.Name != wishlist.Name {
		name, err := service.availableName(ctx, wishlist.ID, *input.Name)
		if err != nil {
			return Wishlist{}, err
		}
		wishlist.Name = name
	}

	updated, err := service.repository.Replace(ctx, wishlist)
	if err != nil {
		return Wishlist{}, err
	}
	return updated.normalized(), nil
}

// availableName junta los nombres de las demás wishlists y resuelve colisiones.
func (service *Service) availableName(ctx context.Context, selfID, proposed string) (string, error) {
	all, err := service.repository.List(ctx, ListFilter{})
	if err != nil {
		return "", err
	}

	taken := make([]string, 0, len(all))
	for _, other := range all {
		if other.ID == selfID {
			continue
		}
		taken = append(taken, other.Name)
	}
	return ResolveName(proposed, taken), nil
}

// Delete elimina una wishlist. Borrar algo que no existe no es error.
func (service *Service) Delete(ctx context.Context, id string) error {
	return service.repository.Delete(ctx, id)
}

// AddItem agrega una copia del estado actual del item a la wishlist.
func (service *Service) AddItem(ctx context.Context, wishlistID string, input AddItemInput) (Wishlist, error) {
	if err := pkgvalidator.Validate(&input); err != nil {
		return Wishlist{}, fmt.Errorf("%w: %s", ErrorInvalidInput, pkgvalidator.Describe(err))
	}

	wishlist, err := service.repository.GetByID(ctx, wishlistID)
	if err != nil {
		return Wishlist{}, err
	}

	item, err := service.catalogItem(ctx, int64(*input.ItemID))
	if err != nil {
		return Wishlist{}, err
	}

	wishlist.Items = append(wishlist.Items, item)
	updated, err := service.repository.Replace(ctx, wishlist)
	if err != nil {
		return Wishlist{}, err
	}
	return updated.normalized(), nil
}

// ListItems devuelve los items embebidos de la wishlist.
func (service *Service) ListItems(ctx context.Context, wishlistID string) ([]items.Item, error) {
	wishlist, err := service.Get(ctx, wishlistID)
	if err != nil {
		return nil, err
	}
	return wishlist.Items, nil
}

// GetItem devuelve el primer snapshot embebido con ese item_id.
func (service *Service) GetItem(ctx context.Context, wishlistID string, itemID int64) (items.Item, error) {
	wishlist, err := service.repository.GetByID(ctx, wishlistID)
	if err != nil {
		return items.Item{}, err
	}

	index := indexOf(wishlist.Items, itemID)
	if index < 0 {
		return items.Item{}, ErrorItemNotInWishlist
	}
	return wishlist.Items[index], nil
}

// RemoveItem saca de la wishlist la primera entrada con ese item_id.
// Si era la única, la wishlist se reconstruye vacía conservando su identidad.
func (service *Service) RemoveItem(ctx context.Context, wishlistID string, itemID int64) error {
	wishlist, err := service.repository.GetByID(ctx, wishlistID)
	if err != nil {
		return err
	}

	if _, err := service.catalogItem(ctx, itemID); err != nil {
		return err
	}

	index := indexOf(wishlist.Items, itemID)
	if index < 0 {
		return ErrorItemNotInWishlist
	}

	if len(wishlist.Items) == 1 {
		wishlist = wishlist.emptied()
	} else {
		wishlist.Items = removeSnapshot(wishlist.Items, wishlist.Items[index])
	}

	_, err = service.repository.Replace(ctx, wishlist)
	return err
}

// Empty vacía la lista de items.
func (service *Service) Empty(ctx context.Context, wishlistID string) (Wishlist, error) {
	wishlist, err := service.repository.GetByID(ctx, wishlistID)
	if err != nil {
		return Wishlist{}, err
	}

	updated, err := service.repository.Replace(ctx, wishlist.emptied())
	if err != nil {
		return Wishlist{}, err
	}
	return updated.normalized(), nil
}

// SetPublic fija isPublic. Con nil invierte el valor actual.
func (service *Service) SetPublic(ctx context.Context, wishlistID string, isPublic *bool) (Wishlist, error) {
	wishlist, err := service.repository.GetByID(ctx, wishlistID)
	if err != nil {
		return Wishlist{}, err
	}

	if isPublic != nil {
		wishlist.IsPublic = *isPublic
	} else {
		wishlist.IsPublic = !wishlist.IsPublic
	}

	updated, err := service.repository.Replace(ctx, wishlist)
	if err != nil {
		return Wishlist{}, err
	}
	return updated.normalized(), nil
}

func (service *Service) catalogItem(ctx context.Context, itemID int64) (items.Item, error) {
	item, err := service.catalog.Get(ctx, itemID)
	if err != nil {
		if errors.Is(err, items.ErrorNotFound) {
			return items.Item{}, ErrorItemNotFound
		}
		return items.Item{}, err
	}
	return item, nil
}

func indexOf(embedded []items.Item, itemID int64) int {
	for index, item := range embedded {
		if item.ItemID == itemID {
			return index
		}
	}
	return -1
}

// removeSnapshot quita la primera entrada cuyo contenido serializado es igual a target.
func removeSnapshot(embedded []items.Item, target items.Item) []items.Item {
	out := make([]items.Item, 0, len(embedded))
	removed := false
	for _, item := range embedded {
		if !removed && items.SameSnapshot(item, target) {
			removed = true
			continue
		}
		out = append(out, item)
	}
	return out
}
