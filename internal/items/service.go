package items

import (
	"context"
	"errors"
	"fmt"

	pkgvalidator "github.com/Development-Team-8/wishlists/internal/validator"
)

// Errores de dominio (no HTTP). El handler los traduce a status codes.
var (
	ErrorInvalidInput = errors.New("invalid input")
	ErrorDuplicateID  = errors.New("duplicate item id")
	ErrorNotFound     = errors.New("item not found")
)

// RepositoryAPI es lo que el service necesita del store.
// Hay una implementación para Mongo y otra para Postgres (JSONB).
type RepositoryAPI interface {
	Insert(ctx context.Context, item Item) (Item, error)
	GetByID(ctx context.Context, id int64) (Item, error)
	List(ctx context.Context) ([]Item, error)
	Delete(ctx context.Context, id int64) error
}

// Service contiene reglas de negocio de items.
type Service struct {
	repository RepositoryAPI
}

// NewService crea un service de items.
func NewService(repository RepositoryAPI) *Service {
	return &Service{repository: repository}
}

// Create valida el payload completo y persiste el item.
func (service *Service) Create(ctx context.Context, itemInput ItemInput) (Item, error) {
	if err := pkgvalidator.Validate(&itemInput); err != nil {
		return Item{}, fmt.Errorf("%w: %s", ErrorInvalidInput, pkgvalidator.Describe(err))
	}

	item, err := itemInput.ToItem()
	if err != nil {
		return Item{}, err
	}

	created, err := service.repository.Insert(ctx, item)
	if err != nil {
		if errors.Is(err, ErrorDuplicateID) {
			return Item{}, ErrorDuplicateID
		}
		return Item{}, err
	}

	return created, nil
}

// Get obtiene un item por ID.
func (service *Service) Get(ctx context.Context, id int64) (Item, error) {
	return service.repository.GetByID(ctx, id)
}

// List devuelve todos los items en el orden del store.
func (service *Service) List(ctx context.Context) ([]Item, error) {
	items, err := service.repository.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Delete elimina un item. Borrar algo que no existe no es error.
func (service *Service) Delete(ctx context.Context, id int64) error {
	return service.repository.Delete(ctx, id)
}
