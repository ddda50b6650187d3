package catalog

import (
	"context"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/repository"
)

type ApartmentRepository interface {
	Create(ctx context.Context, a *domain.Apartment) error
	GetByID(ctx context.Context, id string) (*domain.Apartment, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Apartment, error)
	Update(ctx context.Context, id string, upd repository.ApartmentUpdate) error
	Delete(ctx context.Context, id string) error
}
