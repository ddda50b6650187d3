package catalog

import (
	"context"
	"errors"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/repository"
)

// Service manages the apartment catalog. Public reads see active units only;
// admin calls see and mutate everything.
type Service struct {
	apartments ApartmentRepository
}

func NewService(apartments ApartmentRepository) *Service {
	return &Service{apartments: apartments}
}

func (s *Service) ListPublic(ctx context.Context) ([]domain.Apartment, error) {
	return s.apartments.List(ctx, true)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Apartment, error) {
	return s.apartments.List(ctx, false)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Apartment, error) {
	apt, err := s.apartments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrApartmentNotFound
		}
		return nil, err
	}
	return apt, nil
}

// GetPublic hides inactive apartments from the public site.
func (s *Service) GetPublic(ctx context.Context, id string) (*domain.Apartment, error) {
	apt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !apt.IsActive {
		return nil, ErrApartmentNotFound
	}
	return apt, nil
}

func (s *Service) Create(ctx context.Context, req CreateApartmentRequest) (*domain.Apartment, error) {
	apt := &domain.Apartment{
		ID:               req.ID,
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		MaxGuests:        req.MaxGuests,
		Area:             req.Area,
		PriceBase:        req.PriceBase,
		View:             domain.ApartmentView(req.View),
		HasTerrace:       req.HasTerrace,
		Features:         req.Features,
		Images:           req.Images,
		IsActive:         true,
	}
	if apt.Features == nil {
		apt.Features = []string{}
	}
	if apt.Images == nil {
		apt.Images = []string{}
	}
	if err := s.apartments.Create(ctx, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateApartmentRequest) (*domain.Apartment, error) {
	upd := repository.ApartmentUpdate{
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		MaxGuests:        req.MaxGuests,
		Area:             req.Area,
		PriceBase:        req.PriceBase,
		View:             req.View,
		HasTerrace:       req.HasTerrace,
		Features:         req.Features,
		Images:           req.Images,
		IsActive:         req.IsActive,
	}
	if err := s.apartments.Update(ctx, id, upd); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrApartmentNotFound
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.apartments.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrApartmentNotFound
		}
		return err
	}
	return nil
}
