package domain

import "time"

type ApartmentView string

const (
	ViewSea    ApartmentView = "sea"
	ViewCity   ApartmentView = "city"
	ViewGarden ApartmentView = "garden"
)

// Apartment is a rentable unit. Prices are in minor currency units (kopecks)
// to keep all money arithmetic integral.
type Apartment struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	ShortDescription string        `json:"short_description,omitempty"`
	Description      string        `json:"description,omitempty"`
	MaxGuests        int           `json:"max_guests"`
	Area             float64       `json:"area,omitempty"`
	PriceBase        int64         `json:"price_base"`
	View             ApartmentView `json:"view"`
	HasTerrace       bool          `json:"has_terrace"`
	Features         []string      `json:"features"`
	Images           []string      `json:"images"`
	IsActive         bool          `json:"is_active"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
