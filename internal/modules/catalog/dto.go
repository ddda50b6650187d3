package catalog

type CreateApartmentRequest struct {
	ID               string   `json:"id"`
	Title            string   `json:"title" binding:"required"`
	ShortDescription string   `json:"short_description"`
	Description      string   `json:"description"`
	MaxGuests        int      `json:"max_guests" binding:"required,min=1"`
	Area             float64  `json:"area" binding:"omitempty,gt=0"`
	PriceBase        int64    `json:"price_base" binding:"required,min=0"`
	View             string   `json:"view" binding:"omitempty,oneof=sea city garden"`
	HasTerrace       bool     `json:"has_terrace"`
	Features         []string `json:"features"`
	Images           []string `json:"images"`
}

// UpdateApartmentRequest carries only the fields the admin actually sent;
// absent fields stay untouched.
type UpdateApartmentRequest struct {
	Title            *string  `json:"title,omitempty"`
	ShortDescription *string  `json:"short_description,omitempty"`
	Description      *string  `json:"description,omitempty"`
	MaxGuests        *int     `json:"max_guests,omitempty" binding:"omitempty,min=1"`
	Area             *float64 `json:"area,omitempty" binding:"omitempty,gt=0"`
	PriceBase        *int64   `json:"price_base,omitempty" binding:"omitempty,min=0"`
	View             *string  `json:"view,omitempty" binding:"omitempty,oneof=sea city garden"`
	HasTerrace       *bool    `json:"has_terrace,omitempty"`
	Features         []string `json:"features,omitempty"`
	Images           []string `json:"images,omitempty"`
	IsActive         *bool    `json:"is_active,omitempty"`
}
