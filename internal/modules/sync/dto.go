package sync

type AddSourceRequest struct {
	ApartmentID string `json:"apartment_id" binding:"required"`
	SourceName  string `json:"source_name" binding:"required"`
	IcsURL      string `json:"ics_url" binding:"required,url"`
}

type UpdateSourceRequest struct {
	IcsURL   *string `json:"ics_url,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}
