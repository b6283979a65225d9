package templates

type InstantiateRequest struct {
	Name      string `json:"name" binding:"omitempty,min=3,max=255"`
	VenueName string `json:"venue_name" binding:"max=255"`
}

type TemplateFilters struct {
	Category string `form:"category"`
}

type SeedResponse struct {
	Seeded int `json:"seeded"`
}
