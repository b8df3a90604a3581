package handler

// createPropertyRequest uses a pointer for price so that an explicit 0 is
// distinguishable from an absent field.
type createPropertyRequest struct {
	Address string  `json:"address" validate:"required"`
	Price   *int    `json:"price"   validate:"required,gte=0"`
	Type    *string `json:"type"`
	Region  *string `json:"region"`
}

// propertyResponse is the wire shape of a persisted property. Type and
// Region serialize as null when absent.
type propertyResponse struct {
	ID      int     `json:"id"`
	Address string  `json:"address"`
	Price   int     `json:"price"`
	Type    *string `json:"type"`
	Region  *string `json:"region"`
}

type analyticsSummaryResponse struct {
	TotalProperties    int            `json:"total_properties"`
	AveragePrice       string         `json:"average_price"`
	PropertiesByRegion map[string]int `json:"properties_by_region"`
}
