package domain

// Property is the persisted listing entity. ID is assigned by the database
// and immutable once set. Type and Region are optional and serialize as
// JSON null when absent.
type Property struct {
	ID      int     `json:"id"`
	Address string  `json:"address"`
	Price   int     `json:"price"`
	Type    *string `json:"type"`
	Region  *string `json:"region"`
}

// RegionCount is one row of the region aggregate view: a non-null region
// and the number of properties in it.
type RegionCount struct {
	Region        string `json:"region"`
	PropertyCount int    `json:"property_count"`
}
