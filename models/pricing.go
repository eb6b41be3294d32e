package models

// PriceBreakdownLine represents one itemized charge contributing to the total
type PriceBreakdownLine struct {
	Label     string  `json:"label"`     // Item label, "Distance charge" or the surcharge label
	Quantity  float64 `json:"quantity"`  // Units, miles (1 decimal) or 1 for the surcharge
	UnitPrice float64 `json:"unitPrice"` // Price per unit in GBP
	LineTotal float64 `json:"lineTotal"` // Total for this line in GBP
}

// PriceResult represents the complete pricing calculation result
type PriceResult struct {
	Total     float64              `json:"total"`     // Rounded to 2 decimals
	Breakdown []PriceBreakdownLine `json:"breakdown"` // Catalog order, then distance, then surcharge
}
