package models

// CatalogItem represents a clearance item the customer can select in step 1
type CatalogItem struct {
	Code      string  `json:"code"`      // Quantity field code (e.g., "sofa_qty")
	Label     string  `json:"label"`     // Display label (e.g., "Sofa")
	UnitLabel string  `json:"unitLabel"` // Unit shown next to the counter (e.g., "set")
	UnitPrice float64 `json:"unitPrice"` // Price per unit in GBP
	Image     string  `json:"image"`     // Image reference served under /img/calculator
}

// AccessIssue represents a property-access difficulty the customer can tick in step 2
type AccessIssue struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Image string `json:"image"`
}

// ClearanceItems is the fixed item catalog. Its order is the order of breakdown lines.
var ClearanceItems = []CatalogItem{
	{Code: "garden_qty", Label: "Garden waste", UnitLabel: "ton bag", UnitPrice: 40, Image: "/img/calculator/garden-waste-clearance.webp"},
	{Code: "general_qty", Label: "Mixed non-recyclables", UnitLabel: "ton bag", UnitPrice: 60, Image: "/img/calculator/non-recyclable-waste-clearance.webp"},
	{Code: "sofa_qty", Label: "Sofa", UnitLabel: "set", UnitPrice: 80, Image: "/img/calculator/sofa-clearance.webp"},
	{Code: "mattress_qty", Label: "Mattress", UnitLabel: "each", UnitPrice: 40, Image: "/img/calculator/mattress-clearance.webp"},
	{Code: "bed_qty", Label: "Bed + Mattress", UnitLabel: "set", UnitPrice: 80, Image: "/img/calculator/bed-mattress-clearance.webp"},
	{Code: "fridge_qty", Label: "Fridge / Large appliance", UnitLabel: "each", UnitPrice: 110, Image: "/img/calculator/fridge-clearance.webp"},
	{Code: "washer_qty", Label: "Washing machine", UnitLabel: "each", UnitPrice: 40, Image: "/img/calculator/washing-machine-clearance.webp"},
	{Code: "room_qty", Label: "Full room clearance", UnitLabel: "room", UnitPrice: 400, Image: "/img/calculator/full-room-clearance.webp"},
}

// AccessIssues is the fixed access-condition catalog
var AccessIssues = []AccessIssue{
	{Code: "restricted-parking", Label: "Restricted or distant parking", Image: "/img/calculator/restricted-access-clearance.jpg"},
	{Code: "no-lift", Label: "Upper floor without lift access", Image: "/img/calculator/no-elevator-clearance.jpg"},
	{Code: "narrow-doors", Label: "Item size exceeds door width", Image: "/img/calculator/narrow-doors-clearance.jpg"},
	{Code: "attic-basement", Label: "Items in attic or basement", Image: "/img/calculator/attic-basement-clearance.jpg"},
}

// IsCatalogItem reports whether code names an item in ClearanceItems
func IsCatalogItem(code string) bool {
	for _, item := range ClearanceItems {
		if item.Code == code {
			return true
		}
	}
	return false
}

// IsAccessIssue reports whether code names an entry in AccessIssues
func IsAccessIssue(code string) bool {
	for _, issue := range AccessIssues {
		if issue.Code == code {
			return true
		}
	}
	return false
}

// CatalogResponse is returned by GET /api/catalog
type CatalogResponse struct {
	Items            []CatalogItem `json:"items"`
	AccessIssues     []AccessIssue `json:"accessIssues"`
	MileRate         float64       `json:"mileRate"`
	ComplicationRate float64       `json:"complicationRate"`
}
