package pricing

import (
	"github.com/Soborbo/bristolhouseclearances/models"
	"github.com/Soborbo/bristolhouseclearances/utils"
)

const (
	// MileRate is the charge per mile from the depot, in GBP
	MileRate = 1.50
	// ComplicationRate is the flat surcharge applied once when any access issue is selected
	ComplicationRate = 0.20

	distanceLabel  = "Distance charge"
	surchargeLabel = "Access difficulty surcharge (20%)"
)

// Engine computes itemized prices against a fixed item catalog.
// It holds no mutable state; the same inputs always give the same PriceResult.
type Engine struct {
	items []models.CatalogItem
}

var defaultEngine = NewEngine(models.ClearanceItems)

// NewEngine creates a new pricing engine over the given catalog
func NewEngine(items []models.CatalogItem) *Engine {
	catalog := make([]models.CatalogItem, len(items))
	copy(catalog, items)
	return &Engine{items: catalog}
}

// Default returns the engine built on models.ClearanceItems
func Default() *Engine {
	return defaultEngine
}

// Compute prices a quote with the default engine
func Compute(items map[string]int, accessIssues []string, miles float64) models.PriceResult {
	return defaultEngine.Compute(items, accessIssues, miles)
}

// Compute calculates the itemized price for the selected items, access issues and distance.
// Breakdown lines follow catalog order; codes not in the catalog are ignored.
func (e *Engine) Compute(items map[string]int, accessIssues []string, miles float64) models.PriceResult {
	breakdown := []models.PriceBreakdownLine{}
	subtotal := 0.0

	for _, item := range e.items {
		qty := items[item.Code]
		if qty <= 0 {
			continue
		}
		lineTotal := item.UnitPrice * float64(qty)
		breakdown = append(breakdown, models.PriceBreakdownLine{
			Label:     item.Label,
			Quantity:  float64(qty),
			UnitPrice: item.UnitPrice,
			LineTotal: lineTotal,
		})
		subtotal += lineTotal
	}

	if miles > 0 {
		distanceCost := utils.Round2(miles * MileRate)
		breakdown = append(breakdown, models.PriceBreakdownLine{
			Label:     distanceLabel,
			Quantity:  utils.Round1(miles),
			UnitPrice: MileRate,
			LineTotal: distanceCost,
		})
		subtotal += distanceCost
	}

	total := subtotal

	// One flat rate regardless of how many issues are selected
	if len(accessIssues) > 0 {
		surcharge := utils.Round2(subtotal * ComplicationRate)
		breakdown = append(breakdown, models.PriceBreakdownLine{
			Label:     surchargeLabel,
			Quantity:  1,
			UnitPrice: surcharge,
			LineTotal: surcharge,
		})
		total = subtotal + surcharge
	}

	return models.PriceResult{
		Total:     utils.Round2(total),
		Breakdown: breakdown,
	}
}
