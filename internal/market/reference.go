// Package market holds the static reference price table and the seller's
// in-memory listing ledger.
package market

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// ReferencePrice is the current market price of a crop per quintal (INR).
type ReferencePrice struct {
	Crop    string          `json:"crop"`
	Price   decimal.Decimal `json:"price"   swaggertype:"string" example:"2100"`
	Variety string          `json:"variety"`
	Image   string          `json:"image,omitempty"`
}

var referenceTable = []ReferencePrice{
	{Crop: "Paddy (Rice)", Price: decimal.NewFromInt(2203), Variety: "Common", Image: "/crops/rice.jpg"},
	{Crop: "Potato", Price: decimal.NewFromInt(1500), Variety: "Jyoti", Image: "/crops/potato.jpg"},
	{Crop: "Tomato", Price: decimal.NewFromInt(2100), Variety: "Local", Image: "/crops/tomato.jpg"},
	{Crop: "Maize", Price: decimal.NewFromInt(1800), Variety: "Hybrid", Image: "/crops/maize.jpg"},
	{Crop: "Chili", Price: decimal.NewFromInt(3500), Variety: "Red Hot", Image: "/crops/chili.jpg"},
	{Crop: "Onion", Price: decimal.NewFromInt(1200), Variety: "White", Image: "/crops/onion.jpg"},
}

// fold case-folds s. Casers are stateful, so each call gets its own.
func fold(s string) string { return cases.Fold().String(s) }

// Crops lists the crops that can be listed for sale, in table order.
func Crops() []string {
	out := make([]string, len(referenceTable))
	for i, r := range referenceTable {
		out[i] = r.Crop
	}
	return out
}

// ReferenceTable returns a copy of the whole table.
func ReferenceTable() []ReferencePrice {
	out := make([]ReferencePrice, len(referenceTable))
	copy(out, referenceTable)
	return out
}

// Reference looks up crop case-insensitively.
func Reference(crop string) (ReferencePrice, bool) {
	key := fold(strings.TrimSpace(crop))
	for _, r := range referenceTable {
		if fold(r.Crop) == key {
			return r, true
		}
	}
	return ReferencePrice{}, false
}

// SearchReference filters the table by case-insensitive substring match on
// the crop name. An empty query returns the whole table.
func SearchReference(q string) []ReferencePrice {
	q = fold(strings.TrimSpace(q))
	out := make([]ReferencePrice, 0, len(referenceTable))
	for _, r := range referenceTable {
		if strings.Contains(fold(r.Crop), q) {
			out = append(out, r)
		}
	}
	return out
}

// SuggestedPrice is the price a new listing form is prefilled with.
func SuggestedPrice(crop string) (decimal.Decimal, bool) {
	r, ok := Reference(crop)
	if !ok {
		return decimal.Zero, false
	}
	return r.Price, true
}
