// Package suggestions is the static advisory content shown alongside the
// chat: crop care tips, government schemes and soil health advice.
package suggestions

import (
	"github.com/tbourn/krishi-mitra/internal/i18n"
)

// Tip is crop care advice.
type Tip struct {
	ID          string `json:"id"`
	Crop        string `json:"crop"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Scheme is a government support programme.
type Scheme struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Catalog is the content for one language.
type Catalog struct {
	Language string   `json:"language"`
	Headings Headings `json:"headings"`
	Tips     []Tip    `json:"tips"`
	Schemes  []Scheme `json:"schemes"`
	Soil     string   `json:"soil"`
}

// Headings are the section titles.
type Headings struct {
	CropAdvice   string `json:"cropAdvice"`
	CropCalendar string `json:"cropCalendar"`
	SoilHealth   string `json:"soilHealth"`
	GovSchemes   string `json:"govSchemes"`
}

var english = Catalog{
	Language: string(i18n.English),
	Headings: Headings{
		CropAdvice:   "Pesticide & Crop Advice",
		CropCalendar: "Crop Calendar",
		SoilHealth:   "Soil Health",
		GovSchemes:   "Government Schemes",
	},
	Tips: []Tip{
		{ID: "rice", Crop: "Rice", Title: "Rice Cultivation Tips", Color: "green",
			Description: "Maintain water levels at 2-3 inches during vegetative stage. Split nitrogen fertilizer doses."},
		{ID: "tomato", Crop: "Tomato", Title: "Tomato Care", Color: "red",
			Description: "Well-drained soil, regular watering. Watch for early blight, apply fungicide preventively."},
		{ID: "maize", Crop: "Maize", Title: "Maize Cultivation", Color: "yellow",
			Description: "Requires sunny climate and fertile soil. Apply NPK fertilizer in split doses."},
		{ID: "potato", Crop: "Potato", Title: "Potato Care", Color: "blue",
			Description: "Plant in well-drained soil, irrigate moderately. Apply organic compost."},
	},
	Schemes: []Scheme{
		{ID: "pm-kisan", Title: "PM-KISAN", Color: "amber",
			Description: "Direct income support of ₹6000 per year to farmer families."},
		{ID: "pmfby", Title: "Fasal Bima Yojana", Color: "purple",
			Description: "Provides crop insurance coverage for various crops."},
	},
	Soil: "Test your soil pH regularly. Most crops prefer pH 6.0-7.0.",
}

// Malayalam content is not translated yet; only headings are localized.
var malayalamHeadings = Headings{
	CropAdvice:   "കീടനാശിനി & വിള ഉപദേശം",
	CropCalendar: "വിള കലണ്ടർ",
	SoilHealth:   "മണ്ണിന്റെ ആരോഗ്യം",
	GovSchemes:   "സർക്കാർ പദ്ധതികൾ",
}

// For returns the catalog for lang. Content without a translation falls
// back to English. The returned value is a copy.
func For(lang i18n.Language) Catalog {
	c := english
	c.Tips = append([]Tip(nil), english.Tips...)
	c.Schemes = append([]Scheme(nil), english.Schemes...)
	if lang == i18n.Malayalam {
		c.Language = string(i18n.Malayalam)
		c.Headings = malayalamHeadings
	}
	return c
}

// TipByID finds a tip of the English catalog.
func TipByID(id string) (Tip, bool) {
	for _, t := range english.Tips {
		if t.ID == id {
			return t, true
		}
	}
	return Tip{}, false
}
