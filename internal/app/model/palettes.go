package model

// Palette is a named color scheme offered in the branding editor.
type Palette struct {
	Name   string        `json:"name"`
	Colors PaletteColors `json:"colors"`
}

// PaletteCatalog is the fixed set of named palettes.
var PaletteCatalog = []Palette{
	{Name: "Modern Pastels", Colors: PaletteColors{Primary: "#D8A7B1", Secondary: "#A3B18A", Accent: "#E3C567"}},
	{Name: "Earthy Tones", Colors: PaletteColors{Primary: "#E07A5F", Secondary: "#6B8F71", Accent: "#E3B23C"}},
	{Name: "Bold Contrast", Colors: PaletteColors{Primary: "#4169E1", Secondary: "#FF6F61", Accent: "#FFC107"}},
	{Name: "Muted Jewel Tones", Colors: PaletteColors{Primary: "#0F52BA", Secondary: "#9B111E", Accent: "#9966CC"}},
	{Name: "Ocean Breeze", Colors: PaletteColors{Primary: "#008080", Secondary: "#9FE2BF", Accent: "#F4E1C1"}},
}

// PaletteByName looks up a catalog palette.
func PaletteByName(name string) (Palette, bool) {
	for _, p := range PaletteCatalog {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}
