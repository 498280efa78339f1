package model

// TemplateDef describes one card template a tenant can pick.
type TemplateDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TemplateCatalog is the fixed set of card templates.
var TemplateCatalog = []TemplateDef{
	{ID: "grid", Name: "Grid Template", Description: "Stamp grid with squares; classic punch-card feel."},
	{ID: "circular", Name: "Circular Template", Description: "Row of circles for each stamp."},
	{ID: "progress", Name: "Progress Bar Template", Description: "Linear progress toward reward."},
	{ID: "tiered", Name: "Tiered Template", Description: "Multi-step tiers unlocking better rewards."},
	{ID: "minimal", Name: "Minimal Template", Description: "Clean lines and lots of whitespace."},
	{ID: "pathway", Name: "Pathway Template", Description: "A path with milestones leading to reward."},
	{ID: "honeycomb", Name: "Hexagonal Honeycomb Template", Description: "Hex cells fill as you earn stamps."},
	{ID: "star", Name: "Star Progress Template", Description: "Collect stars to redeem rewards."},
	{ID: "barcode", Name: "Barcode / QR Code Unlock Template", Description: "Unlock via code scans; bars as progress."},
	{ID: "puzzle", Name: "Puzzle Piece Template", Description: "Assemble pieces to complete the card."},
}

// KnownTemplate reports whether id names a catalog template. Legacy ids from
// earlier iterations are still accepted so old settings records keep loading.
func KnownTemplate(id string) bool {
	for _, def := range TemplateCatalog {
		if def.ID == id {
			return true
		}
	}
	switch id {
	case "classic", "modern", "playful":
		return true
	}
	return false
}
