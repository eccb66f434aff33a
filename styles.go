package icongen

// Style is a visual style that can be applied to a set of generated icons
type Style struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	PromptTag string `json:"-"`
}

// Styles declares every icon style our API supports, in the order in which they should
// be presented to users
var Styles = []Style{
	{
		ID:        "pastel-flat",
		Label:     "Style 1 – Soft Pastel Flat",
		PromptTag: "flat pastel icon style, soft pastel colors, smooth vector shapes, minimal detail, no text, clean white background",
	},
	{
		ID:        "glossy-bubble",
		Label:     "Style 2 – Glossy Bubble",
		PromptTag: "glossy 3D bubble icons, soft reflections and highlights, rounded shapes, vibrant colors, no text, clean white background",
	},
	{
		ID:        "minimal-line",
		Label:     "Style 3 – Minimal Line",
		PromptTag: "minimal monoline icon style, thin outlines, simple forms, subtle accent colors, no text, white background",
	},
	{
		ID:        "clay-3d",
		Label:     "Style 4 – 3D Clay",
		PromptTag: "3D clay icon style, soft clay texture, rounded forms, studio lighting, no text, white background",
	},
	{
		ID:        "playful-cartoon",
		Label:     "Style 5 – Playful Cartoon",
		PromptTag: "playful cartoon icon style, bold outlines, exaggerated shapes, bright colors, no text, flat white background",
	},
}

// GetStyleByID looks up a style from the catalog. The second return value is false if
// no style has the given ID; it's up to the caller to decide whether that's an error.
func GetStyleByID(id string) (Style, bool) {
	for i := range Styles {
		if Styles[i].ID == id {
			return Styles[i], true
		}
	}
	return Style{}, false
}

// StyleIDs returns the IDs of all supported styles, in catalog order
func StyleIDs() []string {
	ids := make([]string, 0, len(Styles))
	for i := range Styles {
		ids = append(ids, Styles[i].ID)
	}
	return ids
}
