package icons

// Request is a validated request to generate a set of icons
type Request struct {
	Prompt  string   `json:"prompt"`
	StyleID string   `json:"styleId"`
	Colors  []string `json:"colors,omitempty"`
}

// Response carries the URLs of the generated icons, in variant order
type Response struct {
	Images []string `json:"images"`
}
