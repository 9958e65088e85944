package model

// Tour is the fully resolved catalog entry served to clients: one language,
// every field populated after the three-source merge (static defaults,
// database row, cached admin edits). Tours are never mutated by the booking
// flow; the price fields feed the pricing package.
type Tour struct {
	ID           string          `json:"id"`
	Lang         string          `json:"lang"`
	Title        string          `json:"title"`
	Subtitle     string          `json:"subtitle"`
	Description  string          `json:"description"`
	Highlights   []string        `json:"highlights"`
	Itinerary    []string        `json:"itinerary"`
	Included     []string        `json:"included"`
	Excluded     []string        `json:"excluded"`
	MeetingPoint string          `json:"meeting_point"`
	Price        float64         `json:"price"`
	PricingTiers map[int]float64 `json:"pricing_tiers,omitempty"`
	Duration     string          `json:"duration"`
	GroupSize    string          `json:"group_size"`
	Category     string          `json:"category"`
	Images       []string        `json:"images"`
}

// TourContent is one source's partial view of a tour. The same shape is used
// for all three catalog sources. Localized text fields are keyed by language
// code; a missing key or empty value counts as absent and falls through to
// the next source during the merge. Price is a pointer so that an explicit 0
// from a source is distinguishable from the source carrying no price at all.
type TourContent struct {
	ID           string              `json:"id"`
	Title        map[string]string   `json:"title,omitempty"`
	Subtitle     map[string]string   `json:"subtitle,omitempty"`
	Description  map[string]string   `json:"description,omitempty"`
	Highlights   map[string][]string `json:"highlights,omitempty"`
	Itinerary    map[string][]string `json:"itinerary,omitempty"`
	Included     map[string][]string `json:"included,omitempty"`
	Excluded     map[string][]string `json:"excluded,omitempty"`
	MeetingPoint map[string]string   `json:"meeting_point,omitempty"`
	Price        *float64            `json:"price,omitempty"`
	PricingTiers map[int]float64     `json:"pricing_tiers,omitempty"`
	Duration     string              `json:"duration,omitempty"`
	GroupSize    string              `json:"group_size,omitempty"`
	Category     string              `json:"category,omitempty"`
	Images       []string            `json:"images,omitempty"`
}
