package playlist

// StationInfo is one parsed playlist entry. Stations are built by the
// parser and never mutated afterwards.
type StationInfo struct {
	Title   string            `json:"title"`
	URL     string            `json:"url"`
	Group   string            `json:"group,omitempty"`
	LogoURL string            `json:"logo,omitempty"`
	TvgID   string            `json:"tvg_id,omitempty"`
	Attrs   map[string]string `json:"attrs,omitempty"`
}
