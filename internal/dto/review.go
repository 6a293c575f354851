package dto

// SaveTextRequest replaces the editable text for one page.
type SaveTextRequest struct {
	Text string `json:"text"`
}
