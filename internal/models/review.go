package models

// PageState is the review status for a single document page.
type PageState string

const (
	// PageStateReview is the initial state for every page.
	PageStateReview PageState = "review"
	// PageStateApproved is terminal; a page never reverts to review.
	PageStateApproved PageState = "approved"
)

// PageView is what the reviewer sees for one page: its status plus the
// current editable text (extracted text until someone saves an edit).
type PageView struct {
	Page   int       `json:"page"`
	Status PageState `json:"status"`
	Text   string    `json:"text"`
}
