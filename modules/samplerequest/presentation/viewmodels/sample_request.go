package viewmodels

type Item struct {
	ProductName string `json:"product_name"`
	Finish      string `json:"finish,omitempty"`
	Quantity    int    `json:"quantity"`
}

type SampleRequest struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Notes              string `json:"notes,omitempty"`
	RequesterID        string `json:"requester_id"`
	RequesterName      string `json:"requester_name"`
	FulfillmentMethod  string `json:"fulfillment_method"`
	Status             string `json:"status"`
	RequiredBy         string `json:"required_by"`
	Items              []Item `json:"items"`
	DeadlineEditable   bool   `json:"deadline_editable"`
	DeadlineLockReason string `json:"deadline_lock_reason,omitempty"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

type DeadlineChange struct {
	OldDeadline   string `json:"old_deadline"`
	NewDeadline   string `json:"new_deadline"`
	Reason        string `json:"reason"`
	ChangedByName string `json:"changed_by_name"`
	Timestamp     string `json:"timestamp"`
}

// DeadlineHistory is the read-side presentation of the change log: entries
// most recent first plus a one-line summary of the latest change.
type DeadlineHistory struct {
	Entries []DeadlineChange `json:"entries"`
	Summary string           `json:"summary,omitempty"`
}
