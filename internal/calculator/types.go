package calculator

// KeysRequest is the JSON body for POST /calculator/sessions/{id}/keys and
// POST /calculator/evaluate.
type KeysRequest struct {
	Keys []string `json:"keys"` // key identifiers, e.g. "5", "+", "del", "+/-"
}

// SessionResponse is the JSON response for the session endpoints.
type SessionResponse struct {
	ID string `json:"id"`
	View
}

// EvaluateResponse is the JSON response for POST /calculator/evaluate.
type EvaluateResponse struct {
	View
	Steps []Step `json:"steps"`
}
