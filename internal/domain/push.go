package domain

// PushRequest is the body of the push dispatch function.
type PushRequest struct {
	TargetUserID string                 `json:"targetUserId" validate:"required"`
	Title        string                 `json:"title" validate:"required"`
	Body         string                 `json:"body" validate:"required"`
	Payload      map[string]interface{} `json:"payload,omitempty"`
}

// PushResult maps each distinct device token to the gateway HTTP status it
// got back (0 when the send itself failed before a response).
type PushResult struct {
	DispatchID string
	Tokens     map[string]int
}
