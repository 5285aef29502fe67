package api

// Error is the body of every failed request.
type Error struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
