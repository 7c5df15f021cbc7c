package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses. Kind is machine-readable; Error is localized per
// Accept-Language.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
