package server

// MultiplyRequest is the body of POST /multiply.
type MultiplyRequest struct {
	A string `json:"a"`
	B string `json:"b"`
	// Engine defaults to the server's configured engine.
	Engine string `json:"engine,omitempty"`
}

// MultiplyResponse is the result of a multiplication.
type MultiplyResponse struct {
	Product    string `json:"product"`
	Digits     int    `json:"digits"`
	Engine     string `json:"engine"`
	Duration   string `json:"duration"`
	DurationNs int64  `json:"duration_ns"`
}

// EnginesResponse lists the registered engines.
type EnginesResponse struct {
	Engines []string `json:"engines"`
	Default string   `json:"default"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	// Error is the HTTP status text.
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
