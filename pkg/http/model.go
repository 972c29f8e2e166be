package http

// APIResponse represents standard API error/info response envelope.
type APIResponse struct {
	Status  int         `json:"status" example:"200"`
	Message string      `json:"message" example:"OK"`
	Data    interface{} `json:"data,omitempty"`
}

// APIResponse400Err represents 400 error response.
type APIResponse400Err struct {
	Status  int               `json:"status" example:"400"`
	Message string            `json:"message" example:"Bad Request"`
	Data    []ValidationError `json:"data,omitempty"`
}

// APIResponse503Err represents 503 error response.
type APIResponse503Err struct {
	Status  int         `json:"status" example:"503"`
	Message string      `json:"message" example:"Service Unavailable"`
	Data    []*AppError `json:"data,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"amount"`
	Message string                 `json:"message,omitempty" example:"amount is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
