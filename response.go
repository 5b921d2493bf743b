package deskmates

// Response is the envelope every platform endpoint wraps its payload in.
// Field names are the client-side camelCase convention; the pipeline rewrites
// the wire's snake_case keys before decoding.
type Response[T any] struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Data      T      `json:"data"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Page is the pagination container used by the list endpoints.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}
