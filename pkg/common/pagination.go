package common

import "math"

// Pagination describes the window of a list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ListResponse is the wire envelope for list endpoints:
// { success, data, pagination: { pages, ... } }.
type ListResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Paginate builds a list envelope. Pages is derived from total and limit;
// a zero limit yields zero pages rather than dividing by zero.
func Paginate(data interface{}, total int64, page, limit int) ListResponse {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return ListResponse{
		Success:    true,
		Data:       data,
		Pagination: Pagination{Page: page, Limit: limit, Total: total, Pages: pages},
	}
}
