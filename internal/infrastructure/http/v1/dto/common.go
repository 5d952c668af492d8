// Package dto defines request and response shapes for the v1 API.
package dto

// IDResponse is returned by create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// SuccessResponse is a generic success acknowledgement.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ListQuery holds common list query parameters.
type ListQuery struct {
	Search  string `form:"search"`
	OrderBy string `form:"orderBy"`
	Limit   int    `form:"limit"`
	Offset  int    `form:"offset"`
}
