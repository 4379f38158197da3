package dto

// ErrorResponse is the uniform error payload returned by every handler.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageRequest carries optional pagination parameters.
type PageRequest struct {
	Page int `json:"page" query:"page"`
	Size int `json:"size" query:"size"`
}

// Normalize applies defaults and caps to pagination parameters.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = 50
	}
	if p.Size > 200 {
		p.Size = 200
	}
}

// Offset returns the row offset for the current page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}
