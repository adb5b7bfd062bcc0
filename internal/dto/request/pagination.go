package request

import (
	"net/url"

	"court-booking/pkg/utils"
)

// PaginatedRequest is embedded by every list request
type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

// PageFromQuery reads ?page=&per_page=, falling back to the first page and capping per_page
func PageFromQuery(query url.Values) PaginatedRequest {
	p := PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), utils.DefaultPerPage),
	}
	if p.PerPage > utils.MaxPerPage {
		p.PerPage = utils.MaxPerPage
	}
	return p
}

func (p PaginatedRequest) Limit() int {
	switch {
	case p.PerPage < 1:
		return utils.DefaultPerPage
	case p.PerPage > utils.MaxPerPage:
		return utils.MaxPerPage
	}
	return p.PerPage
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Limit())
}
