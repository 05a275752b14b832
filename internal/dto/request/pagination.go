package request

import (
	"math"

	"filme-catalog/pkg/utils"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100

	// MaxPage keeps (page-1)*per_page within int.
	MaxPage = math.MaxInt / MaxPerPage
)

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Limit())
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		return MaxPerPage
	}
	return p.PerPage
}
