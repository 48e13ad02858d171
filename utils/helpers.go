package utils

import (
	"math"
	"strconv"
)

// ParseID parses a numeric path parameter.
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// Round to 2 decimal places
func RoundToTwo(val float64) float64 {
	return math.Round(val*100) / 100
}

// Pagination helpers
type PaginationQuery struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=20"`
}

func (p *PaginationQuery) Offset() int {
	return (p.Page - 1) * p.Limit
}
