package pagination

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// DefaultLimit is the default number of items per page
const DefaultLimit = 10

// MaxLimit is the maximum number of items per page
const MaxLimit = 50

var (
	ErrInvalidPage  = errors.New("page must be a positive integer")
	ErrInvalidLimit = errors.New("limit must be an integer between 1 and 50")
)

// Params represents pagination parameters
type Params struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Offset int    `json:"-"`
	Search string `json:"search,omitempty"`
}

// Meta represents pagination metadata
type Meta struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Total       int64 `json:"totalUsers"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	Limit       int   `json:"limit"`
}

// New validates raw page/limit values; empty strings take the defaults
func New(rawPage, rawLimit, search string) (*Params, error) {
	page := 1
	if s := strings.TrimSpace(rawPage); s != "" {
		p, err := strconv.Atoi(s)
		if err != nil || p < 1 {
			return nil, ErrInvalidPage
		}
		page = p
	}

	limit := DefaultLimit
	if s := strings.TrimSpace(rawLimit); s != "" {
		l, err := strconv.Atoi(s)
		if err != nil || l < 1 || l > MaxLimit {
			return nil, ErrInvalidLimit
		}
		limit = l
	}

	// offset must fit in an int
	if page-1 > math.MaxInt/limit {
		return nil, ErrInvalidPage
	}

	return &Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
		Search: strings.TrimSpace(search),
	}, nil
}

// GetParams extracts pagination parameters from request
func GetParams(c *fiber.Ctx) (*Params, error) {
	return New(c.Query("page"), c.Query("limit"), c.Query("search"))
}

// GetMeta calculates pagination metadata
func GetMeta(params *Params, total int64) *Meta {
	totalPages := int(total) / params.Limit
	if int(total)%params.Limit > 0 {
		totalPages++
	}

	return &Meta{
		CurrentPage: params.Page,
		TotalPages:  totalPages,
		Total:       total,
		HasNextPage: params.Page < totalPages,
		HasPrevPage: params.Page > 1,
		Limit:       params.Limit,
	}
}
