package dto

import (
	"fmt"
	"math"
	"net/http"
	"resalab/shared/constant"
	"resalab/shared/failure"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type Sort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

// QueryParams is a page request: a 0-based page index, a page size and sort orders.
type QueryParams struct {
	Page int    `json:"page"`
	Size int    `json:"size"`
	Sort []Sort `json:"sort,omitempty"`
}

// FromRequest populates QueryParams from the page, size and sort query parameters.
// Sort accepts "property" or "property,asc|desc" and may be repeated.
// Example:
//
//	q := &dto.QueryParams{}
//	q.FromRequest(req, 20, 2000)
//
// Missing or malformed page and size fall back to defaults, size is capped at maxSize
// and page is capped so that the row offset cannot overflow.
func (q *QueryParams) FromRequest(r *http.Request, defaultSize, maxSize int) {
	queryParams := r.URL.Query()

	q.Page = constant.DefaultValuePage
	q.Size = defaultSize

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt >= 0 {
			q.Page = pageInt
		}
	}

	if size := queryParams.Get(constant.RequestParamSize); size != "" {
		if sizeInt, err := strconv.Atoi(size); err == nil && sizeInt > 0 {
			q.Size = min(sizeInt, maxSize)
		}
	}

	// keeps Offset and the next page index within int
	if q.Size > 0 {
		q.Page = min(q.Page, math.MaxInt/q.Size-1)
	}

	q.Sort = nil

	for _, raw := range queryParams[constant.RequestParamSort] {
		parts := strings.Split(raw, ",")
		property := strings.TrimSpace(parts[0])

		if property == "" {
			continue
		}

		direction := SortDirAsc
		if len(parts) > 1 && strings.EqualFold(strings.TrimSpace(parts[1]), SortDirDesc) {
			direction = SortDirDesc
		}

		q.Sort = append(q.Sort, Sort{Property: property, Direction: direction})
	}
}

// Offset returns the number of rows preceding the requested page.
func (q *QueryParams) Offset() int {
	return q.Page * q.Size
}

// OrderBy renders the ORDER BY expression. Properties are resolved to columns through sortable,
// unknown properties are rejected, and the primary column is appended as a final tie-breaker.
func (q *QueryParams) OrderBy(sortable map[string]string, primaryColumn string) (string, error) {
	orders := make([]string, 0, len(q.Sort)+1)
	hasPrimary := false

	for _, sort := range q.Sort {
		column, ok := sortable[sort.Property]
		if !ok {
			return "", fmt.Errorf("%w: %s", failure.InvalidSortParam, sort.Property)
		}

		if column == primaryColumn {
			hasPrimary = true
		}

		orders = append(orders, fmt.Sprintf("%s %s", column, sort.Direction))
	}

	if !hasPrimary {
		orders = append(orders, fmt.Sprintf("%s %s", primaryColumn, SortDirAsc))
	}

	return strings.Join(orders, ", "), nil
}

// Encode renders the parameters back into a query string.
func (q *QueryParams) Encode() string {
	params := []string{
		fmt.Sprintf("%s=%d", constant.RequestParamPage, q.Page),
		fmt.Sprintf("%s=%d", constant.RequestParamSize, q.Size),
	}

	for _, sort := range q.Sort {
		params = append(params, fmt.Sprintf("%s=%s,%s", constant.RequestParamSort, sort.Property, strings.ToLower(sort.Direction)))
	}

	return strings.Join(params, "&")
}
