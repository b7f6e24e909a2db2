package models

import "slices"

// Pagination defaults
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
)

// PageSizeOptions are the page sizes offered by the result viewer
var PageSizeOptions = []int{10, 20, 50, 100}

// PageQuery represents the pagination parameters sent with every fetch
type PageQuery struct {
	PageNumber int `form:"pageNumber" json:"pageNumber"`
	PageSize   int `form:"pageSize" json:"pageSize"`
}

// DefaultPageQuery returns the first page at the default size
func DefaultPageQuery() PageQuery {
	return PageQuery{PageNumber: DefaultPageNumber, PageSize: DefaultPageSize}
}

// IsValidPageSize reports whether size is one of PageSizeOptions
func IsValidPageSize(size int) bool {
	return slices.Contains(PageSizeOptions, size)
}

// Normalize coerces out-of-domain values to the defaults
func (q PageQuery) Normalize() PageQuery {
	if q.PageNumber < 1 {
		q.PageNumber = DefaultPageNumber
	}
	if !IsValidPageSize(q.PageSize) {
		q.PageSize = DefaultPageSize
	}
	return q
}

// Offset returns the zero-based index of the first row on the page
func (q PageQuery) Offset() int {
	return (q.PageNumber - 1) * q.PageSize
}

// RowNumber returns the 1-based display number of the idx-th row on the page
func (q PageQuery) RowNumber(idx int) int {
	return q.Offset() + idx + 1
}

// ResultPage represents one page of records returned by the students API
type ResultPage struct {
	Rows  []Record `json:"data"`
	Total int      `json:"total"`
}

// TotalPages calculates ceil(total / pageSize), never less than 1
func (p ResultPage) TotalPages(pageSize int) int {
	if pageSize < 1 || p.Total <= 0 {
		return 1
	}
	totalPages := p.Total / pageSize
	if p.Total%pageSize > 0 {
		totalPages++
	}
	return totalPages
}

// IsEmpty reports whether the page carries no rows
func (p ResultPage) IsEmpty() bool {
	return len(p.Rows) == 0
}

// Columns returns the display columns: the keys of the first row in the
// order the API sent them, without the sequence number field
func (p ResultPage) Columns() []string {
	if len(p.Rows) == 0 {
		return nil
	}
	columns := make([]string, 0, len(p.Rows[0].Fields))
	for _, field := range p.Rows[0].Fields {
		if field.Name == SequenceField {
			continue
		}
		columns = append(columns, field.Name)
	}
	return columns
}
