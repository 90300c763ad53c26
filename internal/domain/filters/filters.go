package filters

import (
	"errors"
	"strings"
)

const (
	AscSort  = "ASC"
	DescSort = "DESC"
)

type Filters struct {
	Page         int      `schema:"page"`
	PageSize     int      `schema:"page_size"`
	Sort         string   `schema:"sort"`
	SortSafelist []string `schema:"-"`
}

func (f *Filters) Limit() int {
	return f.PageSize
}

func (f *Filters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

func (f *Filters) SortColumn() string {
	s := strings.TrimPrefix(f.Sort, "-")
	for _, safeValue := range f.SortSafelist {
		if strings.EqualFold(s, safeValue) {
			return s
		}
	}
	panic(errors.New("Unknown sort column: " + f.Sort))
}

func (f *Filters) SortDirection() string {
	if strings.HasPrefix(f.Sort, "-") {
		return DescSort
	}
	return AscSort
}
