package services

import "strconv"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	MaxPage         = 1_000_000
)

type Page struct {
	Page  int
	Limit int
}

// NewPage parses page/limit query values, falling back to page 1 and the
// default size. Size is capped at MaxPageSize and page at MaxPage.
func NewPage(page, limit string) Page {
	p, _ := strconv.Atoi(page)
	l, _ := strconv.Atoi(limit)
	if p <= 0 {
		p = 1
	}
	if p > MaxPage {
		p = MaxPage
	}
	if l <= 0 {
		l = DefaultPageSize
	}
	if l > MaxPageSize {
		l = MaxPageSize
	}
	return Page{Page: p, Limit: l}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p Page) TotalPages(total int64) int {
	if total == 0 {
		return 0
	}
	pages := int(total) / p.Limit
	if int(total)%p.Limit > 0 {
		pages++
	}
	return pages
}
