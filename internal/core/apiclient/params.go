package apiclient

import (
	"fmt"
	"net/url"
	"strconv"
)

// Params builds list query parameters in the backend's convention:
// filter[field]=value plus bare page and per_page.
type Params struct {
	filters map[string]string
	page    int
	perPage int
}

// NewParams creates an empty parameter set.
func NewParams() *Params {
	return &Params{filters: make(map[string]string)}
}

// Filter adds a filter[field]=value parameter. Empty values are skipped so
// callers can pass through optional form fields unconditionally.
func (p *Params) Filter(field, value string) *Params {
	if value != "" {
		p.filters[field] = value
	}
	return p
}

// Search adds the free-text search filter.
func (p *Params) Search(query string) *Params {
	return p.Filter("search", query)
}

// Page sets the page number (1-based).
func (p *Params) Page(n int) *Params {
	if n > 0 {
		p.page = n
	}
	return p
}

// PerPage sets the page size.
func (p *Params) PerPage(n int) *Params {
	if n > 0 {
		p.perPage = n
	}
	return p
}

// Values renders the parameters as url.Values for the request.
func (p *Params) Values() url.Values {
	values := url.Values{}
	for field, value := range p.filters {
		values.Set(fmt.Sprintf("filter[%s]", field), value)
	}
	if p.page > 0 {
		values.Set("page", strconv.Itoa(p.page))
	}
	if p.perPage > 0 {
		values.Set("per_page", strconv.Itoa(p.perPage))
	}
	return values
}

// Map renders the parameters as a flat map for cache key construction.
func (p *Params) Map() map[string]string {
	m := make(map[string]string, len(p.filters)+2)
	for field, value := range p.filters {
		m[field] = value
	}
	if p.page > 0 {
		m["page"] = strconv.Itoa(p.page)
	}
	if p.perPage > 0 {
		m["per_page"] = strconv.Itoa(p.perPage)
	}
	return m
}
