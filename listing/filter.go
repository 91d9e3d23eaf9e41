// Package listing holds the car search filter and the helpers used to
// render listings.
package listing

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/leonexus/site/catalog"
)

const (
	minYear = 1900
	maxYear = 2100
)

// Filter is the car search state carried in the query string.
type Filter struct {
	Make         string
	Model        string
	Year         int
	MinYear      int
	MaxYear      int
	MinPrice     string
	MaxPrice     string
	Location     string
	FuelType     string
	Transmission string
	Category     int
	Search       string
	Ordering     string
	Page         int
}

// ParseFilter reads a filter from request values. Malformed values are
// dropped rather than rejected.
func ParseFilter(get func(string) string) Filter {
	f := Filter{
		Make:     clean(get("make")),
		Model:    clean(get("model")),
		Location: clean(get("location")),
		Search:   clean(get("search")),
		Year:     parseYear(get("year")),
		MinYear:  parseYear(get("min_year")),
		MaxYear:  parseYear(get("max_year")),
		MinPrice: parsePrice(get("min_price")),
		MaxPrice: parsePrice(get("max_price")),
		Page:     1,
	}

	if v := strings.ToUpper(clean(get("fuel_type"))); catalog.IsFuelType(v) {
		f.FuelType = v
	}
	if v := strings.ToUpper(clean(get("transmission"))); catalog.IsTransmission(v) {
		f.Transmission = v
	}
	if v := clean(get("ordering")); catalog.IsOrdering(v) {
		f.Ordering = v
	}
	if n, err := strconv.Atoi(clean(get("category"))); err == nil && n > 0 {
		f.Category = n
	}
	if n, err := strconv.Atoi(clean(get("page"))); err == nil && n > 1 {
		f.Page = n
	}

	if f.MinYear > 0 && f.MaxYear > 0 && f.MinYear > f.MaxYear {
		f.MinYear, f.MaxYear = f.MaxYear, f.MinYear
	}
	return f
}

func clean(s string) string {
	return strings.TrimSpace(s)
}

func parseYear(s string) int {
	n, err := strconv.Atoi(clean(s))
	if err != nil || n < minYear || n > maxYear {
		return 0
	}
	return n
}

func parsePrice(s string) string {
	s = strings.ReplaceAll(clean(s), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Values is the backend query for the filter. Empty fields are omitted.
func (f Filter) Values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	setInt := func(key string, n int) {
		if n > 0 {
			v.Set(key, strconv.Itoa(n))
		}
	}

	set("make", f.Make)
	set("model", f.Model)
	setInt("year", f.Year)
	setInt("min_year", f.MinYear)
	setInt("max_year", f.MaxYear)
	set("min_price", f.MinPrice)
	set("max_price", f.MaxPrice)
	set("location", f.Location)
	set("fuel_type", f.FuelType)
	set("transmission", f.Transmission)
	setInt("category", f.Category)
	set("search", f.Search)
	set("ordering", f.Ordering)
	if f.Page > 1 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	return v
}

// QueryString is the site URL query for the filter, without the "?".
func (f Filter) QueryString() string {
	return f.Values().Encode()
}

// WithPage returns a copy of the filter at page n.
func (f Filter) WithPage(n int) Filter {
	if n < 1 {
		n = 1
	}
	f.Page = n
	return f
}

// Active reports whether any narrowing field is set.
func (f Filter) Active() bool {
	f.Page = 1
	f.Ordering = ""
	return len(f.Values()) > 0
}

// PageFromURL extracts the page number from a backend next/previous link.
// A previous link without a page parameter points at page 1. It returns 0
// when there is no link.
func PageFromURL(link string) int {
	if link == "" {
		return 0
	}
	u, err := url.Parse(link)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
