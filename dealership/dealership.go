// Package dealership validates dealership profile input and searches
// dealership lists.
package dealership

import (
	"errors"
	"net/url"
	"strings"

	"github.com/leonexus/site/api"
)

// Form is the dealership profile form.
type Form struct {
	Name        string
	Description string
	Website     string
	Specialties []string
	Locations   []string
}

// ParseForm reads the form. specialties and locations are comma or newline
// separated lists.
func ParseForm(get func(string) string) Form {
	return Form{
		Name:        strings.TrimSpace(get("name")),
		Description: strings.TrimSpace(get("description")),
		Website:     strings.TrimSpace(get("website")),
		Specialties: ParseList(get("specialties")),
		Locations:   ParseList(get("locations")),
	}
}

// FormFrom pre-fills the form from an existing dealership.
func FormFrom(d api.Dealership) Form {
	return Form{
		Name:        d.Name,
		Description: d.Description,
		Website:     d.Website,
		Specialties: d.Specialties,
		Locations:   d.Locations,
	}
}

// ParseList splits s on commas and newlines. Entries are trimmed, empty
// entries dropped and duplicates removed ignoring case, keeping the first.
func ParseList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	seen := make(map[string]bool, len(fields))
	out := []string{}
	for _, f := range fields {
		f = strings.TrimSpace(f)
		key := strings.ToLower(f)
		if f == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}

// Validate returns the backend input or the first problem found.
func (f Form) Validate() (api.DealershipInput, error) {
	if f.Name == "" {
		return api.DealershipInput{}, errors.New("Dealership name is required")
	}
	if f.Description == "" {
		return api.DealershipInput{}, errors.New("Dealership description is required")
	}
	if f.Website != "" {
		u, err := url.Parse(f.Website)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return api.DealershipInput{}, errors.New("Website must be a full http or https URL")
		}
	}
	specialties := f.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	locations := f.Locations
	if locations == nil {
		locations = []string{}
	}
	return api.DealershipInput{
		Name:        f.Name,
		Description: f.Description,
		Website:     f.Website,
		Specialties: specialties,
		Locations:   locations,
	}, nil
}

// Matches reports whether q appears in the dealership's name, locations or
// specialties, ignoring case.
func Matches(d api.Dealership, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(d.Name), q) {
		return true
	}
	for _, group := range [][]string{d.Locations, d.Specialties} {
		for _, s := range group {
			if strings.Contains(strings.ToLower(s), q) {
				return true
			}
		}
	}
	return false
}

// Filter keeps the dealerships that match q.
func Filter(list []api.Dealership, q string) []api.Dealership {
	if strings.TrimSpace(q) == "" {
		return list
	}
	out := []api.Dealership{}
	for _, d := range list {
		if Matches(d, q) {
			out = append(out, d)
		}
	}
	return out
}
