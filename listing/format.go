package listing

import (
	"math"
	"strconv"
	"strings"

	"github.com/leonexus/site/api"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatPrice renders a backend decimal as Kenyan shillings, e.g.
// "KES 1,250,000". Input that does not parse is returned unchanged.
func FormatPrice(price string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil {
		return price
	}
	if v == math.Trunc(v) {
		return printer.Sprintf("KES %d", int64(v))
	}
	return printer.Sprintf("KES %.2f", v)
}

// FormatMileage renders mileage in kilometres, or "N/A" when unknown.
func FormatMileage(km *int) string {
	if km == nil {
		return "N/A"
	}
	return printer.Sprintf("%d km", *km)
}

func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// Stars returns the number of filled stars for a rating, rounded to the
// nearest whole star and clamped to 0..5.
func Stars(rating float64) int {
	n := int(math.Round(rating))
	if n < 0 {
		return 0
	}
	if n > 5 {
		return 5
	}
	return n
}

// SearchCars filters cars whose title, make, model or location contains q,
// ignoring case. An empty query returns cars unchanged.
func SearchCars(cars []api.Car, q string) []api.Car {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return cars
	}
	var out []api.Car
	for _, c := range cars {
		for _, field := range []string{c.Title, c.Make, c.Model, c.Location} {
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Title returns the car title, falling back to "Year Make Model".
func Title(c api.Car) string {
	if strings.TrimSpace(c.Title) != "" {
		return c.Title
	}
	return c.Name()
}
