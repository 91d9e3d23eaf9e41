package listing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/catalog"
)

var priceRe = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// CarForm is the raw dealer car form.
type CarForm struct {
	Title        string
	Make         string
	Model        string
	Year         string
	Price        string
	Mileage      string
	Location     string
	Condition    string
	Description  string
	Transmission string
	FuelType     string
	Category     string
	Published    string
}

// ParseCarForm reads a car form from request values.
func ParseCarForm(get func(string) string) CarForm {
	return CarForm{
		Title:        clean(get("title")),
		Make:         clean(get("make")),
		Model:        clean(get("model")),
		Year:         clean(get("year")),
		Price:        strings.ReplaceAll(clean(get("price")), ",", ""),
		Mileage:      strings.ReplaceAll(clean(get("mileage")), ",", ""),
		Location:     clean(get("location")),
		Condition:    clean(get("condition")),
		Description:  clean(get("description")),
		Transmission: strings.ToUpper(clean(get("transmission"))),
		FuelType:     strings.ToUpper(clean(get("fuel_type"))),
		Category:     clean(get("category")),
		Published:    clean(get("published")),
	}
}

// Validate checks the form and returns the backend input. The first
// problem found is returned as the error.
func (f CarForm) Validate(now time.Time) (api.CarInput, error) {
	required := []struct{ value, name string }{
		{f.Title, "Title"},
		{f.Make, "Make"},
		{f.Model, "Model"},
		{f.Year, "Year"},
		{f.Price, "Price"},
		{f.Location, "Location"},
	}
	for _, r := range required {
		if r.value == "" {
			return api.CarInput{}, fmt.Errorf("%s is required", r.name)
		}
	}

	in := api.CarInput{
		Title:        f.Title,
		Make:         f.Make,
		Model:        f.Model,
		Location:     f.Location,
		Condition:    f.Condition,
		Description:  f.Description,
		Transmission: f.Transmission,
		FuelType:     f.FuelType,
	}

	year, err := strconv.Atoi(f.Year)
	if err != nil {
		return api.CarInput{}, fmt.Errorf("Year must be a number")
	}
	if year < minYear || year > now.Year()+1 {
		return api.CarInput{}, fmt.Errorf("Year must be between %d and %d", minYear, now.Year()+1)
	}
	in.Year = year

	if !priceRe.MatchString(f.Price) {
		return api.CarInput{}, fmt.Errorf("Price must be a number with at most two decimal places")
	}
	if p, _ := strconv.ParseFloat(f.Price, 64); p <= 0 {
		return api.CarInput{}, fmt.Errorf("Price must be greater than zero")
	}
	in.Price = f.Price

	if f.Mileage != "" {
		km, err := strconv.Atoi(f.Mileage)
		if err != nil || km < 0 {
			return api.CarInput{}, fmt.Errorf("Mileage must be a whole number of kilometres")
		}
		in.Mileage = &km
	}

	if f.Transmission != "" && !catalog.IsTransmission(f.Transmission) {
		return api.CarInput{}, fmt.Errorf("Unknown transmission: %s", f.Transmission)
	}
	if f.FuelType != "" && !catalog.IsFuelType(f.FuelType) {
		return api.CarInput{}, fmt.Errorf("Unknown fuel type: %s", f.FuelType)
	}
	if f.Condition != "" && !catalog.IsCondition(f.Condition) {
		return api.CarInput{}, fmt.Errorf("Unknown condition: %s", f.Condition)
	}

	if f.Category != "" {
		id, err := strconv.Atoi(f.Category)
		if err != nil || id <= 0 {
			return api.CarInput{}, fmt.Errorf("Invalid category")
		}
		in.Category = &id
	}

	switch f.Published {
	case "":
	case "on", "true", "1":
		published := true
		in.Published = &published
	case "off", "false", "0":
		published := false
		in.Published = &published
	default:
		return api.CarInput{}, fmt.Errorf("Invalid published value")
	}

	return in, nil
}

// CarFormFrom pre-fills the form from an existing listing.
func CarFormFrom(c api.Car) CarForm {
	f := CarForm{
		Title:        c.Title,
		Make:         c.Make,
		Model:        c.Model,
		Price:        c.Price.String(),
		Location:     c.Location,
		Condition:    c.Condition,
		Description:  c.Description,
		Transmission: c.Transmission,
		FuelType:     c.FuelType,
	}
	if c.Year > 0 {
		f.Year = strconv.Itoa(c.Year)
	}
	if c.Mileage != nil {
		f.Mileage = strconv.Itoa(*c.Mileage)
	}
	if c.Category.ID > 0 {
		f.Category = strconv.Itoa(c.Category.ID)
	}
	if c.Published {
		f.Published = "on"
	}
	return f
}
