package catalog

// Choice is a select option: the backend value and its label.
type Choice struct {
	Value string
	Label string
}

var Transmissions = []Choice{
	{"MANUAL", "Manual"},
	{"AUTOMATIC", "Automatic"},
	{"CVT", "CVT"},
}

var FuelTypes = []Choice{
	{"PETROL", "Petrol"},
	{"DIESEL", "Diesel"},
	{"ELECTRIC", "Electric"},
	{"HYBRID", "Hybrid"},
}

var Conditions = []string{"Excellent", "Very Good", "Good", "Fair", "Needs Work"}

var Makes = []string{
	"Toyota", "Mercedes-Benz", "BMW", "Audi", "Volkswagen", "Nissan",
	"Honda", "Ford", "Hyundai", "Kia", "Mazda", "Subaru", "Mitsubishi",
}

var Locations = []string{
	"Nairobi", "Mombasa", "Kisumu", "Nakuru", "Eldoret", "Thika",
	"Machakos", "Meru", "Nyeri", "Kakamega", "Malindi", "Garissa",
}

// Orderings are the sort options the car list accepts. The empty value is
// the backend default, newest first.
var Orderings = []Choice{
	{"", "Newest first"},
	{"created_at", "Oldest first"},
	{"price", "Price: low to high"},
	{"-price", "Price: high to low"},
	{"-year", "Year: newest"},
	{"year", "Year: oldest"},
	{"mileage", "Mileage: lowest"},
	{"-mileage", "Mileage: highest"},
}

func hasValue(choices []Choice, v string) bool {
	for _, c := range choices {
		if c.Value == v {
			return true
		}
	}
	return false
}

func IsTransmission(v string) bool { return hasValue(Transmissions, v) }
func IsFuelType(v string) bool     { return hasValue(FuelTypes, v) }

// IsOrdering accepts the listed options plus "-created_at".
func IsOrdering(v string) bool {
	return v == "-created_at" || hasValue(Orderings, v)
}

func IsCondition(v string) bool {
	for _, c := range Conditions {
		if c == v {
			return true
		}
	}
	return false
}

// Label returns the display label for v, or v itself when unknown.
func Label(choices []Choice, v string) string {
	for _, c := range choices {
		if c.Value == v {
			return c.Label
		}
	}
	return v
}
