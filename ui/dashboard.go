package ui

import (
	"fmt"
	"strings"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/catalog"
	"github.com/leonexus/site/dealership"
	"github.com/leonexus/site/listing"
)

// InventoryStats summarizes a dealer's listings.
type InventoryStats struct {
	Total     int
	Published int
	Drafts    int
}

func CountInventory(cars []api.Car) InventoryStats {
	s := InventoryStats{Total: len(cars)}
	for _, c := range cars {
		if c.Published {
			s.Published++
		} else {
			s.Drafts++
		}
	}
	return s
}

func inventoryStats(s InventoryStats) g.Node {
	return Div(
		Class("grid grid-cols-1 sm:grid-cols-3 gap-4 mb-8"),
		statCard("Total listings", listing.FormatCount(s.Total)),
		statCard("Published", listing.FormatCount(s.Published)),
		statCard("Drafts", listing.FormatCount(s.Drafts)),
	)
}

func statusBadge(published bool) g.Node {
	if published {
		return badge("Published", "bg-green-100 text-green-800")
	}
	return badge("Draft", "bg-gray-100 text-gray-700")
}

func inventoryRow(c api.Car) g.Node {
	return Tr(
		ID(fmt.Sprintf("inventory-car-%d", c.ID)),
		Class("border-t"),
		Td(Class("py-2 pr-4"), carImage(c, "w-20 h-14 rounded")),
		Td(Class("py-2 pr-4"),
			A(Href(carURL(c)), Class("font-medium hover:text-yellow-600"), g.Text(listing.Title(c))),
			Div(Class("text-xs text-gray-500"), g.Text(c.Location)),
		),
		Td(Class("py-2 pr-4"), g.Text(listing.FormatPrice(c.Price.String()))),
		Td(Class("py-2 pr-4"), g.Text(intValue(c.Year))),
		Td(Class("py-2 pr-4"), statusBadge(c.Published)),
		Td(Class("py-2 text-right space-x-2 whitespace-nowrap"),
			buttonSecondary("Edit",
				withType("button"),
				withClass("text-sm"),
				withAttributes(
					hx.Get(fmt.Sprintf("/dashboard/cars/%d/edit", c.ID)),
					hx.Target("body"),
					hx.Swap("beforeend"),
				),
			),
			buttonDanger("Delete",
				withType("button"),
				withClass("text-sm"),
				withAttributes(
					hx.Delete(fmt.Sprintf("/dashboard/cars/%d", c.ID)),
					hx.Target("#inventory"),
					hx.Swap("outerHTML"),
					hx.Confirm("Delete this listing? This cannot be undone."),
				),
			),
		),
	)
}

// Inventory is the swappable stats and table block of the dealer dashboard.
func Inventory(cars []api.Car, q string) g.Node {
	shown := listing.SearchCars(cars, q)
	var table g.Node
	switch {
	case len(cars) == 0:
		table = NoResultsMessage("You have no listings yet. Add your first car to get started.")
	case len(shown) == 0:
		table = NoResultsMessage("No listings match your search.")
	default:
		table = Table(
			Class("w-full text-sm"),
			THead(Tr(
				Th(Class("text-left py-2")),
				Th(Class("text-left py-2"), g.Text("Car")),
				Th(Class("text-left py-2"), g.Text("Price")),
				Th(Class("text-left py-2"), g.Text("Year")),
				Th(Class("text-left py-2"), g.Text("Status")),
				Th(Class("py-2")),
			)),
			TBody(g.Map(shown, inventoryRow)),
		)
	}
	return Div(
		ID("inventory"),
		inventoryStats(CountInventory(cars)),
		card(
			Div(
				Class("flex items-center justify-between mb-4 gap-4"),
				H2(Class("text-xl font-semibold"), g.Text("Inventory")),
				Div(Class("w-full max-w-xs"),
					TextInput("inventory-search", "q", q,
						Placeholder("Search your listings"),
						hx.Get("/dashboard/inventory"),
						hx.Trigger("keyup changed delay:300ms"),
						hx.Target("#inventory"),
						hx.Swap("outerHTML"),
					),
				),
			),
			table,
		),
	)
}

func dealershipSummary(d *api.Dealership) g.Node {
	if d == nil {
		return card(
			H2(Class("text-xl font-semibold mb-2"), g.Text("Your dealership")),
			P(Class("text-gray-600 mb-4"), g.Text("Set up your dealership profile so buyers can find you.")),
			button("Create dealership", withType("button"), withAttributes(
				hx.Get("/dashboard/dealership"),
				hx.Target("body"),
				hx.Swap("beforeend"),
			)),
		)
	}
	return card(
		Div(
			Class("flex items-center justify-between"),
			Div(Class("flex items-center gap-4"),
				dealershipAvatar(*d),
				Div(
					H2(Class("text-xl font-semibold"), g.Text(d.Name)),
					g.If(len(d.Locations) > 0, Div(Class("text-sm text-gray-500"), g.Text(joinComma(d.Locations)))),
				),
			),
			buttonSecondary("Edit dealership", withType("button"), withAttributes(
				hx.Get("/dashboard/dealership"),
				hx.Target("body"),
				hx.Swap("beforeend"),
			)),
		),
		g.If(len(d.Specialties) > 0, Div(Class("mt-4"), tagList(d.Specialties))),
	)
}

// DealerDashboardData is everything the dealer dashboard renders.
type DealerDashboardData struct {
	Cars       []api.Car
	Dealership *api.Dealership
	Query      string
}

func DealerDashboardPage(v Viewer, d DealerDashboardData) g.Node {
	name := ""
	if v.User != nil {
		name = v.User.FullName()
	}
	return Page(
		"Dealer Dashboard",
		v,
		[]g.Node{
			Div(
				Class("flex items-center justify-between mb-8"),
				Div(
					H1(Class("text-4xl font-bold"), g.Text("Dealer Dashboard")),
					P(Class("text-gray-600"), g.Textf("Welcome back, %s", name)),
				),
				Div(
					Class("flex gap-4"),
					buttonSecondary("Edit profile", withType("button"), withAttributes(
						hx.Get("/profile"),
						hx.Target("body"),
						hx.Swap("beforeend"),
					)),
					button("Add car", withType("button"), withAttributes(
						hx.Get("/dashboard/cars/new"),
						hx.Target("body"),
						hx.Swap("beforeend"),
					)),
				),
			),
			Div(Class("mb-8"), dealershipSummary(d.Dealership)),
			Inventory(d.Cars, d.Query),
		},
	)
}

// ---- Car form ----

func carFormAction(carID int) string {
	if carID == 0 {
		return "/dashboard/cars"
	}
	return fmt.Sprintf("/dashboard/cars/%d", carID)
}

var publishChoices = []catalog.Choice{
	{Value: "false", Label: "Save as draft"},
	{Value: "true", Label: "Publish now"},
}

func publishedValue(f listing.CarForm) string {
	if f.Published == "on" || f.Published == "true" {
		return "true"
	}
	return "false"
}

// carForm is the dealer listing form. New listings and edits share it.
func carForm(f listing.CarForm, cats []api.Category, carID int, resultID string) g.Node {
	submit := "Create listing"
	if carID != 0 {
		submit = "Save changes"
	}
	return Form(
		Class("space-y-4"),
		hx.Post(carFormAction(carID)),
		hx.Encoding("multipart/form-data"),
		hx.Target("#"+resultID),
		hx.Indicator("#indicator"),
		FormGroup("Title", "title", TextInput("title", "title", f.Title, Required(), Placeholder("e.g., 2023 Toyota Camry Hybrid - Excellent Condition"))),
		Div(
			Class("grid grid-cols-2 gap-4"),
			FormGroup("Make", "make", choiceSelect("make", "make", "Select make", f.Make, stringChoices(withCurrent(catalog.Makes, f.Make)), Required())),
			FormGroup("Model", "model", TextInput("model", "model", f.Model, Required())),
			FormGroup("Year", "year", NumberInput("year", "year", f.Year, Required(), Min("1900"))),
			FormGroup("Price (KES)", "price", NumberInput("price", "price", f.Price, Required(), Min("0"), Step("0.01"))),
			FormGroup("Mileage (km)", "mileage", NumberInput("mileage", "mileage", f.Mileage, Min("0"))),
			FormGroup("Location", "location", choiceSelect("location", "location", "Select location", f.Location, stringChoices(withCurrent(catalog.Locations, f.Location)), Required())),
			FormGroup("Transmission", "transmission", choiceSelect("transmission", "transmission", "Select", f.Transmission, catalog.Transmissions)),
			FormGroup("Fuel type", "fuel_type", choiceSelect("fuel_type", "fuel_type", "Select", f.FuelType, catalog.FuelTypes)),
			FormGroup("Condition", "condition", choiceSelect("condition", "condition", "Select", f.Condition, stringChoices(catalog.Conditions))),
			FormGroup("Category", "category", choiceSelect("category", "category", "Select", f.Category, categoryChoices(cats))),
		),
		FormGroup("Description", "description", TextArea("description", "description", f.Description, "4")),
		FormGroup("Photos (up to 10, 5 MB each)", "images", FileInput("images", "images", true)),
		FormGroup("Visibility", "published", choiceSelect("published", "published", "", publishedValue(f), publishChoices)),
		Div(ID(resultID)),
		Div(Class("flex gap-3 justify-end"),
			g.If(resultID == "car-form-result", modalCloseButton()),
			button(submit, withType("submit")),
		),
	)
}

// withCurrent keeps a stored value selectable when it is not a preset.
func withCurrent(presets []string, current string) []string {
	if current == "" {
		return presets
	}
	for _, p := range presets {
		if strings.EqualFold(p, current) {
			return presets
		}
	}
	return append(append([]string(nil), presets...), current)
}

func CarFormModal(f listing.CarForm, cats []api.Category, carID int) g.Node {
	title := "Add a car"
	if carID != 0 {
		title = "Edit listing"
	}
	return modal(modalConfig{
		modalID: "car-modal",
		title:   title,
		body:    carForm(f, cats, carID, "car-form-result"),
	})
}

// ---- Dealership form ----

func DealershipModal(f dealership.Form, exists bool) g.Node {
	title := "Create dealership"
	submit := "Create"
	if exists {
		title = "Edit dealership"
		submit = "Save changes"
	}
	return modal(modalConfig{
		modalID: "dealership-modal",
		title:   title,
		body: Form(
			Class("space-y-4"),
			hx.Post("/dashboard/dealership"),
			hx.Encoding("multipart/form-data"),
			hx.Target("#dealership-result"),
			FormGroup("Dealership name", "name", TextInput("name", "name", f.Name, Required())),
			FormGroup("Description", "description", TextArea("description", "description", f.Description, "3")),
			FormGroup("Specialties (comma separated)", "specialties", TextInput("specialties", "specialties", joinComma(f.Specialties), Placeholder("SUVs, Luxury, Hybrids"))),
			FormGroup("Locations (comma separated)", "locations", TextInput("locations", "locations", joinComma(f.Locations), Placeholder("Nairobi, Mombasa"))),
			FormGroup("Website", "website", TextInput("website", "website", f.Website, Placeholder("https://"))),
			FormGroup("Logo", "avatar", FileInput("avatar", "avatar", false)),
			Div(ID("dealership-result")),
			Div(Class("flex gap-3 justify-end"),
				modalCloseButton(),
				button(submit, withType("submit")),
			),
		),
	})
}

// ---- Profile form ----

// ProfileFields are the editable profile values. Address only applies to
// dealers.
type ProfileFields struct {
	Dealer    bool
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

func ProfileModal(p ProfileFields) g.Node {
	return modal(modalConfig{
		modalID: "profile-modal",
		title:   "Edit profile",
		body: Form(
			Class("space-y-4"),
			hx.Post("/profile"),
			hx.Target("#profile-result"),
			Div(
				Class("grid grid-cols-2 gap-4"),
				FormGroup("First name", "first_name", TextInput("first_name", "first_name", p.FirstName)),
				FormGroup("Last name", "last_name", TextInput("last_name", "last_name", p.LastName)),
			),
			FormGroup("Phone", "phone", TextInput("phone", "phone", p.Phone)),
			g.If(p.Dealer, FormGroup("Business address", "address", TextArea("address", "address", p.Address, "2"))),
			Div(ID("profile-result")),
			Div(Class("flex gap-3 justify-end"),
				modalCloseButton(),
				button("Save profile", withType("submit")),
			),
		),
	})
}
