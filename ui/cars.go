package ui

import (
	"strconv"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/catalog"
	"github.com/leonexus/site/listing"
)

func intValue(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func categoryChoices(cats []api.Category) []catalog.Choice {
	out := make([]catalog.Choice, 0, len(cats))
	for _, c := range cats {
		out = append(out, catalog.Choice{Value: strconv.Itoa(c.ID), Label: c.Name})
	}
	return out
}

// searchBox is the text search with autocomplete suggestions.
func searchBox(value string) g.Node {
	return Div(
		Class("relative"),
		TextInput("search", "search", value,
			Placeholder("Search make, model or location"),
			g.Attr("autocomplete", "off"),
			hx.Get("/cars/suggestions"),
			hx.Trigger("keyup changed delay:300ms"),
			hx.Target("#suggestions"),
			hx.Swap("innerHTML"),
		),
		Div(ID("suggestions"), Class("absolute left-0 right-0 z-30")),
	)
}

// Suggestions is the autocomplete dropdown fragment.
func Suggestions(list []api.Suggestion) g.Node {
	if len(list) == 0 {
		return EmptyResponse()
	}
	items := make([]g.Node, 0, len(list))
	for _, s := range list {
		items = append(items, Li(
			A(
				Href("/cars?search="+urlQueryEscape(s.Value)),
				Class("flex justify-between px-4 py-2 hover:bg-gray-50"),
				Span(g.Text(s.Value)),
				Span(Class("text-xs text-gray-400"), g.Text(s.Type)),
			),
		))
	}
	return Ul(Class("bg-white border rounded shadow mt-1"), g.Group(items))
}

func filterForm(f listing.Filter, cats []api.Category) g.Node {
	return Form(
		ID("car-filters"),
		Class("bg-white rounded-lg shadow border border-gray-200 p-4 space-y-4"),
		Method("get"),
		Action("/cars"),
		hx.Get("/cars"),
		hx.Target("#car-results"),
		hx.Swap("outerHTML"),
		hx.PushURL("true"),
		hx.Trigger("submit, change from:select"),
		hx.Indicator("#indicator"),
		searchBox(f.Search),
		Div(
			Class("grid grid-cols-2 md:grid-cols-4 gap-4"),
			FormGroup("Make", "make", choiceSelect("make", "make", "Any make", f.Make, stringChoices(catalog.Makes))),
			FormGroup("Model", "model", TextInput("model", "model", f.Model, Placeholder("Any model"))),
			FormGroup("Location", "location", choiceSelect("location", "location", "Any location", f.Location, stringChoices(catalog.Locations))),
			FormGroup("Category", "category", choiceSelect("category", "category", "Any category", intValue(f.Category), categoryChoices(cats))),
			FormGroup("Min year", "min_year", NumberInput("min_year", "min_year", intValue(f.MinYear), Min("1900"), Max("2100"))),
			FormGroup("Max year", "max_year", NumberInput("max_year", "max_year", intValue(f.MaxYear), Min("1900"), Max("2100"))),
			FormGroup("Min price (KES)", "min_price", NumberInput("min_price", "min_price", f.MinPrice, Min("0"), Step("any"))),
			FormGroup("Max price (KES)", "max_price", NumberInput("max_price", "max_price", f.MaxPrice, Min("0"), Step("any"))),
			FormGroup("Fuel", "fuel_type", choiceSelect("fuel_type", "fuel_type", "Any fuel", f.FuelType, catalog.FuelTypes)),
			FormGroup("Transmission", "transmission", choiceSelect("transmission", "transmission", "Any transmission", f.Transmission, catalog.Transmissions)),
			FormGroup("Sort by", "ordering", choiceSelect("ordering", "ordering", "", f.Ordering, catalog.Orderings)),
		),
		Div(
			Class("flex gap-4"),
			button("Search", withType("submit")),
			buttonSecondary("Clear", withHref("/cars")),
		),
	)
}

func CarsPage(v Viewer, f listing.Filter, p api.CarPage, cats []api.Category, layout string) g.Node {
	return Page(
		"Browse Cars",
		v,
		[]g.Node{
			pageHeader("Browse Cars"),
			pageSubheader("Find your next car from verified dealers across Kenya."),
			Div(
				Class("grid grid-cols-1 gap-8"),
				filterForm(f, cats),
				CarResults(p, f, layout),
			),
		},
	)
}
