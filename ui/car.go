package ui

import (
	"fmt"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/catalog"
	"github.com/leonexus/site/cookie"
	"github.com/leonexus/site/listing"
)

func carURL(c api.Car) string {
	return fmt.Sprintf("/cars/%d", c.ID)
}

func carImage(c api.Car, class string) g.Node {
	src := c.CoverImage()
	if src == "" {
		return Div(
			Class(class+" bg-gray-200 flex items-center justify-center text-gray-400"),
			g.Text("No image"),
		)
	}
	return Img(
		Src(src),
		Alt(listing.Title(c)),
		Class(class+" object-cover"),
		g.Attr("loading", "lazy"),
	)
}

func carSpecs(c api.Car) g.Node {
	specs := []string{fmt.Sprintf("%d", c.Year), listing.FormatMileage(c.Mileage)}
	if c.FuelType != "" {
		specs = append(specs, catalog.Label(catalog.FuelTypes, c.FuelType))
	}
	if c.Transmission != "" {
		specs = append(specs, catalog.Label(catalog.Transmissions, c.Transmission))
	}
	nodes := make([]g.Node, 0, len(specs))
	for _, s := range specs {
		nodes = append(nodes, Span(Class("bg-gray-100 rounded px-2 py-1"), g.Text(s)))
	}
	return Div(Class("flex flex-wrap gap-2 text-xs text-gray-600"), g.Group(nodes))
}

func ratingSummary(c api.Car) g.Node {
	if c.ReviewCount == 0 {
		return Span(Class("text-xs text-gray-400"), g.Text("No reviews yet"))
	}
	return Span(
		Class("inline-flex items-center gap-1 text-xs text-gray-600"),
		starRating(c.AverageRating),
		g.Textf("(%d)", c.ReviewCount),
	)
}

// CarGridCard is the compact card used in grids.
func CarGridCard(c api.Car) g.Node {
	return Article(
		ID(fmt.Sprintf("car-%d", c.ID)),
		Class("bg-white rounded-lg shadow border border-gray-200 overflow-hidden hover:shadow-lg transition"),
		A(Href(carURL(c)), carImage(c, "w-full h-48")),
		Div(
			Class("p-4 space-y-2"),
			A(Href(carURL(c)), Class("block font-semibold text-lg hover:text-yellow-600"), g.Text(listing.Title(c))),
			Div(Class("text-sm text-gray-500"), g.Text(c.Location)),
			carSpecs(c),
			Div(
				Class("flex items-center justify-between pt-2"),
				Span(Class("text-xl font-bold text-yellow-600"), g.Text(listing.FormatPrice(c.Price.String()))),
				ratingSummary(c),
			),
		),
	)
}

// CarListItem is the wide row used in list layout.
func CarListItem(c api.Car) g.Node {
	return Article(
		ID(fmt.Sprintf("car-%d", c.ID)),
		Class("bg-white rounded-lg shadow border border-gray-200 overflow-hidden flex"),
		A(Href(carURL(c)), Class("flex-shrink-0"), carImage(c, "w-64 h-40")),
		Div(
			Class("p-4 flex-1 space-y-2"),
			Div(
				Class("flex items-start justify-between"),
				A(Href(carURL(c)), Class("font-semibold text-lg hover:text-yellow-600"), g.Text(listing.Title(c))),
				Span(Class("text-xl font-bold text-yellow-600"), g.Text(listing.FormatPrice(c.Price.String()))),
			),
			Div(Class("text-sm text-gray-500"), g.Text(c.Location)),
			carSpecs(c),
			g.If(c.Description != "", P(Class("text-sm text-gray-700 line-clamp-2"), g.Text(c.Description))),
			Div(
				Class("flex items-center justify-between pt-2"),
				ratingSummary(c),
				button("View Details", withHref(carURL(c)), withClass("text-sm")),
			),
		),
	)
}

func CarGrid(cars []api.Car) g.Node {
	return Div(
		Class("grid grid-cols-1 sm:grid-cols-2 lg:grid-cols-3 gap-6"),
		g.Map(cars, CarGridCard),
	)
}

func CarList(cars []api.Car) g.Node {
	return Div(
		Class("space-y-4"),
		g.Map(cars, CarListItem),
	)
}

func layoutToggle(f listing.Filter, layout string) g.Node {
	link := func(value, text string) g.Node {
		q := f.Values()
		q.Set("layout", value)
		class := "px-3 py-1 border rounded text-sm"
		if layout == value {
			class += " bg-yellow-500 text-white border-yellow-500"
		}
		return A(
			Href("/cars?"+q.Encode()),
			Class(class),
			hx.Get("/cars?"+q.Encode()),
			hx.Target("#car-results"),
			hx.Swap("outerHTML"),
			g.Text(text),
		)
	}
	return Div(
		Class("flex gap-2"),
		link(cookie.LayoutGrid, "Grid"),
		link(cookie.LayoutList, "List"),
	)
}

func pageLink(f listing.Filter, page int, text string) g.Node {
	href := "/cars?" + f.WithPage(page).QueryString()
	return A(
		Href(href),
		Class("px-4 py-2 border rounded hover:bg-gray-100"),
		hx.Get(href),
		hx.Target("#car-results"),
		hx.Swap("outerHTML"),
		hx.PushURL("true"),
		g.Text(text),
	)
}

func pagination(p api.CarPage, f listing.Filter) g.Node {
	prev := listing.PageFromURL(p.Previous)
	next := listing.PageFromURL(p.Next)
	if prev == 0 && next == 0 {
		return nil
	}
	return Nav(
		Class("flex items-center justify-center gap-4 mt-8"),
		Aria("label", "Pagination"),
		g.If(prev > 0, pageLink(f, prev, "Previous")),
		Span(Class("text-sm text-gray-600"), g.Textf("Page %d", f.Page)),
		g.If(next > 0, pageLink(f, next, "Next")),
	)
}

// CarResults is the swappable results block of the cars page.
func CarResults(p api.CarPage, f listing.Filter, layout string) g.Node {
	var body g.Node
	switch {
	case len(p.Cars) == 0:
		body = NoResultsMessage("No cars match your search. Try widening your filters.")
	case layout == cookie.LayoutList:
		body = CarList(p.Cars)
	default:
		body = CarGrid(p.Cars)
	}
	return Div(
		ID("car-results"),
		Div(
			Class("flex items-center justify-between mb-4"),
			P(Class("text-gray-600"), g.Textf("%s cars found", listing.FormatCount(p.Count))),
			layoutToggle(f, layout),
		),
		body,
		pagination(p, f),
	)
}
