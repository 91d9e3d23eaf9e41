package ui

import (
	"fmt"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/listing"
)

func dealershipAvatar(d api.Dealership) g.Node {
	if d.AvatarURL != "" {
		return Img(Src(d.AvatarURL), Alt(d.Name), Class("w-16 h-16 rounded-full object-cover"))
	}
	initial := "?"
	if r := []rune(d.Name); len(r) > 0 {
		initial = string(r[0])
	}
	return Div(
		Class("w-16 h-16 rounded-full bg-yellow-500 text-white flex items-center justify-center text-2xl font-bold"),
		g.Text(initial),
	)
}

func tagList(items []string) g.Node {
	tags := make([]g.Node, 0, len(items))
	for _, s := range items {
		tags = append(tags, badge(s, "bg-gray-100 text-gray-700"))
	}
	return Div(Class("flex flex-wrap gap-2"), g.Group(tags))
}

func DealershipCard(d api.Dealership) g.Node {
	return Article(
		ID(fmt.Sprintf("dealership-%d", d.ID)),
		Class("bg-white rounded-lg shadow border border-gray-200 p-6 space-y-4"),
		Div(
			Class("flex items-center gap-4"),
			dealershipAvatar(d),
			Div(
				Div(Class("flex items-center gap-2"),
					H3(Class("text-lg font-semibold"), g.Text(d.Name)),
					g.If(d.Verified, badge("Verified", "bg-green-100 text-green-800")),
				),
				Div(Class("flex items-center gap-2 text-sm text-gray-600"),
					starRating(d.Rating),
					g.Textf("%.1f", d.Rating),
					Span(g.Textf("· %s cars", listing.FormatCount(d.TotalCars))),
				),
			),
		),
		g.If(d.Description != "", P(Class("text-sm text-gray-700"), g.Text(d.Description))),
		g.If(len(d.Locations) > 0, Div(Class("text-sm text-gray-500"), g.Text("📍 "+joinComma(d.Locations)))),
		g.If(len(d.Specialties) > 0, tagList(d.Specialties)),
		Div(
			Class("flex gap-4 text-sm"),
			g.If(d.Phone != "", A(Href("tel:"+d.Phone), Class("text-yellow-600 hover:underline"), g.Text(d.Phone))),
			g.If(d.Website != "", A(Href(d.Website), Target("_blank"), Rel("noopener"), Class("text-yellow-600 hover:underline"), g.Text("Website"))),
		),
	)
}

// DealershipList is the swappable result list of the dealers page.
func DealershipList(list []api.Dealership) g.Node {
	if len(list) == 0 {
		return Div(ID("dealer-list"), NoResultsMessage("No dealerships found."))
	}
	return Div(
		ID("dealer-list"),
		Class("grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-6"),
		g.Map(list, DealershipCard),
	)
}

func DealersPage(v Viewer, q string, list []api.Dealership) g.Node {
	return Page(
		"Dealers",
		v,
		[]g.Node{
			pageHeader("Trusted Dealers"),
			pageSubheader("Browse verified dealerships across Kenya."),
			Form(
				Class("mb-8 flex gap-4"),
				Method("get"),
				Action("/dealers"),
				hx.Get("/dealers"),
				hx.Target("#dealer-list"),
				hx.Swap("outerHTML"),
				hx.PushURL("true"),
				hx.Trigger("submit, keyup changed delay:400ms from:#dealer-search"),
				TextInput("dealer-search", "search", q, Placeholder("Search by name, location or specialty")),
				button("Search", withType("submit")),
			),
			DealershipList(list),
		},
	)
}
