package ui

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/catalog"
	"github.com/leonexus/site/config"
	"github.com/leonexus/site/listing"
)

func hero() g.Node {
	return Section(
		Class("rounded-2xl bg-gray-900 text-white px-8 py-16 mb-12"),
		H1(Class("text-5xl font-bold mb-4"), g.Text("Find your perfect car")),
		P(Class("text-lg text-gray-300 mb-8"), g.Textf("Premium vehicles from trusted dealers, only on %s.", config.SiteName)),
		Form(
			Class("grid grid-cols-1 md:grid-cols-4 gap-4 bg-white rounded-lg p-4 text-gray-900"),
			Method("get"),
			Action("/cars"),
			TextInput("hero-search", "search", "", Placeholder("Search cars")),
			choiceSelect("hero-make", "make", "Any make", "", stringChoices(catalog.Makes)),
			choiceSelect("hero-location", "location", "Any location", "", stringChoices(catalog.Locations)),
			button("Search", withType("submit")),
		),
	)
}

func marketplaceStats(s *api.Stats) g.Node {
	if s == nil {
		return nil
	}
	return Div(
		Class("grid grid-cols-1 sm:grid-cols-3 gap-4 mb-12"),
		statCard("Cars for sale", listing.FormatCount(s.TotalCars)),
		statCard("Dealers", listing.FormatCount(s.TotalDealers)),
		statCard("Average price", listing.FormatPrice(s.AveragePrice.String())),
	)
}

// LandingPage shows the hero search, marketplace stats and latest cars.
// stats is nil when the backend could not provide them.
func LandingPage(v Viewer, stats *api.Stats, featured []api.Car) g.Node {
	return Page(
		"Premium Car Marketplace",
		v,
		[]g.Node{
			hero(),
			marketplaceStats(stats),
			Div(
				Class("flex items-center justify-between mb-6"),
				H2(Class("text-3xl font-bold"), g.Text("Latest arrivals")),
				A(Href("/cars"), Class("text-yellow-600 hover:underline"), g.Text("View all cars →")),
			),
			g.If(len(featured) == 0, NoResultsMessage("No cars listed yet. Check back soon.")),
			g.If(len(featured) > 0, CarGrid(featured)),
		},
	)
}
