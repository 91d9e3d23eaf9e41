package ui

import (
	"fmt"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/leonexus/site/api"
)

func favoriteCard(f api.Favorite) g.Node {
	return Div(
		ID(fmt.Sprintf("favorite-%d", f.ID)),
		Class("relative"),
		CarGridCard(f.Car),
		Button(
			Type("button"),
			Class("absolute top-2 right-2 bg-white/90 rounded-full px-3 py-1 text-sm text-red-600 shadow hover:bg-white"),
			hx.Delete(fmt.Sprintf("/favorites/%d", f.ID)),
			hx.Target("#favorites"),
			hx.Swap("outerHTML"),
			hx.Confirm("Remove this car from your favorites?"),
			g.Text("Remove"),
		),
	)
}

// Favorites is the swappable favorites grid of the buyer dashboard.
func Favorites(favs []api.Favorite) g.Node {
	if len(favs) == 0 {
		return Div(
			ID("favorites"),
			Class("text-center py-12"),
			Div(Class("text-gray-500 text-lg mb-4"), g.Text("No favorites yet.")),
			button("Browse cars", withHref("/cars")),
		)
	}
	return Div(
		ID("favorites"),
		Class("grid grid-cols-1 sm:grid-cols-2 lg:grid-cols-3 gap-6"),
		g.Map(favs, favoriteCard),
	)
}

func BuyerDashboardPage(v Viewer, favs []api.Favorite) g.Node {
	name := ""
	if v.User != nil {
		name = v.User.FullName()
	}
	return Page(
		"My Dashboard",
		v,
		[]g.Node{
			Div(
				Class("flex items-center justify-between mb-8"),
				Div(
					H1(Class("text-4xl font-bold"), g.Text("My Dashboard")),
					P(Class("text-gray-600"), g.Textf("Welcome back, %s", name)),
				),
				Div(
					Class("flex gap-4"),
					buttonSecondary("Edit profile", withType("button"), withAttributes(
						hx.Get("/profile"),
						hx.Target("body"),
						hx.Swap("beforeend"),
					)),
					button("Browse cars", withHref("/cars")),
				),
			),
			Div(
				Class("grid grid-cols-1 sm:grid-cols-2 gap-4 mb-8"),
				statCard("Saved cars", fmt.Sprintf("%d", len(favs))),
				statCard("Account", "Buyer"),
			),
			H2(Class("text-2xl font-semibold mb-4"), g.Text("Saved cars")),
			Favorites(favs),
		},
	)
}
