package ui

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/listing"
)

func sellStep(n, title, text string) g.Node {
	return card(
		Div(Class("w-10 h-10 rounded-full bg-yellow-500 text-white flex items-center justify-center font-bold mb-4"), g.Text(n)),
		H3(Class("font-semibold mb-2"), g.Text(title)),
		P(Class("text-sm text-gray-600"), g.Text(text)),
	)
}

// SellCarsPage explains selling to visitors and buyers. Dealers get the
// listing form directly.
func SellCarsPage(v Viewer, cats []api.Category) g.Node {
	dealer := v.User != nil && v.User.IsDealer()
	return Page(
		"Sell Your Car",
		v,
		[]g.Node{
			pageHeader("Sell Your Car"),
			pageSubheader("Reach thousands of serious buyers across Kenya."),
			Div(
				Class("grid grid-cols-1 md:grid-cols-3 gap-6 mb-12"),
				sellStep("1", "Create a dealer account", "Sign up as a dealer and set up your dealership profile."),
				sellStep("2", "List your cars", "Add photos, specs and a fair price. Save drafts until you're ready."),
				sellStep("3", "Meet buyers", "Buyers find you through search and contact you directly."),
			),
			g.If(dealer, card(
				H2(Class("text-2xl font-semibold mb-6"), g.Text("List a car")),
				carForm(listing.CarForm{}, cats, 0, "sell-form-result"),
			)),
			g.If(!dealer, Div(
				Class("text-center"),
				g.If(v.User == nil, button("Become a dealer", withHref("/signup"))),
				g.If(v.User != nil, P(Class("text-gray-600"), g.Text("Selling requires a dealer account. Sign up with a dealer account to start listing."))),
			)),
		},
	)
}
