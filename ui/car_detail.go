package ui

import (
	"fmt"
	"sort"
	"strconv"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/catalog"
	"github.com/leonexus/site/listing"
)

// CarDetailData is everything the car page renders.
type CarDetailData struct {
	Car       api.Car
	Reviews   []api.Review
	Dealer    *api.Dealership
	Category  string
	ImageIdx  int
	Favorited bool
}

func sortedImages(c api.Car) []api.CarImage {
	images := append([]api.CarImage(nil), c.Images...)
	sort.SliceStable(images, func(i, j int) bool { return images[i].Order < images[j].Order })
	return images
}

func gallery(c api.Car, idx int) g.Node {
	images := sortedImages(c)
	if len(images) == 0 {
		return carImage(c, "w-full h-96 rounded-lg")
	}
	if idx < 0 || idx >= len(images) {
		idx = 0
	}

	thumbs := make([]g.Node, 0, len(images))
	for i, img := range images {
		class := "w-24 h-16 object-cover rounded border-2"
		if i == idx {
			class += " border-yellow-500"
		} else {
			class += " border-transparent opacity-75 hover:opacity-100"
		}
		thumbs = append(thumbs, A(
			Href(fmt.Sprintf("%s?img=%d", carURL(c), i)),
			Img(Src(img.URL()), Alt(fmt.Sprintf("%s photo %d", listing.Title(c), i+1)), Class(class), g.Attr("loading", "lazy")),
		))
	}

	return Div(
		Class("space-y-3"),
		Img(Src(images[idx].URL()), Alt(listing.Title(c)), Class("w-full h-96 object-cover rounded-lg")),
		g.If(len(images) > 1, Div(Class("flex gap-2 overflow-x-auto"), g.Group(thumbs))),
	)
}

func specRow(label, value string) g.Node {
	if value == "" {
		value = "N/A"
	}
	return Tr(
		Th(Class("text-left text-gray-500 font-normal py-2 pr-4"), g.Text(label)),
		Td(Class("py-2 font-medium"), g.Text(value)),
	)
}

func specsTable(c api.Car, category string) g.Node {
	return Table(
		Class("w-full text-sm"),
		TBody(
			specRow("Make", c.Make),
			specRow("Model", c.Model),
			specRow("Year", intValue(c.Year)),
			specRow("Mileage", listing.FormatMileage(c.Mileage)),
			specRow("Transmission", catalog.Label(catalog.Transmissions, c.Transmission)),
			specRow("Fuel type", catalog.Label(catalog.FuelTypes, c.FuelType)),
			specRow("Condition", c.Condition),
			specRow("Category", category),
			specRow("Location", c.Location),
			specRow("Listed", formatDate(c.CreatedAt)),
		),
	)
}

func dealerCard(c api.Car, d *api.Dealership) g.Node {
	name := ""
	var phone string
	if c.Dealer.Dealer != nil {
		name = c.Dealer.Dealer.DisplayName()
		phone = c.Dealer.Dealer.Phone
	}
	if d != nil {
		name = d.Name
		if d.Phone != "" {
			phone = d.Phone
		}
	}
	if name == "" {
		name = fmt.Sprintf("Dealer #%d", c.Dealer.ID)
	}
	return card(
		H3(Class("text-lg font-semibold mb-2"), g.Text("Sold by")),
		Div(Class("flex items-center gap-2"),
			Span(Class("font-medium"), g.Text(name)),
			g.If(d != nil && d.Verified, badge("Verified", "bg-green-100 text-green-800")),
		),
		g.Iff(d != nil && len(d.Locations) > 0, func() g.Node {
			return Div(Class("text-sm text-gray-500 mt-1"), g.Text(joinComma(d.Locations)))
		}),
		g.If(phone != "", A(Href("tel:"+phone), Class("block mt-4"), button("Call "+phone, withClass("w-full text-center")))),
		A(Href("/dealers"), Class("block mt-2 text-sm text-yellow-600 hover:underline"), g.Text("See all dealers")),
	)
}

// FavoriteButton toggles the car in the buyer's favorites.
func FavoriteButton(carID int, favorited bool) g.Node {
	text := "♡ Save to favorites"
	class := "border border-yellow-500 text-yellow-600 hover:bg-yellow-50"
	if favorited {
		text = "♥ Saved"
		class = "bg-yellow-500 text-white hover:bg-yellow-600"
	}
	return Button(
		ID("favorite-button"),
		Type("button"),
		Class("px-4 py-2 rounded "+class),
		hx.Post(fmt.Sprintf("/cars/%d/favorite", carID)),
		hx.Swap("outerHTML"),
		g.Text(text),
	)
}

func CarDetailPage(v Viewer, d CarDetailData) g.Node {
	c := d.Car
	var userID int
	if v.User != nil {
		userID = v.User.ID
	}
	return Page(
		listing.Title(c),
		v,
		[]g.Node{
			A(Href("/cars"), Class("text-sm text-yellow-600 hover:underline"), g.Text("← Back to cars")),
			Div(
				Class("grid grid-cols-1 lg:grid-cols-3 gap-8 mt-4"),
				Div(
					Class("lg:col-span-2 space-y-6"),
					gallery(c, d.ImageIdx),
					Div(
						Class("flex items-start justify-between gap-4"),
						Div(
							H1(Class("text-3xl font-bold"), g.Text(listing.Title(c))),
							Div(Class("mt-1"), ratingSummary(c)),
						),
						Div(Class("text-3xl font-bold text-yellow-600"), g.Text(listing.FormatPrice(c.Price.String()))),
					),
					g.If(c.Description != "", card(
						H2(Class("text-xl font-semibold mb-2"), g.Text("Description")),
						P(Class("text-gray-700 whitespace-pre-line"), g.Text(c.Description)),
					)),
					card(
						H2(Class("text-xl font-semibold mb-2"), g.Text("Specifications")),
						specsTable(c, d.Category),
					),
					ReviewSection(c.ID, d.Reviews, userID, v.User != nil && v.User.IsBuyer(), ""),
				),
				Div(
					Class("space-y-6"),
					g.If(v.User != nil && v.User.IsBuyer(), FavoriteButton(c.ID, d.Favorited)),
					g.If(v.User == nil, A(Href("/signin?next="+urlQueryEscape(carURL(c))), Class("block text-sm text-yellow-600 hover:underline"),
						g.Text("Sign in as a buyer to save or review this car"))),
					dealerCard(c, d.Dealer),
				),
			),
		},
	)
}

// ---- Reviews ----

func reviewsURL(carID int) string {
	return fmt.Sprintf("/cars/%d/reviews", carID)
}

func reviewItem(carID int, r api.Review, userID int) g.Node {
	own := userID != 0 && r.User.ID == userID
	return Li(
		ID(fmt.Sprintf("review-%d", r.ID)),
		Class("border-b py-4"),
		Div(
			Class("flex items-center justify-between"),
			Div(
				Class("flex items-center gap-2"),
				Span(Class("font-medium"), g.Text(r.User.DisplayName())),
				starRating(float64(r.Rating)),
			),
			Span(Class("text-xs text-gray-400"), g.Text(formatDate(r.CreatedAt))),
		),
		g.If(r.Comment != "", P(Class("text-gray-700 mt-2"), g.Text(r.Comment))),
		g.If(own, Div(
			Class("flex gap-4 mt-2 text-sm"),
			A(
				Href("#"),
				Class("text-yellow-600 hover:underline"),
				hx.Get(fmt.Sprintf("%s/%d/edit", reviewsURL(carID), r.ID)),
				hx.Target(fmt.Sprintf("#review-%d", r.ID)),
				hx.Swap("outerHTML"),
				g.Text("Edit"),
			),
			A(
				Href("#"),
				Class("text-red-600 hover:underline"),
				hx.Delete(fmt.Sprintf("%s/%d", reviewsURL(carID), r.ID)),
				hx.Target("#reviews"),
				hx.Swap("outerHTML"),
				hx.Confirm("Delete your review?"),
				g.Text("Delete"),
			),
		)),
	)
}

func ratingSelect(selected int) g.Node {
	choices := []catalog.Choice{
		{Value: "5", Label: "5 - Excellent"},
		{Value: "4", Label: "4 - Very good"},
		{Value: "3", Label: "3 - Good"},
		{Value: "2", Label: "2 - Fair"},
		{Value: "1", Label: "1 - Poor"},
	}
	sel := ""
	if selected > 0 {
		sel = strconv.Itoa(selected)
	}
	return choiceSelect("rating", "rating", "", sel, choices, Required())
}

func reviewForm(carID int) g.Node {
	return Form(
		Class("space-y-4 mt-6"),
		hx.Post(reviewsURL(carID)),
		hx.Target("#reviews"),
		hx.Swap("outerHTML"),
		H3(Class("font-semibold"), g.Text("Write a review")),
		FormGroup("Rating", "rating", ratingSelect(5)),
		FormGroup("Comment", "comment", TextArea("comment", "comment", "", "3")),
		button("Submit review", withType("submit")),
	)
}

// ReviewEditForm replaces a review item while it is being edited.
func ReviewEditForm(carID int, r api.Review) g.Node {
	return Li(
		ID(fmt.Sprintf("review-%d", r.ID)),
		Class("border-b py-4"),
		Form(
			Class("space-y-4"),
			hx.Post(fmt.Sprintf("%s/%d", reviewsURL(carID), r.ID)),
			hx.Target("#reviews"),
			hx.Swap("outerHTML"),
			FormGroup("Rating", fmt.Sprintf("rating-%d", r.ID), ratingSelect(r.Rating)),
			FormGroup("Comment", fmt.Sprintf("comment-%d", r.ID), TextArea(fmt.Sprintf("comment-%d", r.ID), "comment", r.Comment, "3")),
			Div(
				Class("flex gap-4"),
				button("Save", withType("submit")),
				buttonSecondary("Cancel", withType("button"),
					withAttributes(
						hx.Get(reviewsURL(carID)),
						hx.Target("#reviews"),
						hx.Swap("outerHTML"),
					),
				),
			),
		),
	)
}

// ReviewSection lists reviews and, for buyers, the review form. errMsg is
// shown above the form after a failed submit.
func ReviewSection(carID int, reviews []api.Review, userID int, canReview bool, errMsg string) g.Node {
	var items []g.Node
	for _, r := range reviews {
		items = append(items, reviewItem(carID, r, userID))
	}
	return Section(
		ID("reviews"),
		Class("bg-white rounded-lg shadow border border-gray-200 p-6"),
		H2(Class("text-xl font-semibold mb-2"), g.Textf("Reviews (%d)", len(reviews))),
		g.If(len(reviews) == 0, P(Class("text-gray-500"), g.Text("No reviews yet. Be the first to review this car."))),
		g.If(len(items) > 0, Ul(g.Group(items))),
		g.If(errMsg != "", Div(Class("mt-4"), ValidationError(errMsg))),
		g.If(canReview, reviewForm(carID)),
	)
}
