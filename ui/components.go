package ui

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/leonexus/site/config"
	"github.com/leonexus/site/listing"
)

// ---- Layout Components ----

func contentContainer(content ...g.Node) g.Node {
	return Div(
		Class("max-w-2xl mx-auto"),
		g.Group(content),
	)
}

func card(content ...g.Node) g.Node {
	return Div(
		Class("bg-white rounded-lg shadow border border-gray-200 p-6"),
		g.Group(content),
	)
}

// ---- Message Components ----

func ValidationError(message string) g.Node {
	return Div(
		Class("bg-red-100 border border-red-500 text-red-700 px-4 py-3 rounded"),
		Role("alert"),
		g.Text(message),
	)
}

// redirectScript follows the data-redirect target of the enclosing message.
// It carries no request data.
var redirectScript = fmt.Sprintf(
	"(function(el) { setTimeout(function() { window.location = el.dataset.redirect }, %d) })(document.currentScript.parentElement);",
	config.RedirectDelay.Milliseconds())

func SuccessMessage(message string, redirectURL string) g.Node {
	if redirectURL == "" {
		return Div(
			Class("bg-green-100 border border-green-500 text-green-700 px-4 py-3 rounded"),
			g.Text(message),
		)
	}
	return Div(
		Class("bg-green-100 border border-green-500 text-green-700 px-4 py-3 rounded"),
		Data("redirect", redirectURL),
		g.Text(message+"...redirecting"),
		Script(g.Raw(redirectScript)),
	)
}

func resultContainer() g.Node {
	return Div(
		ID("result"),
		Class("mt-4"),
	)
}

func ErrorPage(code int, message string, v Viewer) g.Node {
	return Page(
		fmt.Sprintf("Error %d", code),
		v,
		[]g.Node{
			contentContainer(
				Div(
					Class("text-center py-16"),
					H1(Class("text-6xl font-bold text-yellow-600 mb-4"), g.Textf("%d", code)),
					P(Class("text-lg text-gray-700 mb-8"), g.Text(message)),
					button("Back to home", withHref("/")),
				),
			),
		},
	)
}

func NoResultsMessage(text string) g.Node {
	return Div(
		Class("flex justify-center items-center p-8"),
		Div(
			Class("text-center"),
			P(Class("text-gray-600 text-lg"), g.Text(text)),
		),
	)
}

// EmptyResponse returns an empty div for HTMX responses that don't need content
func EmptyResponse() g.Node {
	return Div()
}

// ---- Modal Components ----

func modalCloseButton() g.Node {
	return buttonSecondary("Cancel",
		withType("button"),
		withAttributes(g.Attr("onclick", "this.closest('.modal').remove()")),
	)
}

type modalConfig struct {
	modalID string
	title   string
	body    g.Node
}

// modal renders an overlay dialog appended to body by htmx.
func modal(cfg modalConfig) g.Node {
	return Div(
		ID(cfg.modalID),
		Class("modal fixed inset-0 bg-black/30 flex items-center justify-center z-50 p-8"),
		g.Attr("onclick", "if (event.target === this) this.remove()"),
		Div(
			Class("bg-white rounded-lg w-full shadow-2xl border-2 border-gray-300 flex flex-col overflow-hidden"),
			Style("max-width: 640px; max-height: 85vh"),
			Div(Class("p-8 overflow-y-auto flex-1"),
				H3(Class("text-2xl font-bold mb-6"), g.Text(cfg.title)),
				cfg.body,
			),
		),
	)
}

// ---- Stats and Ratings ----

func statCard(label string, value string) g.Node {
	return Div(
		Class("bg-white rounded-lg shadow border border-gray-200 p-4"),
		Div(Class("text-sm text-gray-500"), g.Text(label)),
		Div(Class("text-2xl font-bold mt-1"), g.Text(value)),
	)
}

func starRating(rating float64) g.Node {
	full := listing.Stars(rating)
	stars := make([]g.Node, 0, 5)
	for i := 1; i <= 5; i++ {
		class := "text-gray-300"
		if i <= full {
			class = "text-yellow-500"
		}
		stars = append(stars, Span(Class(class), g.Text("★")))
	}
	return Span(
		Class("inline-flex items-center"),
		Aria("label", fmt.Sprintf("%.1f out of 5", rating)),
		g.Group(stars),
	)
}

func badge(text, class string) g.Node {
	return Span(
		Class("inline-flex items-center px-2 py-1 rounded-full text-xs font-medium "+class),
		g.Text(text),
	)
}
