package ui

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/config"
)

// Viewer is the per-request context every full page needs.
type Viewer struct {
	User      *api.User
	Path      string
	FlashKind string
	Flash     string
}

// ---- Page Layout ----

func Page(title string, v Viewer, content []g.Node) g.Node {
	return components.HTML5(components.HTML5Props{
		Title:    title + " | " + config.SiteName,
		Language: "en",
		Head: []g.Node{
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			Link(Rel("icon"), Type("image/png"), Href("/images/favicon-32x32.png"), g.Attr("sizes", "32x32")),
			Link(
				Rel("stylesheet"),
				Href(config.TailwindCSSURL),
			),
			Script(
				Type("text/javascript"),
				Src(config.HTMXURL),
				Defer(),
			),
		},
		Body: []g.Node{
			Class("bg-gray-50 text-gray-900"),
			navigation(v),
			Main(
				Class("container mx-auto px-4 py-8"),
				flashBanner(v.FlashKind, v.Flash),
				g.Group(content),
			),
			footer(),
		},
	})
}

func pageHeader(text string) g.Node {
	return H1(Class("text-4xl font-bold mb-8"), g.Text(text))
}

func pageSubheader(text string) g.Node {
	return P(Class("text-gray-600 -mt-6 mb-8"), g.Text(text))
}

func flashBanner(kind, msg string) g.Node {
	if msg == "" {
		return nil
	}
	class := "mb-6 px-4 py-3 rounded border bg-green-100 border-green-500 text-green-700"
	if kind == "error" {
		class = "mb-6 px-4 py-3 rounded border bg-red-100 border-red-500 text-red-700"
	}
	return Div(
		ID("flash"),
		Class(class),
		Role("status"),
		g.Text(msg),
	)
}

func footer() g.Node {
	return Footer(
		Class("border-t mt-16 py-8 text-center text-sm text-gray-500"),
		g.Textf("%s, Kenya's premium car marketplace", config.SiteName),
	)
}
