package ui

import (
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/config"
)

func getUserInitial(u *api.User) string {
	name := u.FullName()
	if name == "" {
		return "?"
	}
	return strings.ToUpper(string([]rune(name)[0]))
}

func indicator() g.Node {
	return Div(
		ID("indicator"),
		Class("htmx-indicator flex items-center gap-2 text-yellow-600"),
		Div(
			Class("w-4 h-4 border-2 border-yellow-600 border-t-transparent rounded-full animate-spin"),
		),
		g.Text("Loading..."),
	)
}

func navLink(text, href, currentPath string) g.Node {
	class := "text-gray-700 hover:text-yellow-600"
	if currentPath == href || (href != "/" && strings.HasPrefix(currentPath, href+"/")) {
		class = "text-yellow-600 font-semibold"
	}
	return A(Href(href), Class(class), g.Text(text))
}

// DashboardPath is where a user of the given role lands after signing in.
func DashboardPath(u *api.User) string {
	switch {
	case u == nil:
		return "/"
	case u.IsDealer():
		return "/dashboard"
	case u.IsBuyer():
		return "/buyer-dashboard"
	}
	return "/"
}

func navLoggedIn(u *api.User) g.Node {
	return g.El("details",
		Class("relative"),
		g.El("summary",
			Class("list-none bg-yellow-500 text-white rounded-full w-9 h-9 flex items-center justify-center font-semibold text-sm cursor-pointer hover:bg-yellow-600"),
			Title(u.FullName()),
			g.Text(getUserInitial(u)),
		),
		Div(
			Class("absolute right-0 mt-2 bg-white rounded-lg shadow-lg border border-gray-200 w-48 z-40"),
			Div(
				Class("px-4 py-3 border-b border-gray-100"),
				Div(Class("text-sm font-medium"), g.Text(u.FullName())),
				Div(Class("text-xs text-gray-500"), g.Text(strings.ToLower(string(u.Role)))),
			),
			A(Href(DashboardPath(u)), Class("block px-4 py-2 text-sm hover:bg-gray-50"), g.Text("Dashboard")),
			Form(
				Method("post"),
				Action("/signout"),
				Button(Type("submit"), Class("w-full text-left px-4 py-2 text-sm hover:bg-gray-50"), g.Text("Sign out")),
			),
		),
	)
}

func navLoggedOut(currentPath string) g.Node {
	switch currentPath {
	case "/signin":
		return A(Href("/signup"), Class("text-yellow-600 hover:underline"), g.Text("Sign up"))
	case "/signup":
		return A(Href("/signin"), Class("text-yellow-600 hover:underline"), g.Text("Sign in"))
	}
	return Div(
		Class("flex items-center space-x-4"),
		A(Href("/signin"), Class("text-yellow-600 hover:underline"), g.Text("Sign in")),
		button("Sign up", withHref("/signup")),
	)
}

func navigation(v Viewer) g.Node {
	links := []g.Node{
		navLink("Home", "/", v.Path),
		navLink("Browse Cars", "/cars", v.Path),
		navLink("Dealers", "/dealers", v.Path),
		navLink("Sell Cars", "/sell-cars", v.Path),
	}
	if v.User != nil && v.User.IsBuyer() {
		links = append(links, navLink("My Favorites", "/buyer-dashboard", v.Path))
	}
	if v.User != nil && v.User.IsDealer() {
		links = append(links, navLink("Dashboard", "/dashboard", v.Path))
	}

	return Header(
		Class("bg-white border-b"),
		Nav(
			Class("container mx-auto px-4 py-4 flex items-center justify-between"),
			A(Href("/"), Class("text-2xl font-bold text-yellow-600"), g.Text(config.SiteName)),
			Div(Class("hidden md:flex items-center space-x-6"), g.Group(links)),
			indicator(),
			g.Iff(v.User != nil, func() g.Node { return navLoggedIn(v.User) }),
			g.Iff(v.User == nil, func() g.Node { return navLoggedOut(v.Path) }),
		),
	)
}
