package ui

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/catalog"
)

func SignInPage(v Viewer, next string) g.Node {
	return Page(
		"Sign in",
		v,
		[]g.Node{
			contentContainer(
				card(
					H1(Class("text-2xl font-bold mb-6 text-center"), g.Text("Welcome back")),
					FormContainer("signinForm",
						hx.Post("/signin"),
						hx.Target("#result"),
						Input(Type("hidden"), Name("next"), Value(next)),
						FormGroup("Username or email", "username", TextInput("username", "username", "", Required(), g.Attr("autocomplete", "username"))),
						FormGroup("Password", "password", PasswordInput("password", "password")),
						button("Sign in", withType("submit"), withClass("w-full")),
						resultContainer(),
					),
					P(Class("text-sm text-center text-gray-600 mt-6"),
						g.Text("No account yet? "),
						A(Href("/signup"), Class("text-yellow-600 hover:underline"), g.Text("Sign up")),
					),
				),
			),
		},
	)
}

var roleChoices = []catalog.Choice{
	{Value: string(api.RoleBuyer), Label: "I want to buy"},
	{Value: string(api.RoleDealer), Label: "I'm a dealer"},
}

func SignUpPage(v Viewer) g.Node {
	return Page(
		"Sign up",
		v,
		[]g.Node{
			contentContainer(
				card(
					H1(Class("text-2xl font-bold mb-6 text-center"), g.Text("Create your account")),
					FormContainer("signupForm",
						hx.Post("/signup"),
						hx.Target("#result"),
						FormGroup("Account type", "role", RadioGroup("role", string(api.RoleBuyer), roleChoices)),
						Div(
							Class("grid grid-cols-2 gap-4"),
							FormGroup("First name", "first_name", TextInput("first_name", "first_name", "", Required())),
							FormGroup("Last name", "last_name", TextInput("last_name", "last_name", "", Required())),
						),
						FormGroup("Username", "username", TextInput("username", "username", "", Required())),
						FormGroup("Email", "email", EmailInput("email", "email", "")),
						FormGroup("Phone", "phone", TextInput("phone", "phone", "", Placeholder("+254 7XX XXX XXX"))),
						FormGroup("Password", "password", PasswordInput("password", "password")),
						FormGroup("Confirm password", "password2", PasswordInput("password2", "password2")),
						button("Create account", withType("submit"), withClass("w-full")),
						resultContainer(),
					),
					P(Class("text-sm text-center text-gray-600 mt-6"),
						g.Text("Already have an account? "),
						A(Href("/signin"), Class("text-yellow-600 hover:underline"), g.Text("Sign in")),
					),
				),
			),
		},
	)
}
