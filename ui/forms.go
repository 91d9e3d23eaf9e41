package ui

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/leonexus/site/catalog"
)

// ---- Form Components ----

const inputClass = "w-full p-2 border rounded focus:outline-none focus:ring-2 focus:ring-yellow-500"

func ValidationErrorContainer() g.Node {
	return Div(ID("result"))
}

func FormContainer(formID string, content ...g.Node) g.Node {
	return Form(
		ID(formID),
		Class("space-y-6"),
		g.Group(content),
	)
}

func FormGroup(labelText string, fieldID string, input g.Node) g.Node {
	return Div(
		Class("space-y-2"),
		Label(For(fieldID), Class("block text-sm font-medium"), g.Text(labelText)),
		input,
	)
}

func TextInput(id, name, value string, attrs ...g.Node) g.Node {
	return Input(
		Type("text"),
		ID(id),
		Name(name),
		Value(value),
		Class(inputClass),
		g.Group(attrs),
	)
}

func EmailInput(id, name, value string) g.Node {
	return Input(
		Type("email"),
		ID(id),
		Name(name),
		Value(value),
		Class(inputClass),
		g.Attr("autocomplete", "email"),
	)
}

func PasswordInput(id, name string) g.Node {
	return Input(
		Type("password"),
		ID(id),
		Name(name),
		Class(inputClass),
		Required(),
	)
}

func NumberInput(id, name, value string, attrs ...g.Node) g.Node {
	return Input(
		Type("number"),
		ID(id),
		Name(name),
		Value(value),
		Class(inputClass),
		g.Group(attrs),
	)
}

func TextArea(id, name, value string, rows string) g.Node {
	return Textarea(
		ID(id),
		Name(name),
		Rows(rows),
		Class(inputClass),
		g.Text(value),
	)
}

// choiceSelect renders a select over value/label choices. placeholder, when
// set, is an empty first option.
func choiceSelect(id, name, placeholder, selected string, choices []catalog.Choice, attrs ...g.Node) g.Node {
	options := []g.Node{}
	if placeholder != "" {
		options = append(options, Option(Value(""), g.Text(placeholder)))
	}
	for _, c := range choices {
		opt := []g.Node{Value(c.Value), g.Text(c.Label)}
		if c.Value == selected {
			opt = append(opt, Selected())
		}
		options = append(options, Option(opt...))
	}
	return Select(
		ID(id),
		Name(name),
		Class(inputClass),
		g.Group(attrs),
		g.Group(options),
	)
}

// stringChoices turns plain strings into choices whose value is the label.
func stringChoices(values []string) []catalog.Choice {
	out := make([]catalog.Choice, 0, len(values))
	for _, v := range values {
		out = append(out, catalog.Choice{Value: v, Label: v})
	}
	return out
}

func RadioGroup(name, selected string, choices []catalog.Choice) g.Node {
	radios := []g.Node{}
	for _, c := range choices {
		id := name + "-" + c.Value
		attrs := []g.Node{Type("radio"), ID(id), Name(name), Value(c.Value)}
		if c.Value == selected {
			attrs = append(attrs, Checked())
		}
		radios = append(radios, Div(
			Class("flex items-center space-x-2"),
			Input(attrs...),
			Label(For(id), g.Text(c.Label)),
		))
	}
	return Div(Class("flex gap-6"), g.Group(radios))
}

func FileInput(id, name string, multiple bool) g.Node {
	return Input(
		Type("file"),
		ID(id),
		Name(name),
		Accept("image/jpeg,image/png,image/gif,image/webp"),
		g.If(multiple, Multiple()),
		Class("w-full p-2 border rounded bg-white"),
	)
}
