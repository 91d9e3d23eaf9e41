package ui

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type buttonVariant int

const (
	variantPrimary buttonVariant = iota
	variantSecondary
	variantDanger
)

var variantClasses = map[buttonVariant]string{
	variantPrimary:   "bg-yellow-500 text-white hover:bg-yellow-600",
	variantSecondary: "border border-gray-300 text-gray-700 hover:bg-gray-100",
	variantDanger:    "bg-red-500 text-white hover:bg-red-600",
}

const buttonBase = "px-4 py-2 rounded inline-block"

// buttonOption tweaks a button before it is rendered.
type buttonOption func(*buttonConfig)

type buttonConfig struct {
	variant buttonVariant
	href    string
	kind    string
	extra   string
	attrs   []g.Node
}

// withHref renders the button as a link.
func withHref(href string) buttonOption {
	return func(s *buttonConfig) { s.href = href }
}

func withType(kind string) buttonOption {
	return func(s *buttonConfig) { s.kind = kind }
}

func withClass(class string) buttonOption {
	return func(s *buttonConfig) { s.extra = class }
}

// withAttributes appends raw attributes, typically hx-* ones.
func withAttributes(attrs ...g.Node) buttonOption {
	return func(s *buttonConfig) { s.attrs = append(s.attrs, attrs...) }
}

func (s *buttonConfig) class() string {
	class := buttonBase + " " + variantClasses[s.variant]
	if s.extra != "" {
		class += " " + s.extra
	}
	return class
}

func renderButton(variant buttonVariant, text string, options []buttonOption) g.Node {
	cfg := &buttonConfig{variant: variant}
	for _, opt := range options {
		opt(cfg)
	}

	if cfg.href != "" {
		return A(Href(cfg.href), Class(cfg.class()), g.Group(cfg.attrs), g.Text(text))
	}
	return Button(
		Class(cfg.class()),
		g.If(cfg.kind != "", Type(cfg.kind)),
		g.Group(cfg.attrs),
		g.Text(text),
	)
}

// button is the gold call to action.
func button(text string, options ...buttonOption) g.Node {
	return renderButton(variantPrimary, text, options)
}

func buttonSecondary(text string, options ...buttonOption) g.Node {
	return renderButton(variantSecondary, text, options)
}

func buttonDanger(text string, options ...buttonOption) g.Node {
	return renderButton(variantDanger, text, options)
}
