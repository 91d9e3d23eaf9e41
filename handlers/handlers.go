// Package handlers serves the site's pages and htmx fragments. Each handler
// gathers form state, calls the backend and renders a ui component.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/leonexus/site/api"
	"github.com/leonexus/site/catalog"
	"github.com/leonexus/site/config"
	"github.com/leonexus/site/cookie"
	"github.com/leonexus/site/local"
	"github.com/leonexus/site/session"
	"github.com/leonexus/site/ui"
)

// Handler holds the dependencies shared by all routes.
type Handler struct {
	API      *api.Client
	Catalog  *catalog.Catalog
	Sessions *session.Store
	Config   config.Config

	now func() time.Time
}

func New(cfg config.Config, client *api.Client, cat *catalog.Catalog, sessions *session.Store) *Handler {
	return &Handler{
		API:      client,
		Catalog:  cat,
		Sessions: sessions,
		Config:   cfg,
		now:      time.Now,
	}
}

func currentUser(c *fiber.Ctx) *api.User {
	u, ok := local.GetUser(c)
	if !ok || u.ID == 0 {
		return nil
	}
	return &u
}

// viewer builds the page context and consumes any pending flash message.
func viewer(c *fiber.Ctx) ui.Viewer {
	kind, msg := cookie.PopFlash(c)
	return ui.Viewer{
		User:      currentUser(c),
		Path:      c.Path(),
		FlashKind: kind,
		Flash:     msg,
	}
}
