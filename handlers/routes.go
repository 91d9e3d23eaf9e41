package handlers

import "github.com/gofiber/fiber/v2"

// Register mounts every page and fragment route on app.
func (h *Handler) Register(app *fiber.App) {
	app.Use(h.SessionMiddleware)

	app.Get("/", h.HandleHome)
	app.Get("/health", h.HandleHealth)

	app.Get("/cars", h.HandleCars)
	app.Get("/cars/suggestions", h.HandleSuggestions)
	app.Get("/cars/:id<int>", h.HandleCar)
	app.Get("/cars/:id<int>/reviews", h.HandleReviews)
	app.Post("/cars/:id<int>/reviews", BuyerRequired, h.HandleCreateReview)
	app.Get("/cars/:id<int>/reviews/:reviewID<int>/edit", BuyerRequired, h.HandleEditReview)
	app.Post("/cars/:id<int>/reviews/:reviewID<int>", BuyerRequired, h.HandleUpdateReview)
	app.Delete("/cars/:id<int>/reviews/:reviewID<int>", BuyerRequired, h.HandleDeleteReview)
	app.Post("/cars/:id<int>/favorite", BuyerRequired, h.HandleToggleFavorite)

	app.Get("/dealers", h.HandleDealers)
	app.Get("/sell", h.HandleSell)

	app.Get("/signin", h.HandleSignIn)
	app.Post("/signin", h.HandleSignInSubmission)
	app.Get("/signup", h.HandleSignUp)
	app.Post("/signup", h.HandleSignUpSubmission)
	app.Post("/signout", h.HandleSignOut)

	app.Get("/profile", AuthRequired, h.HandleProfileForm)
	app.Post("/profile", AuthRequired, h.HandleSaveProfile)

	dashboard := app.Group("/dashboard", DealerRequired)
	dashboard.Get("/", h.HandleDealerDashboard)
	dashboard.Get("/inventory", h.HandleInventory)
	dashboard.Get("/cars/new", h.HandleNewCar)
	dashboard.Post("/cars", h.HandleCreateCar)
	dashboard.Get("/cars/:id<int>/edit", h.HandleEditCar)
	dashboard.Post("/cars/:id<int>", h.HandleUpdateCar)
	dashboard.Delete("/cars/:id<int>", h.HandleDeleteCar)
	dashboard.Get("/dealership", h.HandleDealershipForm)
	dashboard.Post("/dealership", h.HandleSaveDealership)

	app.Get("/buyer-dashboard", BuyerRequired, h.HandleBuyerDashboard)
	app.Delete("/favorites/:id<int>", BuyerRequired, h.HandleRemoveFavorite)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})
}
