package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/local"
	"github.com/leonexus/site/ui"
)

// HandleCar renders the car details page. The car itself is required;
// reviews, favorites and the dealership are loaded alongside it and left
// empty when they fail.
func (h *Handler) HandleCar(c *fiber.Ctx) error {
	carID, err := ParseIntParam(c, "id")
	if err != nil {
		return err
	}
	token := local.GetToken(c)
	u := currentUser(c)

	var (
		data          ui.CarDetailData
		dealerships   []api.Dealership
		reviewsLoaded bool
	)
	eg, ctx := errgroup.WithContext(c.Context())
	eg.Go(func() error {
		car, err := h.API.Car(ctx, token, carID)
		data.Car = car
		return err
	})
	eg.Go(func() error {
		reviews, err := h.API.CarReviews(ctx, token, carID)
		if err != nil {
			zap.S().Warnf("[API] Reviews for car=%d unavailable: %v", carID, err)
			return nil
		}
		data.Reviews = reviews
		reviewsLoaded = true
		return nil
	})
	if u != nil && u.IsBuyer() {
		eg.Go(func() error {
			favs, err := h.API.Favorites(ctx, token)
			if err != nil {
				zap.S().Warnf("[API] Favorites unavailable: %v", err)
				return nil
			}
			_, data.Favorited = api.FindFavorite(favs, carID)
			return nil
		})
	}
	eg.Go(func() error {
		list, err := h.Catalog.Dealerships(ctx, "")
		if err != nil {
			zap.S().Warnf("[API] Dealerships unavailable: %v", err)
			return nil
		}
		dealerships = list
		return nil
	})
	if err := eg.Wait(); err != nil {
		return h.apiError(c, err, "Failed to load car")
	}

	if !reviewsLoaded {
		data.Reviews = data.Car.Reviews
	}
	data.Favorited = data.Favorited || data.Car.IsFavorited
	data.Dealer = dealershipFor(data.Car, dealerships)
	data.Category = data.Car.Category.Name()
	if data.Category == "" && data.Car.Category.ID != 0 {
		data.Category = h.Catalog.CategoryName(c.Context(), data.Car.Category.ID)
	}
	data.ImageIdx = c.QueryInt("img", 0)

	return render(c, ui.CarDetailPage(viewer(c), data))
}

// dealershipFor finds the dealership trading under the car's dealer name.
func dealershipFor(car api.Car, list []api.Dealership) *api.Dealership {
	if car.Dealer.Dealer == nil {
		return nil
	}
	name := strings.TrimSpace(car.Dealer.Dealer.Name)
	if name == "" {
		return nil
	}
	for i := range list {
		if strings.EqualFold(strings.TrimSpace(list[i].Name), name) {
			return &list[i]
		}
	}
	return nil
}
