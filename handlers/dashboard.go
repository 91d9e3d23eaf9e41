package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/listing"
	"github.com/leonexus/site/local"
	"github.com/leonexus/site/ui"
	"github.com/leonexus/site/upload"
)

// HandleDealerDashboard renders the dealer's inventory and dealership. A
// dealer without a dealership yet sees the create prompt.
func (h *Handler) HandleDealerDashboard(c *fiber.Ctx) error {
	token := local.GetToken(c)
	data := ui.DealerDashboardData{Query: c.Query("q")}

	eg, ctx := errgroup.WithContext(c.Context())
	eg.Go(func() error {
		cars, err := h.API.DealerCars(ctx, token)
		data.Cars = cars
		return err
	})
	eg.Go(func() error {
		d, err := h.API.MyDealership(ctx, token)
		switch {
		case err == nil:
			data.Dealership = &d
		case errors.Is(err, api.ErrNotFound):
		case errors.Is(err, api.ErrUnauthorized):
			return err
		default:
			zap.S().Warnf("[API] Dealership unavailable: %v", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return h.apiError(c, err, "Failed to load your listings")
	}
	return render(c, ui.DealerDashboardPage(viewer(c), data))
}

// HandleInventory re-renders the inventory table for the search box.
func (h *Handler) HandleInventory(c *fiber.Ctx) error {
	cars, err := h.API.DealerCars(c.Context(), local.GetToken(c))
	if err != nil {
		return h.formError(c, err, "Failed to load your listings")
	}
	return render(c, ui.Inventory(cars, c.Query("q")))
}

// dealerCar finds one of the signed-in dealer's cars, drafts included.
func (h *Handler) dealerCar(c *fiber.Ctx, id int) (api.Car, error) {
	cars, err := h.API.DealerCars(c.Context(), local.GetToken(c))
	if err != nil {
		return api.Car{}, err
	}
	for _, car := range cars {
		if car.ID == id {
			return car, nil
		}
	}
	return api.Car{}, fiber.NewError(fiber.StatusNotFound, "Listing not found")
}

func (h *Handler) categories(c *fiber.Ctx) []api.Category {
	cats, err := h.Catalog.Categories(c.Context())
	if err != nil {
		zap.S().Warnf("[API] Categories unavailable: %v", err)
	}
	return cats
}

func (h *Handler) HandleNewCar(c *fiber.Ctx) error {
	return render(c, ui.CarFormModal(listing.CarForm{Published: "true"}, h.categories(c), 0))
}

func (h *Handler) HandleEditCar(c *fiber.Ctx) error {
	carID, err := ParseIntParam(c, "id")
	if err != nil {
		return err
	}
	car, err := h.dealerCar(c, carID)
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return err
		}
		return h.formError(c, err, "Failed to load listing")
	}
	return render(c, ui.CarFormModal(listing.CarFormFrom(car), h.categories(c), carID))
}

// formFiles loads the named file inputs. Requests that are not multipart
// carry no files.
func formFiles(c *fiber.Ctx, field string) ([]api.File, error) {
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.New("Could not read the uploaded files")
	}
	return upload.Prepare(form.File[field])
}

func (h *Handler) parseCar(c *fiber.Ctx) (api.CarInput, []api.File, error) {
	in, err := listing.ParseCarForm(formGetter(c)).Validate(h.now())
	if err != nil {
		return api.CarInput{}, nil, err
	}
	images, err := formFiles(c, "images")
	if err != nil {
		return api.CarInput{}, nil, err
	}
	return in, images, nil
}

func (h *Handler) HandleCreateCar(c *fiber.Ctx) error {
	in, images, err := h.parseCar(c)
	if err != nil {
		return ValidationErrorResponse(c, err.Error())
	}
	car, err := h.API.CreateCar(c.Context(), local.GetToken(c), in, images)
	if err != nil {
		return h.formError(c, err, "Failed to create listing")
	}
	h.Catalog.Invalidate()
	zap.S().Infof("[CAR] userID=%d created car=%d images=%d", currentUserID(c), car.ID, len(images))
	return render(c, ui.SuccessMessage("Listing saved", "/dashboard"))
}

func (h *Handler) HandleUpdateCar(c *fiber.Ctx) error {
	carID, err := ParseIntParam(c, "id")
	if err != nil {
		return err
	}
	in, images, err := h.parseCar(c)
	if err != nil {
		return ValidationErrorResponse(c, err.Error())
	}
	if _, err := h.API.UpdateCar(c.Context(), local.GetToken(c), carID, in, images); err != nil {
		return h.formError(c, err, "Failed to update listing")
	}
	h.Catalog.Invalidate()
	zap.S().Infof("[CAR] userID=%d updated car=%d", currentUserID(c), carID)
	return render(c, ui.SuccessMessage("Listing updated", "/dashboard"))
}

// HandleDeleteCar removes a listing and re-renders the inventory.
func (h *Handler) HandleDeleteCar(c *fiber.Ctx) error {
	carID, err := ParseIntParam(c, "id")
	if err != nil {
		return err
	}
	token := local.GetToken(c)
	if err := h.API.DeleteCar(c.Context(), token, carID); err != nil {
		return h.formError(c, err, "Failed to delete listing")
	}
	h.Catalog.Invalidate()
	zap.S().Infof("[CAR] userID=%d deleted car=%d", currentUserID(c), carID)

	cars, err := h.API.DealerCars(c.Context(), token)
	if err != nil {
		return h.formError(c, err, "Failed to load your listings")
	}
	return render(c, ui.Inventory(cars, ""))
}
