package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/local"
	"github.com/leonexus/site/ui"
)

const maxCommentLength = 2000

// parseReview validates the rating and comment fields.
func parseReview(rating, comment string) (api.ReviewInput, error) {
	n, err := strconv.Atoi(strings.TrimSpace(rating))
	if err != nil || n < 1 || n > 5 {
		return api.ReviewInput{}, errors.New("Rating must be between 1 and 5")
	}
	comment = strings.TrimSpace(comment)
	if len([]rune(comment)) > maxCommentLength {
		return api.ReviewInput{}, errors.New("Comment must be at most 2000 characters")
	}
	return api.ReviewInput{Rating: n, Comment: comment}, nil
}

// reviewSection renders the reviews fragment for carID with an optional
// error shown above the form.
func (h *Handler) reviewSection(c *fiber.Ctx, carID int, errMsg string) error {
	reviews, err := h.API.CarReviews(c.Context(), local.GetToken(c), carID)
	if err != nil {
		return h.formError(c, err, "Failed to load reviews")
	}
	u := currentUser(c)
	canReview := u != nil && u.IsBuyer()
	return render(c, ui.ReviewSection(carID, reviews, currentUserID(c), canReview, errMsg))
}

func (h *Handler) HandleReviews(c *fiber.Ctx) error {
	carID, err := ParseIntParam(c, "id")
	if err != nil {
		return err
	}
	return h.reviewSection(c, carID, "")
}

func (h *Handler) HandleCreateReview(c *fiber.Ctx) error {
	carID, err := ParseIntParam(c, "id")
	if err != nil {
		return err
	}
	in, err := parseReview(c.FormValue("rating"), c.FormValue("comment"))
	if err != nil {
		return h.reviewSection(c, carID, err.Error())
	}
	if _, err := h.API.CreateReview(c.Context(), local.GetToken(c), carID, in); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return h.apiError(c, err, "")
		}
		return h.reviewSection(c, carID, api.Message(err, "Failed to submit review"))
	}
	zap.S().Infof("[REVIEW] userID=%d reviewed car=%d rating=%d", currentUserID(c), carID, in.Rating)
	return h.reviewSection(c, carID, "")
}

// ownReview finds the signed-in user's review on the car.
func (h *Handler) ownReview(c *fiber.Ctx, carID, reviewID int) (api.Review, error) {
	reviews, err := h.API.CarReviews(c.Context(), local.GetToken(c), carID)
	if err != nil {
		return api.Review{}, err
	}
	for _, r := range reviews {
		if r.ID == reviewID {
			if r.User.ID != currentUserID(c) {
				return api.Review{}, fiber.NewError(fiber.StatusForbidden, "You can only edit your own reviews")
			}
			return r, nil
		}
	}
	return api.Review{}, fiber.NewError(fiber.StatusNotFound, "Review not found")
}

// reviewLookupError passes ownership errors through and renders backend
// failures inline.
func (h *Handler) reviewLookupError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return err
	}
	return h.formError(c, err, "Failed to load review")
}

func (h *Handler) HandleEditReview(c *fiber.Ctx) error {
	carID, err := ParseIntParam(c, "id")
	if err != nil {
		return err
	}
	reviewID, err := ParseIntParam(c, "reviewID")
	if err != nil {
		return err
	}
	r, err := h.ownReview(c, carID, reviewID)
	if err != nil {
		return h.reviewLookupError(c, err)
	}
	return render(c, ui.ReviewEditForm(carID, r))
}

func (h *Handler) HandleUpdateReview(c *fiber.Ctx) error {
	carID, err := ParseIntParam(c, "id")
	if err != nil {
		return err
	}
	reviewID, err := ParseIntParam(c, "reviewID")
	if err != nil {
		return err
	}
	if _, err := h.ownReview(c, carID, reviewID); err != nil {
		return h.reviewLookupError(c, err)
	}
	in, err := parseReview(c.FormValue("rating"), c.FormValue("comment"))
	if err != nil {
		return h.reviewSection(c, carID, err.Error())
	}
	if _, err := h.API.UpdateReview(c.Context(), local.GetToken(c), reviewID, in); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return h.apiError(c, err, "")
		}
		return h.reviewSection(c, carID, api.Message(err, "Failed to update review"))
	}
	return h.reviewSection(c, carID, "")
}

func (h *Handler) HandleDeleteReview(c *fiber.Ctx) error {
	carID, err := ParseIntParam(c, "id")
	if err != nil {
		return err
	}
	reviewID, err := ParseIntParam(c, "reviewID")
	if err != nil {
		return err
	}
	if _, err := h.ownReview(c, carID, reviewID); err != nil {
		return h.reviewLookupError(c, err)
	}
	if err := h.API.DeleteReview(c.Context(), local.GetToken(c), reviewID); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return h.apiError(c, err, "")
		}
		return h.reviewSection(c, carID, api.Message(err, "Failed to delete review"))
	}
	zap.S().Infof("[REVIEW] userID=%d deleted review=%d", currentUserID(c), reviewID)
	return h.reviewSection(c, carID, "")
}
