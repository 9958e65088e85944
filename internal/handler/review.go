package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/azulroute/tour-booking-api/internal/model"
	"github.com/azulroute/tour-booking-api/internal/repository"
)

// ReviewHandler serves published reviews and accepts new submissions. New
// reviews land unpublished and only go live after moderation in the back
// office.
type ReviewHandler struct {
	Reviews *repository.ReviewRepo
}

func NewReviewHandler(reviews *repository.ReviewRepo) *ReviewHandler {
	if reviews == nil {
		panic("nil review repository passed to NewReviewHandler")
	}
	return &ReviewHandler{Reviews: reviews}
}

// List handles GET /api/reviews. Only published reviews are visible here.
func (h *ReviewHandler) List(c echo.Context) error {
	reviews, err := h.Reviews.List(c.Request().Context(), true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": reviews})
}

// Create handles POST /api/reviews.
func (h *ReviewHandler) Create(c echo.Context) error {
	var body struct {
		Name     string `json:"name"`
		Location string `json:"location"`
		Rating   int    `json:"rating"`
		Text     string `json:"text"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name == "" || body.Text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and text are required"})
	}
	if body.Rating < 1 || body.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}
	rev := &model.Review{
		Name:     body.Name,
		Location: body.Location,
		Rating:   body.Rating,
		Text:     body.Text,
	}
	if err := h.Reviews.Create(c.Request().Context(), rev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create review"})
	}
	return c.JSON(http.StatusCreated, rev)
}
