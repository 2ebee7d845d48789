package timepoint

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:id/timepoints", h.ListTimePoints)
	api.GET("/patients/:id/timepoints/:code/images", h.ListImages)
}

func personID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	return id, nil
}

func (h *Handler) ListTimePoints(c echo.Context) error {
	id, err := personID(c)
	if err != nil {
		return err
	}
	items, err := h.svc.List(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListImages(c echo.Context) error {
	id, err := personID(c)
	if err != nil {
		return err
	}
	items, err := h.svc.ListImages(c.Request().Context(), id, c.Param("code"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}
