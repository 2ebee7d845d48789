package payment

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/pkg/pagination"
)

const dateLayout = "2006-01-02"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:id/payments", h.ListPayments)
	api.GET("/patients/:id/active-work", h.ListActiveWork)
	api.GET("/exchange-rate", h.GetCurrentRate)
	api.PUT("/exchange-rate", h.SetCurrentRate)
	api.GET("/exchange-rate/:date", h.GetRateForDate)
	api.PUT("/exchange-rate/:date", h.SetRateForDate)
	api.POST("/invoices", h.AddInvoice)
}

func personID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	return id, nil
}

func (h *Handler) ListPayments(c echo.Context) error {
	id, err := personID(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPayments(c.Request().Context(), id, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListActiveWork(c echo.Context) error {
	id, err := personID(c)
	if err != nil {
		return err
	}
	items, err := h.svc.ListActiveWork(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

type rateResponse struct {
	Date string   `json:"date"`
	Rate *float64 `json:"rate"`
}

func (h *Handler) GetCurrentRate(c echo.Context) error {
	date, rate, err := h.svc.CurrentExchangeRate(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rateResponse{Date: date.Format(dateLayout), Rate: rate})
}

func (h *Handler) GetRateForDate(c echo.Context) error {
	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	rate, err := h.svc.ExchangeRateForDate(c.Request().Context(), date)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rateResponse{Date: date.Format(dateLayout), Rate: rate})
}

type rateRequest struct {
	Rate float64 `json:"rate"`
}

func (h *Handler) SetCurrentRate(c echo.Context) error {
	var req rateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SetCurrentExchangeRate(c.Request().Context(), req.Rate); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SetRateForDate(c echo.Context) error {
	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	var req rateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SetExchangeRateForDate(c.Request().Context(), date, req.Rate); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AddInvoice(c echo.Context) error {
	var inv Invoice
	if err := c.Bind(&inv); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if _, err := h.svc.AddInvoice(c.Request().Context(), &inv); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, inv)
}
