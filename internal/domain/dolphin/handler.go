package dolphin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dolphin/patients/:id", h.GetPatientStatus)
	api.POST("/dolphin/patients/:id", h.EnsurePatient)
	api.GET("/dolphin/patients/:id/timepoints/:code", h.GetTimePointStatus)
	api.POST("/dolphin/patients/:id/timepoints", h.EnsureTimePoint)
	api.GET("/dolphin/patients/:id/appointments", h.ListAppointments)
	api.GET("/dolphin/patients/:id/visit-photos", h.ListVisitPhotos)
	api.GET("/work/:id/photo-date", h.GetPhotoDate)
	api.PUT("/work/:id/photo-date", h.SetPhotoDate)
}

func pathID(c echo.Context, what string) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+what+" id")
	}
	return id, nil
}

func (h *Handler) GetPatientStatus(c echo.Context) error {
	id, err := pathID(c, "patient")
	if err != nil {
		return err
	}
	exists, err := h.svc.PatientExists(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]bool{"exists": exists})
}

func (h *Handler) EnsurePatient(c echo.Context) error {
	id, err := pathID(c, "patient")
	if err != nil {
		return err
	}
	created, err := h.svc.EnsurePatient(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, map[string]bool{"created": created})
}

func (h *Handler) GetTimePointStatus(c echo.Context) error {
	id, err := pathID(c, "patient")
	if err != nil {
		return err
	}
	exists, err := h.svc.TimePointExists(c.Request().Context(), id, c.Param("code"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]bool{"exists": exists})
}

func (h *Handler) EnsureTimePoint(c echo.Context) error {
	id, err := pathID(c, "patient")
	if err != nil {
		return err
	}
	var tp TimePoint
	if err := c.Bind(&tp); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	tp.PersonID = id
	created, err := h.svc.EnsureTimePoint(c.Request().Context(), &tp)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, map[string]bool{"created": created})
}

func (h *Handler) ListAppointments(c echo.Context) error {
	id, err := pathID(c, "patient")
	if err != nil {
		return err
	}
	items, err := h.svc.ListAppointments(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListVisitPhotos(c echo.Context) error {
	id, err := pathID(c, "patient")
	if err != nil {
		return err
	}
	items, err := h.svc.ListVisitPhotos(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetPhotoDate(c echo.Context) error {
	id, err := pathID(c, "work")
	if err != nil {
		return err
	}
	visitDate, err := time.Parse(dateLayout, c.QueryParam("visit_date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "visit_date is required, expected YYYY-MM-DD")
	}
	photoDate, err := h.svc.GetPhotoDate(c.Request().Context(), id, visitDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	var out *string
	if photoDate != nil {
		s := photoDate.Format(dateLayout)
		out = &s
	}
	return c.JSON(http.StatusOK, map[string]*string{"photo_date": out})
}

func (h *Handler) SetPhotoDate(c echo.Context) error {
	id, err := pathID(c, "work")
	if err != nil {
		return err
	}
	var req struct {
		PhotoDate string `json:"photo_date"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	photoDate, err := time.Parse(dateLayout, req.PhotoDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid photo_date, expected YYYY-MM-DD")
	}
	ok, err := h.svc.SetPhotoDate(c.Request().Context(), id, photoDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "work item not found")
	}
	return c.NoContent(http.StatusNoContent)
}
