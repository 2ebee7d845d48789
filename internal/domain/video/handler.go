package video

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/videos", h.ListVideos)
	api.GET("/videos/path", h.GetVideosPath)
	api.GET("/videos/:id", h.GetVideo)
	api.GET("/videos/:id/record", h.GetVideoRecord)
	api.POST("/videos", h.CreateVideo)
	api.PUT("/videos/:id", h.UpdateVideo)
	api.DELETE("/videos/:id", h.DeleteVideo)
	api.GET("/video-categories", h.ListCategories)
}

func videoID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid video id")
	}
	return id, nil
}

func (h *Handler) ListVideos(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListVideos(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetVideo(c echo.Context) error {
	id, err := videoID(c)
	if err != nil {
		return err
	}
	v, err := h.svc.GetVideo(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if v == nil {
		return echo.NewHTTPError(http.StatusNotFound, "video not found")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) GetVideoRecord(c echo.Context) error {
	id, err := videoID(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.GetVideoRecord(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if rec == nil {
		return echo.NewHTTPError(http.StatusNotFound, "video not found")
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) CreateVideo(c echo.Context) error {
	var rec Record
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if _, err := h.svc.CreateVideo(c.Request().Context(), &rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) UpdateVideo(c echo.Context) error {
	id, err := videoID(c)
	if err != nil {
		return err
	}
	var u Update
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ok, err := h.svc.UpdateVideo(c.Request().Context(), id, u)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !ok {
		if u.IsEmpty() {
			return echo.NewHTTPError(http.StatusBadRequest, "no fields to update")
		}
		return echo.NewHTTPError(http.StatusNotFound, "video not found")
	}
	return c.JSON(http.StatusOK, map[string]bool{"updated": true})
}

func (h *Handler) DeleteVideo(c echo.Context) error {
	id, err := videoID(c)
	if err != nil {
		return err
	}
	ok, err := h.svc.DeleteVideo(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "video not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListCategories(c echo.Context) error {
	items, err := h.svc.ListCategories(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetVideosPath(c echo.Context) error {
	path, err := h.svc.VideosPath(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"path": path})
}
