package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/film-afisha/backend/internal/logger"
	"github.com/film-afisha/backend/internal/model"
	"github.com/film-afisha/backend/internal/repository"
)

// FilmsHandler serves the read-only catalog endpoints.  It is a thin
// adapter over the storage port: no business rules live here beyond
// translating repository errors into HTTP statuses.
type FilmsHandler struct {
	Repo repository.FilmRepository
	Log  logger.Logger
}

// NewFilmsHandler constructs a FilmsHandler.  Both dependencies must be
// non-nil.
func NewFilmsHandler(repo repository.FilmRepository, lg logger.Logger) *FilmsHandler {
	if repo == nil || lg == nil {
		panic("nil dependency passed to NewFilmsHandler")
	}
	return &FilmsHandler{Repo: repo, Log: lg}
}

// listResponse is the common {total, items} envelope of catalog endpoints.
type listResponse struct {
	Total int         `json:"total"`
	Items interface{} `json:"items"`
}

// List handles GET /api/afisha/films and returns the full catalog.
func (h *FilmsHandler) List(c echo.Context) error {
	films, err := h.Repo.ListFilms(c.Request().Context())
	if err != nil {
		h.Log.Error("list films failed", err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, listResponse{Total: len(films), Items: films})
}

// Schedule handles GET /api/afisha/films/:id/schedule.  Screenings are
// returned ordered by daytime ascending, each including its current
// taken-seat set.
func (h *FilmsHandler) Schedule(c echo.Context) error {
	filmID := c.Param("id")
	if filmID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid film id"})
	}
	items, err := h.Repo.ListScreenings(c.Request().Context(), filmID)
	if err != nil {
		if errors.Is(err, repository.ErrFilmNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
		}
		h.Log.Error("list screenings failed", filmID, err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if items == nil {
		items = []model.Screening{}
	}
	return c.JSON(http.StatusOK, listResponse{Total: len(items), Items: items})
}
