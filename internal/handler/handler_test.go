package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/film-afisha/backend/internal/handler"
	"github.com/film-afisha/backend/internal/logger"
	"github.com/film-afisha/backend/internal/model"
	"github.com/film-afisha/backend/internal/repository"
	"github.com/film-afisha/backend/internal/service"
)

// stubStore is a minimal FilmRepository for handler tests: one film with
// one screening, optional forced errors.
type stubStore struct {
	film      model.Film
	screening model.Screening
	listErr   error
}

func newStubStore() *stubStore {
	return &stubStore{
		film: model.Film{ID: "f1", Title: "Архитекторы общества", Tags: []string{}},
		screening: model.Screening{
			ID: "s1", FilmID: "f1", Daytime: "2023-05-29T10:30:00.001Z",
			Hall: "2", Rows: 5, Seats: 10, Price: 350, Taken: []string{},
		},
	}
}

func (s *stubStore) ListFilms(ctx context.Context) ([]model.Film, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return []model.Film{s.film}, nil
}

func (s *stubStore) GetFilmAndScreening(ctx context.Context, filmID, screeningID string) (*model.Film, *model.Screening, error) {
	if filmID != s.film.ID {
		return nil, nil, repository.ErrFilmNotFound
	}
	if screeningID != s.screening.ID {
		return &s.film, nil, repository.ErrScreeningNotFound
	}
	cp := s.screening
	cp.Taken = append([]string{}, s.screening.Taken...)
	return &s.film, &cp, nil
}

func (s *stubStore) ListScreenings(ctx context.Context, filmID string) ([]model.Screening, error) {
	if filmID != s.film.ID {
		return nil, repository.ErrFilmNotFound
	}
	return []model.Screening{s.screening}, nil
}

func (s *stubStore) ReserveSeats(ctx context.Context, filmID, screeningID string, seatKeys []string) (repository.ReserveResult, error) {
	taken := map[string]struct{}{}
	for _, k := range s.screening.Taken {
		taken[k] = struct{}{}
	}
	var conflicts []string
	for _, k := range seatKeys {
		if _, clash := taken[k]; clash {
			conflicts = append(conflicts, k)
		}
	}
	if len(conflicts) > 0 {
		return repository.ReserveResult{Reserved: false, Conflicts: conflicts}, nil
	}
	s.screening.Taken = append(s.screening.Taken, seatKeys...)
	return repository.ReserveResult{Reserved: true}, nil
}

func testLogger() logger.Logger { return logger.NewDev(&strings.Builder{}) }

func newOrderHandler(store repository.FilmRepository) *handler.OrderHandler {
	h := handler.NewOrderHandler(service.NewOrderService(store), testLogger())
	h.Publish = nil // no broker in tests
	return h
}

func doJSON(h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h(c)
	return rec
}

func TestFilmsList(t *testing.T) {
	h := handler.NewFilmsHandler(newStubStore(), testLogger())

	rec := doJSON(h.List, http.MethodGet, "/api/afisha/films", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Total int          `json:"total"`
		Items []model.Film `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "f1", resp.Items[0].ID)
}

func TestFilmsList_StoreFault(t *testing.T) {
	store := newStubStore()
	store.listErr = errors.New("connection refused")
	h := handler.NewFilmsHandler(store, testLogger())

	rec := doJSON(h.List, http.MethodGet, "/api/afisha/films", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestFilmsSchedule(t *testing.T) {
	h := handler.NewFilmsHandler(newStubStore(), testLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("f1")
	require.NoError(t, h.Schedule(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Total int               `json:"total"`
		Items []model.Screening `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "2", resp.Items[0].Hall)
	assert.NotNil(t, resp.Items[0].Taken)
}

func TestFilmsSchedule_UnknownFilm(t *testing.T) {
	h := handler.NewFilmsHandler(newStubStore(), testLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	require.NoError(t, h.Schedule(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrder_Created(t *testing.T) {
	h := newOrderHandler(newStubStore())

	body := `{"email":"guest@example.com","phone":"+1-555-0100","tickets":[
        {"film":"f1","session":"s1","daytime":"2023-05-29T10:30:00.001Z","row":1,"seat":1,"price":350}]}`
	rec := doJSON(h.Create, http.MethodPost, "/api/afisha/order", body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var conf model.OrderConfirmation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conf))
	assert.Equal(t, 1, conf.Total)
	require.Len(t, conf.Items, 1)
	assert.NotEmpty(t, conf.Items[0].ID)
	assert.Equal(t, 350, conf.Items[0].Price)
}

func TestCreateOrder_InvalidBody(t *testing.T) {
	h := newOrderHandler(newStubStore())

	rec := doJSON(h.Create, http.MethodPost, "/api/afisha/order", "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_ValidationFault(t *testing.T) {
	h := newOrderHandler(newStubStore())

	body := `{"tickets":[{"film":"f1","session":"s1","row":99,"seat":1,"price":350}]}`
	rec := doJSON(h.Create, http.MethodPost, "/api/afisha/order", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "seat out of range")
}

func TestCreateOrder_NotFoundFault(t *testing.T) {
	h := newOrderHandler(newStubStore())

	body := `{"tickets":[{"film":"missing","session":"s1","row":1,"seat":1,"price":350}]}`
	rec := doJSON(h.Create, http.MethodPost, "/api/afisha/order", body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrder_ConflictFault(t *testing.T) {
	store := newStubStore()
	store.screening.Taken = []string{"2:3"}
	h := newOrderHandler(store)

	body := `{"tickets":[{"film":"f1","session":"s1","row":2,"seat":3,"price":350}]}`
	rec := doJSON(h.Create, http.MethodPost, "/api/afisha/order", body)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var resp struct {
		Error     string   `json:"error"`
		Conflicts []string `json:"conflicts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2:3"}, resp.Conflicts)
}
