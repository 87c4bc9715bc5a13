package reservation_test

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"resalab/config"
	otelMocks "resalab/infras/otel/mocks"
	"resalab/internal/domains/reservation/model/dto"
	"resalab/internal/domains/reservation/service/mocks"
	"resalab/internal/handlers/reservation"
	gDto "resalab/shared/dto"
	"resalab/shared/failure"
	"resalab/shared/optional"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const validBody = `{"title":"Sprint review","start_time":"2026-01-05T09:00:00Z","end_time":"2026-01-05T10:00:00Z","salle_id":2}`

type fixture struct {
	service *mocks.MockReservation
	router  chi.Router
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockReservation(ctrl)

	cfg := &config.Config{}
	cfg.App.APIPrefix = "/api"
	cfg.App.Pagination.DefaultSize = 20
	cfg.App.Pagination.MaxSize = 2000

	handler := reservation.New(svc, cfg, otelMocks.NewOtel())

	router := chi.NewRouter()
	router.Route(cfg.App.APIPrefix, handler.Router)

	return fixture{service: svc, router: router}
}

func (f fixture) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func sampleResponse(id int64) dto.ReservationResponse {
	salleID := int64(2)

	return dto.ReservationResponse{
		ID:        id,
		Title:     "Sprint review",
		StartTime: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
		SalleID:   &salleID,
	}
}

func TestCreateReservation(t *testing.T) {
	f := setup(t)

	f.service.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req dto.ReservationRequest) (dto.ReservationResponse, error) {
			assert.Nil(t, req.ID)
			assert.Equal(t, "Sprint review", req.Title)
			require.NotNil(t, req.SalleID)
			assert.Equal(t, int64(2), *req.SalleID)

			return sampleResponse(1), nil
		})

	rec := f.do(http.MethodPost, "/api/reservations", validBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/reservations/1", rec.Header().Get("Location"))
	assert.Equal(t, []string{"resalabApp.reservation.created"}, rec.Header()["X-resalabApp-alert"])
	assert.Equal(t, []string{"1"}, rec.Header()["X-resalabApp-params"])

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 1, body["id"])
	assert.Equal(t, "Sprint review", body["title"])
}

func TestCreateReservation_WithID(t *testing.T) {
	f := setup(t)

	f.service.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.ReservationResponse{}, failure.IDExists("reservation"))

	rec := f.do(http.MethodPost, "/api/reservations", `{"id":7,`+validBody[1:])

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, []string{"error.idexists"}, rec.Header()["X-resalabApp-error"])
	assert.Equal(t, []string{"reservation"}, rec.Header()["X-resalabApp-params"])
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestCreateReservation_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"title":`},
		{name: "blank title", body: `{"title":"  ","start_time":"2026-01-05T09:00:00Z","end_time":"2026-01-05T10:00:00Z"}`},
		{name: "end before start", body: `{"title":"x","start_time":"2026-01-05T10:00:00Z","end_time":"2026-01-05T09:00:00Z"}`},
		{name: "missing times", body: `{"title":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			rec := f.do(http.MethodPost, "/api/reservations", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestUpdateReservation(t *testing.T) {
	f := setup(t)

	f.service.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req dto.ReservationRequest) (dto.ReservationResponse, error) {
			require.NotNil(t, req.ID)

			return sampleResponse(*req.ID), nil
		})

	rec := f.do(http.MethodPut, "/api/reservations", `{"id":4,`+validBody[1:])

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"resalabApp.reservation.updated"}, rec.Header()["X-resalabApp-alert"])
	assert.Equal(t, []string{"4"}, rec.Header()["X-resalabApp-params"])
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestUpdateReservation_WithoutIDCreates(t *testing.T) {
	f := setup(t)

	f.service.EXPECT().Update(gomock.Any(), gomock.Any()).Return(sampleResponse(9), nil)

	rec := f.do(http.MethodPut, "/api/reservations", validBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/reservations/9", rec.Header().Get("Location"))
	assert.Equal(t, []string{"resalabApp.reservation.created"}, rec.Header()["X-resalabApp-alert"])
}

func TestUpdateReservation_NotFound(t *testing.T) {
	f := setup(t)

	f.service.EXPECT().Update(gomock.Any(), gomock.Any()).Return(dto.ReservationResponse{}, failure.NotFound("reservation not found"))

	rec := f.do(http.MethodPut, "/api/reservations", `{"id":404,`+validBody[1:])

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Header()["X-resalabApp-alert"])
}

func TestGetAllReservations(t *testing.T) {
	f := setup(t)

	f.service.EXPECT().GetAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams) (gDto.Page[dto.ReservationResponse], error) {
			assert.Equal(t, 1, params.Page)
			assert.Equal(t, 2, params.Size)
			assert.Equal(t, []gDto.Sort{{Property: "title", Direction: gDto.SortDirDesc}}, params.Sort)

			return gDto.NewPage([]dto.ReservationResponse{sampleResponse(3), sampleResponse(4)}, params, 5), nil
		})

	rec := f.do(http.MethodGet, "/api/reservations?page=1&size=2&sort=title,desc", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", rec.Header().Get("X-Total-Count"))

	link := rec.Header().Get("Link")
	assert.Contains(t, link, `</api/reservations?page=2&size=2&sort=title%2Cdesc>; rel="next"`)
	assert.Contains(t, link, `</api/reservations?page=0&size=2&sort=title%2Cdesc>; rel="prev"`)
	assert.Contains(t, link, `</api/reservations?page=2&size=2&sort=title%2Cdesc>; rel="last"`)
	assert.Contains(t, link, `</api/reservations?page=0&size=2&sort=title%2Cdesc>; rel="first"`)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.EqualValues(t, 3, body[0]["id"])
}

func TestGetAllReservations_Defaults(t *testing.T) {
	f := setup(t)

	f.service.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{Page: 0, Size: 20}).
		Return(gDto.NewPage[dto.ReservationResponse](nil, gDto.QueryParams{Page: 0, Size: 20}, 0), nil)

	rec := f.do(http.MethodGet, "/api/reservations", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-Total-Count"))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetAllReservations_HugePage(t *testing.T) {
	f := setup(t)

	f.service.EXPECT().GetAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams) (gDto.Page[dto.ReservationResponse], error) {
			assert.Equal(t, math.MaxInt/20-1, params.Page)
			assert.GreaterOrEqual(t, params.Offset(), 0)

			return gDto.NewPage[dto.ReservationResponse](nil, params, 5), nil
		})

	rec := f.do(http.MethodGet, "/api/reservations?page=922337203685477580&size=20", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Link"), `</api/reservations?page=0&size=20>; rel="first"`)
}

func TestGetAllReservations_UnknownSort(t *testing.T) {
	f := setup(t)

	f.service.EXPECT().GetAll(gomock.Any(), gomock.Any()).
		Return(gDto.Page[dto.ReservationResponse]{}, fmt.Errorf("failed to get reservations: %w", failure.InvalidSortParam))

	rec := f.do(http.MethodGet, "/api/reservations?sort=password", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Header().Get("Link"))
}

func TestGetReservation(t *testing.T) {
	tests := []struct {
		name   string
		target string
		mock   func(svc *mocks.MockReservation)
		code   int
		empty  bool
	}{
		{
			name:   "found",
			target: "/api/reservations/3",
			mock: func(svc *mocks.MockReservation) {
				svc.EXPECT().Get(gomock.Any(), int64(3)).Return(optional.Found(sampleResponse(3)), nil)
			},
			code: http.StatusOK,
		},
		{
			name:   "absent",
			target: "/api/reservations/99",
			mock: func(svc *mocks.MockReservation) {
				svc.EXPECT().Get(gomock.Any(), int64(99)).Return(optional.Absent[dto.ReservationResponse](), nil)
			},
			code:  http.StatusNotFound,
			empty: true,
		},
		{
			name:   "not numeric",
			target: "/api/reservations/abc",
			mock:   func(_ *mocks.MockReservation) {},
			code:   http.StatusBadRequest,
		},
		{
			name:   "repository failure",
			target: "/api/reservations/3",
			mock: func(svc *mocks.MockReservation) {
				svc.EXPECT().Get(gomock.Any(), int64(3)).Return(optional.Absent[dto.ReservationResponse](), fmt.Errorf("connection refused"))
			},
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			tt.mock(f.service)

			rec := f.do(http.MethodGet, tt.target, "")

			assert.Equal(t, tt.code, rec.Code)

			if tt.empty {
				assert.Empty(t, rec.Body.String())
			}
		})
	}
}

func TestDeleteReservation(t *testing.T) {
	f := setup(t)

	f.service.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil)

	rec := f.do(http.MethodDelete, "/api/reservations/5", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, []string{"resalabApp.reservation.deleted"}, rec.Header()["X-resalabApp-alert"])
	assert.Equal(t, []string{"5"}, rec.Header()["X-resalabApp-params"])
}

func TestDeleteReservation_InvalidID(t *testing.T) {
	f := setup(t)

	rec := f.do(http.MethodDelete, "/api/reservations/0", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
