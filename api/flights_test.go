package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmarchuk/flightroster/internal/domain"
	"github.com/dmarchuk/flightroster/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFlightUseCase is a mock implementation of flights.FlightUseCase
type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) Create(ctx context.Context, input flights.CreateFlightInput) (*domain.Flight, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Get(ctx context.Context, flightNumber string) (*domain.FlightDetails, error) {
	args := m.Called(ctx, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightDetails), args.Error(1)
}

func (m *MockFlightUseCase) List(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Flight], error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.Flight]), args.Error(1)
}

func (m *MockFlightUseCase) Search(ctx context.Context, criteria domain.FlightSearchCriteria, page domain.PageRequest) (*domain.Page[domain.Flight], error) {
	args := m.Called(ctx, criteria, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.Flight]), args.Error(1)
}

func (m *MockFlightUseCase) Update(ctx context.Context, flightNumber string, input flights.UpdateFlightInput) error {
	args := m.Called(ctx, flightNumber, input)
	return args.Error(0)
}

func (m *MockFlightUseCase) Delete(ctx context.Context, flightNumber string) error {
	args := m.Called(ctx, flightNumber)
	return args.Error(0)
}

func (m *MockFlightUseCase) AddPassenger(ctx context.Context, flightNumber string, passengerID uuid.UUID) error {
	args := m.Called(ctx, flightNumber, passengerID)
	return args.Error(0)
}

func (m *MockFlightUseCase) RemovePassenger(ctx context.Context, flightNumber string, passengerID uuid.UUID) error {
	args := m.Called(ctx, flightNumber, passengerID)
	return args.Error(0)
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestFlightHandler_create(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/flights",
		`{"flightNumber":"LO1234","departureTime":"2026-09-10T08:00:00Z","availableSeats":120,"route":["Warsaw","Gdansk"]}`)

	departure := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	flight := &domain.Flight{ID: 1, FlightNumber: "LO1234", DepartureTime: departure, AvailableSeats: 120, Route: []string{"Warsaw", "Gdansk"}}

	mockService.On("Create", c.Request.Context(), flights.CreateFlightInput{
		FlightNumber:   "LO1234",
		DepartureTime:  departure,
		AvailableSeats: 120,
		Route:          []string{"Warsaw", "Gdansk"},
	}).Return(flight, nil)

	handler.create(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/flights/LO1234", w.Header().Get("Location"))

	mockService.AssertExpectations(t)
}

func TestFlightHandler_create_duplicateNumber(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/flights",
		`{"flightNumber":"LO1234","departureTime":"2026-09-10T08:00:00Z","availableSeats":120,"route":["Warsaw"]}`)

	mockService.On("Create", c.Request.Context(), mock.AnythingOfType("flights.CreateFlightInput")).
		Return(nil, domain.ErrFlightNumberTaken)

	handler.create(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusConflict, w.Code)

	mockService.AssertExpectations(t)
}

func TestFlightHandler_create_missingFields(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/flights", `{"flightNumber":"LO1234"}`)

	handler.create(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Create")
}

func TestFlightHandler_get(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "flightNumber", Value: "LO1234"}}
	c.Request = httptest.NewRequest("GET", "/flights/LO1234", nil)

	details := &domain.FlightDetails{
		Flight: domain.Flight{ID: 1, FlightNumber: "LO1234", AvailableSeats: 120, Route: []string{"Warsaw", "Gdansk"}},
	}

	mockService.On("Get", c.Request.Context(), "LO1234").Return(details, nil)

	handler.get(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"flightNumber":"LO1234"`)

	mockService.AssertExpectations(t)
}

func TestFlightHandler_get_notFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "flightNumber", Value: "XX9999"}}
	c.Request = httptest.NewRequest("GET", "/flights/XX9999", nil)

	mockService.On("Get", c.Request.Context(), "XX9999").Return(nil, domain.ErrFlightNotFound)

	handler.get(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"errors"`)

	mockService.AssertExpectations(t)
}

func TestFlightHandler_list_pageDefaults(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights", nil)

	result := &domain.Page[domain.Flight]{Items: []domain.Flight{}, Page: 1, PerPage: 20, Total: 0}

	mockService.On("List", c.Request.Context(), domain.PageRequest{Page: 1, PerPage: 20}).Return(result, nil)

	handler.list(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusOK, w.Code)

	mockService.AssertExpectations(t)
}

func TestFlightHandler_list_badPage(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights?page=zero", nil)

	handler.list(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "List")
}

func TestFlightHandler_search_passesCriteria(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights/search?flightNumber=LO&availableSeatsFrom=2&city=Warsaw", nil)

	result := &domain.Page[domain.Flight]{Items: []domain.Flight{}, Page: 1, PerPage: 20, Total: 0}

	prefix := "LO"
	seats := 2
	city := "Warsaw"
	mockService.On("Search", c.Request.Context(),
		domain.FlightSearchCriteria{FlightNumber: &prefix, AvailableSeatsFrom: &seats, City: &city},
		domain.PageRequest{Page: 1, PerPage: 20},
	).Return(result, nil)

	handler.search(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusOK, w.Code)

	mockService.AssertExpectations(t)
}

func TestFlightHandler_search_badTimestamp(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights/search?departureTimeFrom=tomorrow", nil)

	handler.search(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Search")
}

func TestFlightHandler_update(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "flightNumber", Value: "LO1234"}}
	c.Request = jsonRequest("PATCH", "/flights/LO1234", `{"availableSeats":90}`)

	seats := 90
	mockService.On("Update", c.Request.Context(), "LO1234", flights.UpdateFlightInput{AvailableSeats: &seats}).Return(nil)

	handler.update(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)

	mockService.AssertExpectations(t)
}

func TestFlightHandler_update_validation(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "flightNumber", Value: "LO1234"}}
	c.Request = jsonRequest("PATCH", "/flights/LO1234", `{"flightNumber":"LO"}`)

	mockService.On("Update", c.Request.Context(), "LO1234", mock.AnythingOfType("flights.UpdateFlightInput")).
		Return(&domain.ValidationError{Field: "flightNumber", Message: "must be at least 4 characters long"})

	handler.update(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "flightNumber")

	mockService.AssertExpectations(t)
}

func TestFlightHandler_delete(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "flightNumber", Value: "LO1234"}}
	c.Request = httptest.NewRequest("DELETE", "/flights/LO1234", nil)

	mockService.On("Delete", c.Request.Context(), "LO1234").Return(nil)

	handler.delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)

	mockService.AssertExpectations(t)
}

func TestFlightHandler_addPassenger(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	passengerID := uuid.New()
	c.Params = gin.Params{
		{Key: "flightNumber", Value: "LO1234"},
		{Key: "passengerId", Value: passengerID.String()},
	}
	c.Request = httptest.NewRequest("POST", "/flights/LO1234/"+passengerID.String(), nil)

	mockService.On("AddPassenger", c.Request.Context(), "LO1234", passengerID).Return(nil)

	handler.addPassenger(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)

	mockService.AssertExpectations(t)
}

func TestFlightHandler_addPassenger_invalidID(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{
		{Key: "flightNumber", Value: "LO1234"},
		{Key: "passengerId", Value: "not-a-uuid"},
	}
	c.Request = httptest.NewRequest("POST", "/flights/LO1234/not-a-uuid", nil)

	handler.addPassenger(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "AddPassenger")
}

func TestFlightHandler_addPassenger_flightFull(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	passengerID := uuid.New()
	c.Params = gin.Params{
		{Key: "flightNumber", Value: "LO1234"},
		{Key: "passengerId", Value: passengerID.String()},
	}
	c.Request = httptest.NewRequest("POST", "/flights/LO1234/"+passengerID.String(), nil)

	mockService.On("AddPassenger", c.Request.Context(), "LO1234", passengerID).Return(domain.ErrFlightFull)

	handler.addPassenger(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusConflict, w.Code)

	mockService.AssertExpectations(t)
}

func TestFlightHandler_removePassenger(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	passengerID := uuid.New()
	c.Params = gin.Params{
		{Key: "flightNumber", Value: "LO1234"},
		{Key: "passengerId", Value: passengerID.String()},
	}
	c.Request = httptest.NewRequest("DELETE", "/flights/LO1234/"+passengerID.String(), nil)

	mockService.On("RemovePassenger", c.Request.Context(), "LO1234", passengerID).Return(nil)

	handler.removePassenger(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)

	mockService.AssertExpectations(t)
}

func TestFlightHandler_removePassenger_notOnFlight(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	passengerID := uuid.New()
	c.Params = gin.Params{
		{Key: "flightNumber", Value: "LO1234"},
		{Key: "passengerId", Value: passengerID.String()},
	}
	c.Request = httptest.NewRequest("DELETE", "/flights/LO1234/"+passengerID.String(), nil)

	mockService.On("RemovePassenger", c.Request.Context(), "LO1234", passengerID).Return(domain.ErrPassengerNotOnFlight)

	handler.removePassenger(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusConflict, w.Code)

	mockService.AssertExpectations(t)
}
