package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dmarchuk/flightroster/internal/domain"
	"github.com/dmarchuk/flightroster/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type createFlightRequest struct {
	FlightNumber   string    `json:"flightNumber" binding:"required"`
	DepartureTime  time.Time `json:"departureTime" binding:"required"`
	AvailableSeats *int      `json:"availableSeats" binding:"required"`
	Route          []string  `json:"route" binding:"required"`
}

type updateFlightRequest struct {
	FlightNumber   *string    `json:"flightNumber"`
	DepartureTime  *time.Time `json:"departureTime"`
	AvailableSeats *int       `json:"availableSeats"`
	Route          []string   `json:"route"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/search", h.search)
	router.GET("/:flightNumber", h.get)
	router.PATCH("/:flightNumber", h.update)
	router.DELETE("/:flightNumber", h.delete)
	router.POST("/:flightNumber/:passengerId", h.addPassenger)
	router.DELETE("/:flightNumber/:passengerId", h.removePassenger)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error())
		return
	}

	flight, err := h.service.Create(c.Request.Context(), flights.CreateFlightInput{
		FlightNumber:   req.FlightNumber,
		DepartureTime:  req.DepartureTime,
		AvailableSeats: *req.AvailableSeats,
		Route:          req.Route,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", "/flights/"+flight.FlightNumber)
	c.Status(http.StatusCreated)
}

func (h *FlightHandler) get(c *gin.Context) {
	details, err := h.service.Get(c.Request.Context(), c.Param("flightNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightDetailsResource(details))
}

func (h *FlightHandler) list(c *gin.Context) {
	page, err := pageRequest(c)
	if err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightPageResource(result))
}

func (h *FlightHandler) search(c *gin.Context) {
	page, err := pageRequest(c)
	if err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error())
		return
	}

	criteria, err := searchCriteria(c)
	if err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Search(c.Request.Context(), criteria, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightPageResource(result))
}

func (h *FlightHandler) update(c *gin.Context) {
	var req updateFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.service.Update(c.Request.Context(), c.Param("flightNumber"), flights.UpdateFlightInput{
		FlightNumber:   req.FlightNumber,
		DepartureTime:  req.DepartureTime,
		AvailableSeats: req.AvailableSeats,
		Route:          req.Route,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FlightHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("flightNumber")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FlightHandler) addPassenger(c *gin.Context) {
	passengerID, err := uuid.Parse(c.Param("passengerId"))
	if err != nil {
		respondErrors(c, http.StatusBadRequest, "invalid passenger id")
		return
	}

	if err := h.service.AddPassenger(c.Request.Context(), c.Param("flightNumber"), passengerID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FlightHandler) removePassenger(c *gin.Context) {
	passengerID, err := uuid.Parse(c.Param("passengerId"))
	if err != nil {
		respondErrors(c, http.StatusBadRequest, "invalid passenger id")
		return
	}

	if err := h.service.RemovePassenger(c.Request.Context(), c.Param("flightNumber"), passengerID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pageRequest(c *gin.Context) (domain.PageRequest, error) {
	page := domain.PageRequest{Page: 1, PerPage: defaultPerPage}

	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, &domain.ValidationError{Field: "page", Message: "must be a positive integer"}
		}
		page.Page = n
	}
	if raw := c.Query("perPage"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, &domain.ValidationError{Field: "perPage", Message: "must be a positive integer"}
		}
		if n > maxPerPage {
			n = maxPerPage
		}
		page.PerPage = n
	}
	return page, nil
}

// searchCriteria reads the optional filters off the query string. An
// absent parameter stays nil and contributes no predicate.
func searchCriteria(c *gin.Context) (domain.FlightSearchCriteria, error) {
	var criteria domain.FlightSearchCriteria

	if raw := c.Query("flightNumber"); raw != "" {
		criteria.FlightNumber = &raw
	}
	if raw := c.Query("departureTimeFrom"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return criteria, &domain.ValidationError{Field: "departureTimeFrom", Message: "must be an RFC3339 timestamp"}
		}
		criteria.DepartureTimeFrom = &t
	}
	if raw := c.Query("departureTimeTo"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return criteria, &domain.ValidationError{Field: "departureTimeTo", Message: "must be an RFC3339 timestamp"}
		}
		criteria.DepartureTimeTo = &t
	}
	if raw := c.Query("availableSeatsFrom"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return criteria, &domain.ValidationError{Field: "availableSeatsFrom", Message: "must be an integer"}
		}
		criteria.AvailableSeatsFrom = &n
	}
	if raw := c.Query("city"); raw != "" {
		criteria.City = &raw
	}
	return criteria, nil
}
