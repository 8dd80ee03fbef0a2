package api

import (
	"net/http"

	"github.com/dmarchuk/flightroster/internal/service/passengers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PassengerHandler struct {
	service passengers.PassengerUseCase
}

type createPassengerRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	CountryCode string `json:"countryCode" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

type updatePassengerRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	CountryCode *string `json:"countryCode"`
	PhoneNumber *string `json:"phoneNumber"`
}

func NewPassengerHandler(service passengers.PassengerUseCase) *PassengerHandler {
	return &PassengerHandler{service: service}
}

func (h *PassengerHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("/:passengerId", h.get)
	router.PATCH("/:passengerId", h.update)
	router.DELETE("/:passengerId", h.delete)
}

func (h *PassengerHandler) create(c *gin.Context) {
	var req createPassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error())
		return
	}

	passenger, err := h.service.Create(c.Request.Context(), passengers.CreatePassengerInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		CountryCode: req.CountryCode,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", "/passengers/"+passenger.PassengerID.String())
	c.Status(http.StatusCreated)
}

func (h *PassengerHandler) get(c *gin.Context) {
	passengerID, err := uuid.Parse(c.Param("passengerId"))
	if err != nil {
		respondErrors(c, http.StatusBadRequest, "invalid passenger id")
		return
	}

	details, err := h.service.Get(c.Request.Context(), passengerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPassengerDetailsResource(details))
}

func (h *PassengerHandler) update(c *gin.Context) {
	passengerID, err := uuid.Parse(c.Param("passengerId"))
	if err != nil {
		respondErrors(c, http.StatusBadRequest, "invalid passenger id")
		return
	}

	var req updatePassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error())
		return
	}

	err = h.service.Update(c.Request.Context(), passengerID, passengers.UpdatePassengerInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		CountryCode: req.CountryCode,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PassengerHandler) delete(c *gin.Context) {
	passengerID, err := uuid.Parse(c.Param("passengerId"))
	if err != nil {
		respondErrors(c, http.StatusBadRequest, "invalid passenger id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), passengerID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
