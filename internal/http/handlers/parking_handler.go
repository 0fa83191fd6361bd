// README: Park/unpark/status handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkgrid/internal/modules/parking"
	"parkgrid/internal/types"
)

type ParkingHandler struct {
	svc *parking.Service
}

func NewParkingHandler(svc *parking.Service) *ParkingHandler {
	return &ParkingHandler{svc: svc}
}

type parkRequest struct {
	VehicleType  string `json:"vehicle_type" binding:"required"`
	PlateNumber  string `json:"plate_number" binding:"required"`
	EntryPointID int64  `json:"entry_point_id" binding:"required"`
}

func (h *ParkingHandler) Park(c *gin.Context) {
	var req parkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "bad_request"})
		return
	}
	size, err := types.ParseSize(req.VehicleType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "bad_request"})
		return
	}
	plate := parking.NormalizePlate(req.PlateNumber)

	result, err := h.svc.Park(c.Request.Context(), size, plate, req.EntryPointID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Vehicle parked successfully",
		"data":    result,
	})
}

type unparkRequest struct {
	PlateNumber string `json:"plate_number" binding:"required"`
}

func (h *ParkingHandler) Unpark(c *gin.Context) {
	var req unparkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "bad_request"})
		return
	}
	plate := parking.NormalizePlate(req.PlateNumber)

	result, err := h.svc.Unpark(c.Request.Context(), plate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Vehicle unparked successfully",
		"data":    result,
	})
}

func (h *ParkingHandler) VehicleStatus(c *gin.Context) {
	plate := parking.NormalizePlate(c.Param("plate_number"))
	if plate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing plate number", "kind": "bad_request"})
		return
	}
	result, err := h.svc.VehicleStatus(c.Request.Context(), plate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}
