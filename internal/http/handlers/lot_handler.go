// README: Parking map handlers: create/show map, entry points.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkgrid/internal/modules/lot"
)

type LotHandler struct {
	svc *lot.Service
}

func NewLotHandler(svc *lot.Service) *LotHandler {
	return &LotHandler{svc: svc}
}

type createMapRequest struct {
	Rows int `json:"rows" binding:"required,min=1"`
	Cols int `json:"cols" binding:"required,min=1"`
}

func (h *LotHandler) CreateMap(c *gin.Context) {
	var req createMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "bad_request"})
		return
	}
	m, err := h.svc.ResetMap(c.Request.Context(), req.Rows, req.Cols)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *LotHandler) ShowMap(c *gin.Context) {
	m, err := h.svc.Map(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

type addEntryPointRequest struct {
	// Pointers so a legitimate row/col of 0 passes required validation.
	Row *int `json:"row" binding:"required,min=0"`
	Col *int `json:"col" binding:"required,min=0"`
}

func (h *LotHandler) AddEntryPoint(c *gin.Context) {
	var req addEntryPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "bad_request"})
		return
	}
	m, err := h.svc.AddEntryPoint(c.Request.Context(), *req.Row, *req.Col)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *LotHandler) EntryPoints(c *gin.Context) {
	eps, err := h.svc.EntryPoints(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry_points": eps})
}
