// README: Domain error to HTTP status/kind mapping.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"parkgrid/internal/modules/lot"
	"parkgrid/internal/modules/parking"
)

// respondError surfaces domain errors verbatim with a stable kind. Anything
// unmapped is an internal error and its message stays out of the response.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, parking.ErrAlreadyParked):
		writeError(c, http.StatusConflict, "already_parked", err)
	case errors.Is(err, parking.ErrNoCompatibleSlot):
		writeError(c, http.StatusUnprocessableEntity, "no_compatible_slot", err)
	case errors.Is(err, parking.ErrVehicleNotFound):
		writeError(c, http.StatusNotFound, "vehicle_not_found", err)
	case errors.Is(err, parking.ErrNotParked):
		writeError(c, http.StatusNotFound, "not_currently_parked", err)
	case errors.Is(err, lot.ErrInvalidGridSpec):
		writeError(c, http.StatusBadRequest, "invalid_grid_spec", err)
	case errors.Is(err, lot.ErrDuplicateEntryPoint):
		writeError(c, http.StatusBadRequest, "duplicate_entry_point", err)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "kind": "internal"})
	}
}

func writeError(c *gin.Context, status int, kind string, err error) {
	c.JSON(status, gin.H{"error": err.Error(), "kind": kind})
}
