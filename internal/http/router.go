// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"parkgrid/internal/http/handlers"
	"parkgrid/internal/http/middleware"
	"parkgrid/internal/modules/lot"
	"parkgrid/internal/modules/parking"
)

func NewRouter(lotService *lot.Service, parkingService *parking.Service, log *zap.Logger) http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.Logging(log))

	lotHandler := handlers.NewLotHandler(lotService)
	parkingHandler := handlers.NewParkingHandler(parkingService)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/parking-map", lotHandler.CreateMap)
		v1.GET("/parking-map", lotHandler.ShowMap)
		v1.POST("/parking-map/entry-point", lotHandler.AddEntryPoint)
		v1.GET("/parking-map/entry-points", lotHandler.EntryPoints)

		v1.POST("/parking-management/park", parkingHandler.Park)
		v1.PATCH("/parking-management/unpark", parkingHandler.Unpark)
		v1.GET("/parking-management/vehicle/:plate_number", parkingHandler.VehicleStatus)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
