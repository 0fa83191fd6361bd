// README: Handler tests for plate normalization and error mapping.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"parkgrid/internal/config"
	"parkgrid/internal/http/handlers"
	"parkgrid/internal/modules/billing"
	"parkgrid/internal/modules/lot"
	"parkgrid/internal/modules/parking"
	"parkgrid/internal/types"
)

// stubStore is a minimal in-memory parking.Store double. It records the
// plates it was asked about so normalization can be asserted.
type stubStore struct {
	seenPlates []string
	vehicle    *parking.Vehicle
	candidates []lot.Slot
}

func (s *stubStore) FindOrCreateVehicle(_ context.Context, plate string, size types.Size) (*parking.Vehicle, error) {
	s.seenPlates = append(s.seenPlates, plate)
	if s.vehicle == nil {
		s.vehicle = &parking.Vehicle{ID: 1, PlateNumber: plate, Size: size}
	}
	return s.vehicle, nil
}

func (s *stubStore) VehicleByPlate(_ context.Context, plate string) (*parking.Vehicle, error) {
	s.seenPlates = append(s.seenPlates, plate)
	return s.vehicle, nil
}

func (s *stubStore) ActiveSession(context.Context, int64) (*parking.Session, error) {
	return nil, nil
}

func (s *stubStore) MostRecentClosedSession(context.Context, int64) (*parking.Session, error) {
	return nil, nil
}

func (s *stubStore) FreeCompatibleSlots(context.Context, int64, []types.Size) ([]lot.Slot, error) {
	return s.candidates, nil
}

func (s *stubStore) OpenSession(_ context.Context, vehicleID, slotID int64, entry time.Time) (*parking.Session, error) {
	return &parking.Session{ID: uuid.New(), VehicleID: vehicleID, SlotID: &slotID, EntryTime: entry}, nil
}

func (s *stubStore) CloseSession(context.Context, uuid.UUID, *int64, time.Time, int64) (bool, error) {
	return true, nil
}

func (s *stubStore) SlotByID(context.Context, int64) (*lot.Slot, error) {
	return nil, nil
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context) error { return nil }

func buildTestRouter(store parking.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	tariff := billing.TariffFromConfig(config.BillingConfig{
		FlatRateHours: 3, FlatRateCents: 4000,
		DailyHours: 24, DailyRateCents: 500000,
		SmallHourlyCents: 2000, MediumHourlyCents: 6000, LargeHourlyCents: 10000,
		Currency: "PHP",
	})
	svc := parking.NewService(store, billing.NewAggregator(1200), billing.NewCalculator(tariff), noopInvalidator{}, zap.NewNop())
	h := handlers.NewParkingHandler(svc)

	r := gin.New()
	r.POST("/api/v1/parking-management/park", h.Park)
	r.PATCH("/api/v1/parking-management/unpark", h.Unpark)
	r.GET("/api/v1/parking-management/vehicle/:plate_number", h.VehicleStatus)
	return r
}

func doRequest(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPark_NormalizesPlate(t *testing.T) {
	store := &stubStore{candidates: []lot.Slot{{ID: 5, Row: 0, Col: 1, Size: types.SizeSmall}}}
	r := buildTestRouter(store)

	w := doRequest(r, http.MethodPost, "/api/v1/parking-management/park", map[string]any{
		"vehicle_type":   "small",
		"plate_number":   "  abc-123 ",
		"entry_point_id": 1,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotEmpty(t, store.seenPlates)
	assert.Equal(t, "ABC-123", store.seenPlates[0])

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			SlotID int64 `json:"slot_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(5), resp.Data.SlotID)
}

func TestPark_UnknownVehicleType(t *testing.T) {
	r := buildTestRouter(&stubStore{})

	w := doRequest(r, http.MethodPost, "/api/v1/parking-management/park", map[string]any{
		"vehicle_type":   "oversized",
		"plate_number":   "ABC-123",
		"entry_point_id": 1,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPark_NoCompatibleSlotMapsTo422(t *testing.T) {
	r := buildTestRouter(&stubStore{}) // no candidates

	w := doRequest(r, http.MethodPost, "/api/v1/parking-management/park", map[string]any{
		"vehicle_type":   "large",
		"plate_number":   "ABC-123",
		"entry_point_id": 1,
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp struct {
		Kind string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "no_compatible_slot", resp.Kind)
}

func TestUnpark_UnknownVehicleMapsTo404(t *testing.T) {
	r := buildTestRouter(&stubStore{}) // no vehicle registered

	w := doRequest(r, http.MethodPatch, "/api/v1/parking-management/unpark", map[string]any{
		"plate_number": "GHOST-1",
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp struct {
		Kind string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "vehicle_not_found", resp.Kind)
}
