// README: Tariff definition and fee breakdown payloads.
package billing

import (
	"parkgrid/internal/config"
	"parkgrid/internal/types"
)

// Tariff carries every billing constant. It is injected at construction so
// tests can vary rates freely.
type Tariff struct {
	FlatRateHours int64
	FlatRateCents int64

	DailyHours     int64
	DailyRateCents int64

	HourlyRateCents map[types.Size]int64

	Currency string
}

func TariffFromConfig(cfg config.BillingConfig) Tariff {
	return Tariff{
		FlatRateHours:  cfg.FlatRateHours,
		FlatRateCents:  cfg.FlatRateCents,
		DailyHours:     cfg.DailyHours,
		DailyRateCents: cfg.DailyRateCents,
		HourlyRateCents: map[types.Size]int64{
			types.SizeSmall:  cfg.SmallHourlyCents,
			types.SizeMedium: cfg.MediumHourlyCents,
			types.SizeLarge:  cfg.LargeHourlyCents,
		},
		Currency: cfg.Currency,
	}
}

// Quote is the result of a fee calculation: the authoritative amount in minor
// units plus the branch-specific breakdown used by the client.
type Quote struct {
	Fee       types.Money
	Breakdown Breakdown
}

type Breakdown struct {
	TotalHours            int64             `json:"total_hours"`
	FullDays              *int64            `json:"full_days,omitempty"`
	RemainderHours        *int64            `json:"remainder_hours,omitempty"`
	DailyCharges          *DailyCharges     `json:"daily_charges,omitempty"`
	RemainderHoursCharges *RemainderCharges `json:"remainder_hours_charges,omitempty"`
	HourlyCharges         *HourlyCharges    `json:"hourly_charges,omitempty"`
}

type DailyCharges struct {
	Days            int64   `json:"days"`
	RatePerDayCents int64   `json:"rate_per_day_cents"`
	RatePerDayPesos float64 `json:"rate_per_day_pesos"`
	TotalCents      int64   `json:"total_cents"`
	TotalPesos      float64 `json:"total_pesos"`
}

type RemainderCharges struct {
	Hours           int64   `json:"hours"`
	HourlyRateCents int64   `json:"hourly_rate_cents"`
	HourlyRatePesos float64 `json:"hourly_rate_pesos"`
	TotalCents      int64   `json:"total_cents"`
	TotalPesos      float64 `json:"total_pesos"`
}

// HourlyCharges covers both sub-24h shapes: flat-rate only (Hours set) and
// flat rate plus exceeding hours (FlatRateHours/ExceedingHours set).
type HourlyCharges struct {
	Hours           *int64   `json:"hours,omitempty"`
	FlatRateHours   *int64   `json:"flat_rate_hours,omitempty"`
	FlatRateCents   int64    `json:"flat_rate_cents"`
	FlatRatePesos   float64  `json:"flat_rate_pesos"`
	ExceedingHours  *int64   `json:"exceeding_hours,omitempty"`
	HourlyRateCents *int64   `json:"hourly_rate_cents,omitempty"`
	HourlyRatePesos *float64 `json:"hourly_rate_pesos,omitempty"`
	ExceedingCents  *int64   `json:"exceeding_total_cents,omitempty"`
	ExceedingPesos  *float64 `json:"exceeding_total_pesos,omitempty"`
	TotalCents      int64    `json:"total_cents"`
	TotalPesos      float64  `json:"total_pesos"`
}
