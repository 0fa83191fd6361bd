// README: Tiered fee calculator (flat rate, hourly overage, daily rate).
package billing

import "parkgrid/internal/types"

type Calculator struct {
	tariff Tariff
}

func NewCalculator(tariff Tariff) Calculator {
	return Calculator{tariff: tariff}
}

// Quote converts whole billable hours into a fee. Branching, in order:
// zero hours is free, 24h and beyond bills full days plus plain-hourly
// remainder (the flat tier no longer applies), anything shorter bills the
// flat rate plus per-hour overage past the flat window.
func (c Calculator) Quote(totalHours int64, slotSize types.Size) Quote {
	t := c.tariff
	b := Breakdown{TotalHours: totalHours}

	if totalHours == 0 {
		return Quote{Fee: types.Money{Amount: 0, Currency: t.Currency}, Breakdown: b}
	}

	hourlyRate := t.HourlyRateCents[slotSize]

	if totalHours >= t.DailyHours {
		days := totalHours / t.DailyHours
		remainder := totalHours % t.DailyHours

		dailyCents := days * t.DailyRateCents
		fee := dailyCents

		b.FullDays = &days
		b.RemainderHours = &remainder
		b.DailyCharges = &DailyCharges{
			Days:            days,
			RatePerDayCents: t.DailyRateCents,
			RatePerDayPesos: centsToMajor(t.DailyRateCents),
			TotalCents:      dailyCents,
			TotalPesos:      centsToMajor(dailyCents),
		}
		if remainder > 0 {
			remCents := remainder * hourlyRate
			fee += remCents
			b.RemainderHoursCharges = &RemainderCharges{
				Hours:           remainder,
				HourlyRateCents: hourlyRate,
				HourlyRatePesos: centsToMajor(hourlyRate),
				TotalCents:      remCents,
				TotalPesos:      centsToMajor(remCents),
			}
		}
		return Quote{Fee: types.Money{Amount: fee, Currency: t.Currency}, Breakdown: b}
	}

	if totalHours <= t.FlatRateHours {
		b.HourlyCharges = &HourlyCharges{
			Hours:         &totalHours,
			FlatRateCents: t.FlatRateCents,
			FlatRatePesos: centsToMajor(t.FlatRateCents),
			TotalCents:    t.FlatRateCents,
			TotalPesos:    centsToMajor(t.FlatRateCents),
		}
		return Quote{Fee: types.Money{Amount: t.FlatRateCents, Currency: t.Currency}, Breakdown: b}
	}

	exceeding := totalHours - t.FlatRateHours
	exceedingCents := exceeding * hourlyRate
	fee := t.FlatRateCents + exceedingCents

	ratePesos := centsToMajor(hourlyRate)
	exceedingPesos := centsToMajor(exceedingCents)
	flatHours := t.FlatRateHours
	b.HourlyCharges = &HourlyCharges{
		FlatRateHours:   &flatHours,
		FlatRateCents:   t.FlatRateCents,
		FlatRatePesos:   centsToMajor(t.FlatRateCents),
		ExceedingHours:  &exceeding,
		HourlyRateCents: &hourlyRate,
		HourlyRatePesos: &ratePesos,
		ExceedingCents:  &exceedingCents,
		ExceedingPesos:  &exceedingPesos,
		TotalCents:      fee,
		TotalPesos:      centsToMajor(fee),
	}
	return Quote{Fee: types.Money{Amount: fee, Currency: t.Currency}, Breakdown: b}
}

func centsToMajor(cents int64) float64 {
	return float64(cents) / 100.0
}
