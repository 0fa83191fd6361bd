// README: Common money value object used across modules.
package types

// Money holds an amount in minor units (centavos). Minor units are
// authoritative for storage and comparison; Major is display-only.
type Money struct {
	Amount   int64
	Currency string
}

func (m Money) Major() float64 {
	return float64(m.Amount) / 100.0
}
