package scoring

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// round rounds half away from zero to the given number of places.
func round(x float64, places int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}

func round1(x float64) float64 { return round(x, 1) }
func round2(x float64) float64 { return round(x, 2) }

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(x, hi))
}

// ratio divides a by b, returning fallback when b is not positive.
func ratio(a, b, fallback float64) float64 {
	if b <= 0 {
		return fallback
	}
	return a / b
}

// Display is a month count that is rendered either as a number or as a fixed
// label such as "Stable" or "Not advisable".
type Display struct {
	Value float64
	Label string
}

// capped renders months rounded to one decimal, or label once months exceeds limit.
func capped(months, limit float64, label string) Display {
	if months > limit {
		return Display{Value: months, Label: label}
	}
	return Display{Value: round1(months)}
}

func (d Display) IsLabel() bool { return d.Label != "" }

func (d Display) MarshalJSON() ([]byte, error) {
	if d.Label != "" {
		return json.Marshal(d.Label)
	}
	return json.Marshal(d.Value)
}

func (d *Display) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		*d = Display{Label: label}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*d = Display{Value: v}
	return nil
}
