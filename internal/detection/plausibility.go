package detection

import "github.com/sizeshop/backend/internal/domain"

const cmPerInch = 2.54

// plausibleRange returns the inclusive centimeter range for a type.
// ok is false for types without a range, which are never filtered.
func plausibleRange(t domain.MeasurementType) (lo, hi float64, ok bool) {
	switch t {
	case domain.TypeChest:
		return 70, 150, true
	case domain.TypeWaist:
		return 50, 150, true
	case domain.TypeShoulder:
		return 30, 60, true
	case domain.TypeSleeve:
		return 50, 100, true
	case domain.TypeInseam:
		return 60, 100, true
	case domain.TypeLength:
		return 40, 150, true
	default:
		return 0, 0, false
	}
}

// IsPlausible reports whether value in unit is a realistic garment
// measurement of type t
func IsPlausible(value float64, unit domain.Unit, t domain.MeasurementType) bool {
	lo, hi, ok := plausibleRange(t)
	if !ok {
		return true
	}

	cm := value
	if unit == domain.UnitInch {
		cm = value * cmPerInch
	}
	return cm >= lo && cm <= hi
}
