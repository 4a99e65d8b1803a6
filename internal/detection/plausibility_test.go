package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sizeshop/backend/internal/domain"
)

func TestIsPlausible_Bounds(t *testing.T) {
	for _, typ := range domain.MeasurementTypes {
		lo, hi, ok := plausibleRange(typ)
		if !assert.True(t, ok, "type %s has no range", typ) {
			continue
		}

		assert.True(t, IsPlausible(lo, domain.UnitCentimeter, typ), "%s lower bound", typ)
		assert.True(t, IsPlausible(hi, domain.UnitCentimeter, typ), "%s upper bound", typ)
		assert.True(t, IsPlausible((lo+hi)/2, domain.UnitCentimeter, typ), "%s midpoint", typ)
		assert.False(t, IsPlausible(lo-0.01, domain.UnitCentimeter, typ), "%s below range", typ)
		assert.False(t, IsPlausible(hi+0.01, domain.UnitCentimeter, typ), "%s above range", typ)

		// same bounds expressed in inches
		assert.True(t, IsPlausible((lo+hi)/2/cmPerInch, domain.UnitInch, typ), "%s midpoint in inches", typ)
		assert.False(t, IsPlausible((hi+1)/cmPerInch, domain.UnitInch, typ), "%s above range in inches", typ)
		assert.False(t, IsPlausible((lo-1)/cmPerInch, domain.UnitInch, typ), "%s below range in inches", typ)
	}
}

func TestIsPlausible_Cases(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		unit  domain.Unit
		typ   domain.MeasurementType
		want  bool
	}{
		{"chest 100cm", 100, domain.UnitCentimeter, domain.TypeChest, true},
		{"chest 9999cm", 9999, domain.UnitCentimeter, domain.TypeChest, false},
		{"chest 40in converts to 101.6cm", 40, domain.UnitInch, domain.TypeChest, true},
		{"chest 40cm", 40, domain.UnitCentimeter, domain.TypeChest, false},
		{"shoulder 45cm", 45, domain.UnitCentimeter, domain.TypeShoulder, true},
		{"waist 32in", 32, domain.UnitInch, domain.TypeWaist, true},
		{"inseam 59.9cm", 59.9, domain.UnitCentimeter, domain.TypeInseam, false},
		{"unknown is never filtered", 9999, domain.UnitCentimeter, domain.TypeUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPlausible(tt.value, tt.unit, tt.typ))
		})
	}
}
