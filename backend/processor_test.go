package backend

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurveProcessor_Calculate(t *testing.T) {
	cp := NewCurveProcessor("A36 Steel", steel())
	res, err := cp.Calculate()
	require.NoError(t, err)

	assert.Equal(t, "A36 Steel", res.Substance)
	assert.Equal(t, 100, res.Table.Len())
	assert.InDelta(t, 9.7382, res.Exponent, 1e-3)
	assert.Equal(t, 29000000.0, res.YoungsModulus)

	assert.Equal(t, "yield", res.Yield.Name)
	assert.Equal(t, 36000.0, res.Yield.Stress)
	assert.InDelta(t, cp.Model.StrainAtYield(), res.Yield.Strain, 1e-12)

	assert.Equal(t, "ultimate", res.Ultimate.Name)
	assert.Equal(t, 58000.0, res.Ultimate.Stress)
	assert.InDelta(t, 0.21, res.Ultimate.Strain, 1e-12)
}

func TestCurveProcessor_Resolution(t *testing.T) {
	cp := NewCurveProcessor("steel", steel())
	cp.Resolution = 20

	res, err := cp.Calculate()
	require.NoError(t, err)
	assert.Equal(t, 20, res.Table.Len())
}

func TestCurveProcessor_DomainErrorIsFatal(t *testing.T) {
	p := steel()
	p.MaxElongation = 0.001

	cp := NewCurveProcessor("brittle", p)
	res, err := cp.Calculate()

	var de *DomainError
	require.True(t, errors.As(err, &de), "want DomainError, got %v", err)
	assert.Nil(t, res.Table)
	assert.Nil(t, cp.Model)
}

func TestCurveProcessor_Isolated(t *testing.T) {
	a := NewCurveProcessor("a", steel())
	other := steel()
	other.MaxElongation = 0.3
	b := NewCurveProcessor("b", other)

	ra, err := a.Calculate()
	require.NoError(t, err)
	rb, err := b.Calculate()
	require.NoError(t, err)

	assert.NotEqual(t, ra.Exponent, rb.Exponent)
	assert.NotSame(t, ra.Table, rb.Table)
	assert.InDelta(t, 9.7382, a.Model.Exponent(), 1e-3)
}

func TestCurveProcessor_RejectsNonPositiveStrengths(t *testing.T) {
	for _, p := range []MaterialProperties{
		{YieldStrength: -36000, UltimateTensileStrength: -58000, YoungsModulus: 29000000, MaxElongation: 0.21},
		{YieldStrength: 0, UltimateTensileStrength: 58000, YoungsModulus: 29000000, MaxElongation: 0.21},
	} {
		cp := NewCurveProcessor("compressive", p)
		res, err := cp.Calculate()

		var de *DomainError
		assert.True(t, errors.As(err, &de), "yield=%g: want DomainError, got %v", p.YieldStrength, err)
		assert.Nil(t, res.Table)
		assert.Nil(t, cp.Model)
	}
}
