package backend

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurveTable_LastWriteWins(t *testing.T) {
	table := NewCurveTable()
	table.Set(0.1, 10)
	table.Set(0.2, 20)
	table.Set(0.1, 15)

	require.Equal(t, 2, table.Len())
	assert.Equal(t, []CurvePoint{{0.1, 15}, {0.2, 20}}, table.Points())
}

func TestCurveTable_PointsIsCopy(t *testing.T) {
	table := NewCurveTable()
	table.Set(0.1, 10)

	pts := table.Points()
	pts[0].Stress = 99

	assert.Equal(t, 10.0, table.Points()[0].Stress)
}

func TestCurveSampler_Steel(t *testing.T) {
	m, err := NewHardeningModel(steel())
	require.NoError(t, err)

	table, err := NewCurveSampler(m, 100).Sample()
	require.NoError(t, err)
	require.Equal(t, 100, table.Len())

	pts := table.Points()
	assert.Equal(t, CurvePoint{Strain: 0, Stress: 0}, pts[0])
	assert.Equal(t, CurvePoint{Strain: 0.00002, Stress: 580}, pts[1])
	assert.InDelta(t, 58000-580, pts[len(pts)-1].Stress, 1e-9)
	assert.InDelta(t, 0.190587, pts[len(pts)-1].Strain, 1e-9)

	for i := 1; i < len(pts); i++ {
		assert.Greater(t, pts[i].Stress, pts[i-1].Stress)
		assert.Greater(t, pts[i].Strain, pts[i-1].Strain)
	}
}

func TestCurveSampler_Rounding(t *testing.T) {
	m, err := NewHardeningModel(steel())
	require.NoError(t, err)

	table, err := NewCurveSampler(m, 7).Sample()
	require.NoError(t, err)

	for _, p := range table.Points() {
		assert.Equal(t, roundStrain(p.Strain), p.Strain)
		assert.Equal(t, roundStress(p.Stress), p.Stress)
	}
	// 58000/7 = 8285.714285...
	assert.Equal(t, 8285.714, table.Points()[1].Stress)
}

func TestCurveSampler_DefaultResolution(t *testing.T) {
	m, err := NewHardeningModel(steel())
	require.NoError(t, err)

	s := NewCurveSampler(m, 0)
	assert.Equal(t, DefaultResolution, s.Resolution())
}

func TestCurveSampler_ResolutionBounds(t *testing.T) {
	m, err := NewHardeningModel(steel())
	require.NoError(t, err)

	for _, r := range []int{1, 3, 10, 33, 250, 1000} {
		table, err := NewCurveSampler(m, r).Sample()
		require.NoError(t, err)
		assert.LessOrEqual(t, table.Len(), r, "R=%d", r)

		last := table.Points()[table.Len()-1]
		assert.Less(t, last.Stress, 58000.0, "R=%d", r)
	}
}

func TestCurveSampler_DropsDomainFailures(t *testing.T) {
	// εmax − σuts/E < 0.002 gives n < 0, so (0/σys)^n is infinite
	p := steel()
	p.MaxElongation = 0.003
	m, err := NewHardeningModel(p)
	require.NoError(t, err)
	require.Less(t, m.Exponent(), 0.0)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	table, err := NewCurveSampler(m, 100).WithLogger(logger).Sample()
	require.NoError(t, err)
	assert.Equal(t, 99, table.Len())
	assert.Contains(t, buf.String(), "sample dropped")

	pts := table.Points()
	assert.Equal(t, 580.0, pts[0].Stress)
	for i := 1; i < len(pts); i++ {
		assert.Greater(t, pts[i].Stress, pts[i-1].Stress)
	}
}

func TestCurveSampler_Idempotent(t *testing.T) {
	m, err := NewHardeningModel(steel())
	require.NoError(t, err)

	s := NewCurveSampler(m, 100)
	first, err := s.Sample()
	require.NoError(t, err)
	second, err := s.Sample()
	require.NoError(t, err)

	if diff := cmp.Diff(first.Points(), second.Points()); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
	assert.InDelta(t, 9.738218661904574, m.Exponent(), 1e-9)
}

func TestCurveTable_XY(t *testing.T) {
	table := NewCurveTable()
	table.Set(0.1, 10)
	table.Set(0.2, 20)

	xs, ys := table.XY()
	assert.Equal(t, []float64{0.1, 0.2}, xs)
	assert.Equal(t, []float64{10, 20}, ys)
}
