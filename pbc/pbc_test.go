package pbc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func cubic(t *testing.T, side float64) *Lattice {
	t.Helper()
	L, err := Orthorhombic(side, side, side)
	require.NoError(t, err)
	return L
}

func TestDegenerateCell(t *testing.T) {
	_, err := NewLattice([]float64{1, 0, 0}, []float64{0, 1, 0}, []float64{1, 1, 0})
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = Orthorhombic(10, 0, 10)
	assert.ErrorIs(t, err, ErrDegenerate)
}

func TestMinImageCubic(t *testing.T) {
	L := cubic(t, 10)

	d := MinImage([]float64{9, -6, 4}, L)
	assert.InDeltaSlice(t, []float64{-1, 4, 4}, d, 1e-12)

	//a whole lattice vector is no displacement at all
	d = MinImage([]float64{10, 0, -20}, L)
	assert.InDeltaSlice(t, []float64{0, 0, 0}, d, 1e-12)

	assert.InDelta(t, 2.0, Distance([]float64{0.5, 0, 0}, []float64{8.5, 0, 0}, L), 1e-12)
}

func TestMinImageTriclinic(t *testing.T) {
	L, err := FromParameters(10, 11, 12, 75, 100, 110)
	require.NoError(t, err)

	//brute force over a generous number of images
	for _, p := range [][]float64{{3.1, 7.7, 2.2}, {-4, 9.5, 8.3}, {12, -1, 0.4}, {5, 5, 5}} {
		best := math.Inf(1)
		for i := -3.0; i <= 3; i++ {
			for j := -3.0; j <= 3; j++ {
				for k := -3.0; k <= 3; k++ {
					v := make([]float64, 3)
					copy(v, p)
					floats.AddScaled(v, i, L.Vec(0))
					floats.AddScaled(v, j, L.Vec(1))
					floats.AddScaled(v, k, L.Vec(2))
					best = math.Min(best, floats.Norm(v, 2))
				}
			}
		}
		got := floats.Norm(MinImage(p, L), 2)
		assert.InDelta(t, best, got, 1e-9, "displacement %v", p)
	}
}

func TestFractionalRoundTrip(t *testing.T) {
	L, err := FromParameters(8, 9, 11, 80, 95, 105)
	require.NoError(t, err)
	p := []float64{1.5, -2.25, 7}
	f := L.ToFractional(nil, p)
	back := L.ToCartesian(nil, f)
	assert.InDeltaSlice(t, p, back, 1e-10)

	w := L.Wrap(nil, []float64{-1, 30, 4})
	fw := L.ToFractional(nil, w)
	for _, v := range fw {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestParameters(t *testing.T) {
	L, err := FromParameters(8, 9, 11, 80, 95, 105)
	require.NoError(t, err)
	a, b, c, alpha, beta, gamma := L.Parameters()
	assert.InDelta(t, 8, a, 1e-9)
	assert.InDelta(t, 9, b, 1e-9)
	assert.InDelta(t, 11, c, 1e-9)
	assert.InDelta(t, 80, alpha, 1e-9)
	assert.InDelta(t, 95, beta, 1e-9)
	assert.InDelta(t, 105, gamma, 1e-9)
}

func TestGeometry(t *testing.T) {
	L, err := Orthorhombic(3, 4, 12)
	require.NoError(t, err)
	assert.InDelta(t, 144, L.Volume(), 1e-12)
	assert.InDelta(t, 13, L.Diagonal(), 1e-12)
	h := L.Heights()
	assert.InDeltaSlice(t, []float64{3, 4, 12}, h[:], 1e-12)
	assert.True(t, L.Orthorhombic())
	assert.InDeltaSlice(t, []float64{1.5, 2, 6}, L.Point([3]float64{0.5, 0.5, 0.5}), 1e-12)
}

func TestParseLattice(t *testing.T) {
	L, err := FromParameters(8, 9, 11, 80, 95, 105)
	require.NoError(t, err)
	L2, err := ParseLattice(L.String())
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.InDeltaSlice(t, L.Vec(i), L2.Vec(i), 1e-12)
	}
	_, err = ParseLattice("1 2 3")
	assert.Error(t, err)
}

func TestExactDistance(t *testing.T) {
	for side := 7.0; side <= 30; side++ {
		cells := []*Lattice{cubic(t, side)}
		L, err := FromParameters(side, side+1, side+2, 80, 95, 105)
		require.NoError(t, err)
		cells = append(cells, L)
		for _, L := range cells {
			for i := 1; float64(i)*0.1 < side/3; i++ {
				tol := float64(i) * 0.1
				for axis := 0; axis < 3; axis++ {
					b := []float64{0, 0, 0}
					b[axis] = tol
					//no wrapping needed, so the distance can't change at all
					assert.Equal(t, tol, Distance([]float64{0, 0, 0}, b, L), "side %g axis %d", side, axis)
					assert.Equal(t, b, MinImage(b, L), "side %g axis %d", side, axis)
				}
			}
		}
	}
}
