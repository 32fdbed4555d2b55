package solv

import (
	"math"
	"testing"

	chem "github.com/rmera/gofill"
	"github.com/rmera/gofill/fill"
	"github.com/rmera/gofill/pbc"
	v3 "github.com/rmera/gofill/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//filled returns a result with a Zn host atom at the origin of a 20 A cube and
//one argon "molecule" at each of the given points.
func filled(t *testing.T, points ...[]float64) *fill.Result {
	t.Helper()
	L, err := pbc.Orthorhombic(20, 20, 20)
	require.NoError(t, err)
	data := []float64{0, 0, 0}
	ats := []*chem.Atom{{Symbol: "Zn", Name: "Zn", MolID: 1}}
	for i, p := range points {
		data = append(data, p...)
		ats = append(ats, &chem.Atom{Symbol: "Ar", Name: "Ar", MolID: i + 2, Mass: 39.948})
	}
	c, err := v3.NewMatrix(data)
	require.NoError(t, err)
	mol, err := chem.NewMolecule([]*v3.Matrix{c}, chem.NewTopology(ats, 0, 1), L)
	require.NoError(t, err)
	return &fill.Result{Mol: mol, HostAtoms: 1, AdsorbateAtoms: 1, Placed: len(points), Attempts: make([]int, len(points)), Formula: "Ar"}
}

func unitStep() *Options {
	o := DefaultOptions()
	o.Step(1)
	o.End(10)
	return o
}

func TestDistRank(t *testing.T) {
	//the last one is 2 A away through the cell boundary, the one at (0,10,10) is out of range
	res := filled(t, []float64{0, 5, 0}, []float64{3, 0, 0}, []float64{18, 0, 0}, []float64{0, 10, 10})
	l := DistRank(res, []int{0}, unitStep())
	require.Equal(t, 3, l.Len())
	assert.InDeltaSlice(t, []float64{5, 3, 2}, l.Distances(), 1e-12)
	assert.Equal(t, 3.0, l.Distance(1), "unwrapped distances are exact")
	assert.Equal(t, []int{2, 3, 4}, l.MolIDs())
	assert.True(t, l.Less(2, 0))
}

func TestFrameUMolCRDF(t *testing.T) {
	res := filled(t, []float64{3, 0, 0}, []float64{0, 5, 0})
	cdf := FrameUMolCRDF(res, RefIndexes(res, "Zn"), unitStep())
	//the molecule at exactly 3 A counts in the 3 A shell
	assert.Equal(t, []float64{0, 0, 1, 1, 2, 2, 2, 2, 2, 2}, cdf)
}

func TestMolRDF(t *testing.T) {
	results := []*fill.Result{
		filled(t, []float64{3, 0, 0}, []float64{0, 5, 0}),
		filled(t, []float64{0, 0, 2.5}, []float64{0, 4.5, 0}),
	}
	o := unitStep()
	o.Cpus(2)
	rdf, n, err := MolRDF(results, []int{0}, o)
	require.NoError(t, err)
	require.Len(t, rdf, 10)
	assert.Equal(t, []float64{0, 0, 1, 1, 2, 2, 2, 2, 2, 2}, n)
	//nothing in the last shell, so the density is not normalized.
	vol := 4.0 / 3.0 * math.Pi * (27 - 8)
	assert.InDelta(t, 1/vol, rdf[2], 1e-12)
	assert.Zero(t, rdf[3])
	assert.Zero(t, rdf[9])

	_, _, err = MolRDF(nil, []int{0})
	assert.Error(t, err)
	_, _, err = MolRDF(results, nil)
	assert.Error(t, err)
	_, _, err = MolRDF(results, []int{1})
	assert.Error(t, err)
}

func TestMDFFromCDF(t *testing.T) {
	cdf := []float64{2, 2, 4}
	rdf, n := MDFFromCDF(cdf, 2, 1)
	assert.Equal(t, []float64{2, 2, 4}, cdf)
	assert.Equal(t, []float64{1, 1, 2}, n)
	vp := 4.0 / 3.0 * math.Pi
	last := 1 / (vp * 19)
	assert.InDelta(t, (1/vp)/last, rdf[0], 1e-9)
	assert.Zero(t, rdf[1])
	assert.InDelta(t, 1, rdf[2], 1e-12)
}

func TestCOM(t *testing.T) {
	L, err := pbc.Orthorhombic(20, 20, 20)
	require.NoError(t, err)
	c, err := v3.NewMatrix([]float64{0, 0, 0, 2, 0, 0, 4, 0, 0})
	require.NoError(t, err)
	ats := []*chem.Atom{
		{Symbol: "Zn", MolID: 1},
		{Symbol: "O", MolID: 2, Mass: 1},
		{Symbol: "O", MolID: 2, Mass: 1},
	}
	mol, err := chem.NewMolecule([]*v3.Matrix{c}, chem.NewTopology(ats, 0, 1), L)
	require.NoError(t, err)
	res := &fill.Result{Mol: mol, HostAtoms: 1, AdsorbateAtoms: 2, Placed: 1}
	o := DefaultOptions()
	assert.InDelta(t, 2, DistRank(res, []int{0}, o).Distance(0), 1e-12)
	o.COM(true)
	assert.InDelta(t, 3, DistRank(res, []int{0}, o).Distance(0), 1e-12)
	assert.Equal(t, []int{0}, RefIndexes(res))
	assert.Empty(t, RefIndexes(res, "Cu"))
}
