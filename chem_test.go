package chem

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/gofill/pbc"
	v3 "github.com/rmera/gofill/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func water(t *testing.T) *Molecule {
	t.Helper()
	mol, err := XYZFileRead("testdata/two_frames.xyz")
	require.NoError(t, err)
	return mol
}

func TestXYZRead(t *testing.T) {
	mol := water(t)
	assert.Equal(t, 3, mol.Len())
	assert.Equal(t, 2, mol.LenFrames())
	assert.False(t, mol.Periodic())
	assert.Equal(t, "O", mol.Atom(0).Symbol)
	assert.InDelta(t, 16.00, mol.Atom(0).Mass, 0.01)
	assert.InDeltaSlice(t, []float64{0, 0.763239, -0.377047}, mol.Coord(1, 1), 1e-9)

	zn, err := XYZFileRead("testdata/zn_cube.xyz")
	require.NoError(t, err)
	require.True(t, zn.Periodic())
	assert.InDelta(t, 1000, zn.Cell.Volume(), 1e-9)
	assert.Equal(t, "Zn", zn.Atom(0).Symbol)
}

func TestXYZReadErrors(t *testing.T) {
	bad := []string{
		"",
		"two\ncomment\nO 0 0 0\n",
		"2\ncomment\nO 0 0 0\n",
		"1\ncomment\nO 0 0\n",
		"1\ncomment\nO 0 0 x\n",
		"1\nLattice=\"1 0 0 0 1 0 2 2 0\"\nO 0 0 0\n",
		"1\nfirst\nO 0 0 0\n2\nsecond\nO 0 0 0\nH 1 0 0\n",
	}
	for _, b := range bad {
		_, err := XYZRead(strings.NewReader(b))
		assert.Error(t, err, "input %q", b)
	}
	_, err := XYZFileRead("testdata/does_not_exist.xyz")
	assert.Error(t, err)
}

func TestParseComment(t *testing.T) {
	kv := ParseComment(`Lattice="1 0 0 0 1 0 0 0 1" Properties=species:S:1:pos:R:3 run=abc placed=4`)
	assert.Equal(t, "1 0 0 0 1 0 0 0 1", kv["lattice"])
	assert.Equal(t, "species:S:1:pos:R:3", kv["properties"])
	assert.Equal(t, "4", kv["placed"])

	//explicitly non periodic
	L, err := commentLattice(`Lattice="10 0 0 0 10 0 0 0 10" pbc="F F F"`)
	assert.NoError(t, err)
	assert.Nil(t, L)
}

func TestXYZRoundTrip(t *testing.T) {
	zn, err := XYZFileRead("testdata/zn_cube.xyz")
	require.NoError(t, err)
	w := water(t)
	dir := t.TempDir()
	for _, name := range []string{"out.xyz", "out.xyz.gz", "out.extxyz.zst"} {
		fname := filepath.Join(dir, name)
		require.NoError(t, FileWrite(fname, []*Molecule{zn, w}, []string{"run=1 placed=0"}))
		mols, err := XYZFileStructures(fname)
		require.NoError(t, err, name)
		require.Len(t, mols, 2)
		assert.Equal(t, zn.Len(), mols[0].Len())
		assert.Equal(t, w.Len(), mols[1].Len())
		require.True(t, mols[0].Periodic())
		assert.False(t, mols[1].Periodic())
		for i := 0; i < 3; i++ {
			assert.InDeltaSlice(t, zn.Cell.Vec(i), mols[0].Cell.Vec(i), 1e-12)
		}
		for i := 0; i < zn.Len(); i++ {
			assert.InDeltaSlice(t, zn.Coord(i, 0), mols[0].Coord(i, 0), 1e-8)
		}
	}
}

func TestXYZWriteComment(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, XYZWrite(&buf, water(t), 0, "two\nlines"))
	assert.Error(t, XYZWrite(&buf, water(t), 5, ""))
	buf.Reset()
	require.NoError(t, XYZWrite(&buf, water(t), 1, "hello"))
	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "3", strings.TrimSpace(lines[0]))
	assert.Equal(t, "hello", lines[1])
}

func TestPDB(t *testing.T) {
	mol, err := FileRead("testdata/triclinic.pdb")
	require.NoError(t, err)
	require.Equal(t, 3, mol.Len())
	assert.Equal(t, "Cu", mol.Atom(0).Symbol)
	assert.Equal(t, "C", mol.Atom(2).Symbol)
	assert.Equal(t, "LIG", mol.Atom(1).Molname)
	require.True(t, mol.Periodic())
	a, b, c, alpha, beta, gamma := mol.Cell.Parameters()
	assert.InDeltaSlice(t, []float64{8, 9, 11, 80, 95, 105}, []float64{a, b, c, alpha, beta, gamma}, 1e-6)

	fname := filepath.Join(t.TempDir(), "copy.pdb.gz")
	require.NoError(t, FileWrite(fname, []*Molecule{mol}, []string{"copy"}))
	mol2, err := FileRead(fname)
	require.NoError(t, err)
	assert.Equal(t, Formula(mol), Formula(mol2))
	assert.InDeltaSlice(t, mol.Coord(1, 0), mol2.Coord(1, 0), 1e-3)
}

//A cell that is not in the PDB orientation gets rotated, with its
//contents, when written. Distances must survive.
func TestPDBReorientation(t *testing.T) {
	R := RotatorAroundZ(0.7)
	L0, err := pbc.FromParameters(10, 12, 14, 90, 90, 60)
	require.NoError(t, err)
	m := v3.Dense2Matrix(L0.Matrix())
	m.Mul(m, R)
	L, err := pbc.FromMatrix(m)
	require.NoError(t, err)
	coords, err := v3.NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	top := NewTopology([]*Atom{{Symbol: "O", Name: "O1"}, {Symbol: "O", Name: "O2"}}, 0, 1)
	mol, err := NewMolecule([]*v3.Matrix{coords}, top, L)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, PDBWrite(&buf, mol, 0, ""))
	mol2, err := PDBRead(&buf)
	require.NoError(t, err)
	d1 := pbc.Distance(mol.Coord(0, 0), mol.Coord(1, 0), mol.Cell)
	d2 := pbc.Distance(mol2.Coord(0, 0), mol2.Coord(1, 0), mol2.Cell)
	assert.InDelta(t, d1, d2, 2e-3)
	assert.InDelta(t, 0, mol2.Cell.Vec(0)[1], 1e-9)
}

func TestFileReadUnknown(t *testing.T) {
	_, err := FileRead("structure.cif")
	assert.Error(t, err)
	var cerr *CError
	assert.True(t, errors.As(err, &cerr))
	assert.Error(t, FileWrite(filepath.Join(t.TempDir(), "a.mol2"), nil, nil))
}

func TestFormula(t *testing.T) {
	mk := func(symbols ...string) *Topology {
		ats := make([]*Atom, len(symbols))
		for i, s := range symbols {
			ats[i] = &Atom{Symbol: s}
		}
		return NewTopology(ats, 0, 1)
	}
	assert.Equal(t, "H2O", Formula(mk("O", "H", "H")))
	assert.Equal(t, "CH4O", Formula(mk("O", "H", "C", "H", "H", "H")))
	assert.Equal(t, "CO2", Formula(mk("O", "C", "O")))
	assert.Equal(t, "ClH", Formula(mk("H", "Cl")))
	assert.Equal(t, "Ar", Formula(mk("Ar")))
	assert.Equal(t, "", Formula(mk()))
}

func TestRotatorUV(t *testing.T) {
	cases := [][2][]float64{
		{{1, 0, 0}, {0, 1, 0}},
		{{0.3, -2, 5}, {1, 1, 1}},
		{{1, 2, 3}, {2, 4, 6}},    //parallel
		{{1, 2, 3}, {-1, -2, -3}}, //antiparallel
		{{1, 0, 0}, {-1, 0, 0}},
	}
	for _, c := range cases {
		R, err := RotatorUV(c[0], c[1])
		require.NoError(t, err)
		assert.InDelta(t, 1, R.Det(), 1e-10)
		//orthonormal
		RRt := v3.Zeros(3)
		RRt.Dense.Mul(R, R.T())
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				want := 0.0
				if i == j {
					want = 1
				}
				assert.InDelta(t, want, RRt.At(i, j), 1e-10)
			}
		}
		u, err := v3.NewMatrix(c[0])
		require.NoError(t, err)
		u.Mul(u, R)
		got := u.Vec(nil, 0)
		want := make([]float64, 3)
		floats.ScaleTo(want, floats.Norm(c[0], 2)/floats.Norm(c[1], 2), c[1])
		assert.InDeltaSlice(t, want, got, 1e-10)
	}
	_, err := RotatorUV([]float64{0, 0, 0}, []float64{1, 0, 0})
	assert.Error(t, err)
}

func TestRigidMove(t *testing.T) {
	mol := water(t)
	src := mol.Coords[0]
	orig := v3.Zeros(src.NVecs())
	orig.Copy(src.Dense)
	R, err := RotatorUV([]float64{1, 2, 0}, []float64{-3, 0.5, 1})
	require.NoError(t, err)
	c := Centroid(src)
	target := []float64{5, -4, 2}
	dst := v3.Zeros(src.NVecs())
	RigidMove(dst, src, c, R, target)

	assert.InDeltaSlice(t, target, Centroid(dst), 1e-10)
	//internal distances are kept
	for i := 0; i < src.NVecs(); i++ {
		for j := i + 1; j < src.NVecs(); j++ {
			d0 := floats.Distance(src.Vec(nil, i), src.Vec(nil, j), 2)
			d1 := floats.Distance(dst.Vec(nil, i), dst.Vec(nil, j), 2)
			assert.InDelta(t, d0, d1, 1e-10)
		}
	}
	//the source is untouched
	assert.True(t, sameCoords(orig, src))

	//translation only, in place
	RigidMove(src, src, c, nil, []float64{0, 0, 0})
	assert.InDeltaSlice(t, []float64{0, 0, 0}, Centroid(src), 1e-12)
}

func sameCoords(a, b *v3.Matrix) bool {
	for i := 0; i < a.NVecs(); i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(a.At(i, j)-b.At(i, j)) > 0 {
				return false
			}
		}
	}
	return true
}

func TestCenterOfMass(t *testing.T) {
	coords, err := v3.NewMatrix([]float64{0, 0, 0, 4, 0, 0})
	require.NoError(t, err)
	com, err := CenterOfMass(coords, []float64{3, 1})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0, 0}, com, 1e-12)
	_, err = CenterOfMass(coords, []float64{1})
	assert.Error(t, err)
	assert.InDelta(t, math.Pi/2, Angle([]float64{1, 0, 0}, []float64{0, 3, 0}), 1e-12)
}

func TestMoleculeAppendCopy(t *testing.T) {
	zn, err := XYZFileRead("testdata/zn_cube.xyz")
	require.NoError(t, err)
	w := water(t)
	cp := zn.Copy()
	require.NoError(t, cp.Append(w, w.Coords[0]))
	assert.Equal(t, 7, cp.Len())
	assert.Equal(t, 4, zn.Len(), "Copy must be deep")
	assert.Nil(t, cp.Corrupted())
	assert.InDeltaSlice(t, w.Coord(2, 0), cp.Coord(6, 0), 1e-12)
	cp.Atom(0).Symbol = "Cu"
	assert.Equal(t, "Zn", zn.Atom(0).Symbol)

	//water has 2 frames
	assert.Error(t, w.Append(zn, zn.Coords[0]))
	bad, _ := v3.NewMatrix([]float64{1, 2, 3})
	assert.Error(t, cp.Append(w, bad))

	_, err = NewMolecule([]*v3.Matrix{bad}, zn.Topology, nil)
	assert.Error(t, err)
}

func TestErrDecorate(t *testing.T) {
	_, err := NewMolecule(nil, nil, nil)
	err = errDecorate(err, "Caller")
	var cerr *CError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, []string{"NewMolecule", "Caller"}, cerr.Decorate(""))
}
