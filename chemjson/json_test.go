package chemjson

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	chem "github.com/rmera/gofill"
	"github.com/rmera/gofill/fill"
	"github.com/rmera/gofill/molecules"
	"github.com/rmera/gofill/pbc"
	v3 "github.com/rmera/gofill/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillWater(t *testing.T) *fill.Result {
	t.Helper()
	L, err := pbc.FromParameters(12, 13, 14, 85, 95, 100)
	require.NoError(t, err)
	c, err := v3.NewMatrix([]float64{1, 1, 1})
	require.NoError(t, err)
	host, err := chem.NewMolecule([]*v3.Matrix{c}, chem.NewTopology([]*chem.Atom{{Symbol: "Zn", Name: "Zn"}}, 0, 1), L)
	require.NoError(t, err)
	ads, err := molecules.Build("H2O")
	require.NoError(t, err)
	opts := fill.DefaultOptions()
	opts.Seed(21)
	F, err := fill.New(host, ads, 1.8, opts)
	require.NoError(t, err)
	res, err := F.Fill(3, 0, false)
	require.NoError(t, err)
	return res
}

func TestStreamRoundTrip(t *testing.T) {
	res := fillWater(t)
	var buf bytes.Buffer
	require.Nil(t, SendResult(res, "run-1", 0, &buf))
	require.Nil(t, SendResult(res, "run-1", 1, &buf))
	assert.Equal(t, 2*(1+2*res.Mol.Len()), strings.Count(buf.String(), "\n"))

	r := bufio.NewReader(&buf)
	for i := 0; i < 2; i++ {
		info, mol, err := DecodeResult(r)
		require.NoError(t, err)
		assert.Equal(t, i, info.Structure)
		assert.Equal(t, "run-1", info.Run)
		assert.Equal(t, 3, info.Placed)
		assert.Equal(t, res.Attempts, info.Attempts)
		assert.Equal(t, "H2O", info.Formula)
		require.Equal(t, res.Mol.Len(), mol.Len())
		require.NotNil(t, mol.Cell)
		for j := 0; j < 3; j++ {
			assert.InDeltaSlice(t, res.Mol.Cell.Vec(j), mol.Cell.Vec(j), 1e-12)
		}
		for j := 0; j < mol.Len(); j++ {
			assert.Equal(t, res.Mol.Atom(j).Symbol, mol.Atom(j).Symbol)
			assert.InDeltaSlice(t, res.Mol.Coord(j, 0), mol.Coord(j, 0), 1e-12)
		}
	}
	_, _, err := DecodeResult(r)
	assert.Equal(t, io.EOF, err)
}

func TestDecodeErrors(t *testing.T) {
	_, _, err := DecodeResult(bufio.NewReader(strings.NewReader("{not json}\n")))
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	assert.True(t, jerr.InDecoding)
	assert.Equal(t, []string{"DecodeResult"}, jerr.Decorate(""))

	//the header promises more atoms than there are
	_, _, err = DecodeResult(bufio.NewReader(strings.NewReader(`{"Atoms":2}` + "\n" + `{"Symbol":"O"}` + "\n")))
	assert.Error(t, err)

	_, err2 := DecodeCoords(bufio.NewReader(strings.NewReader(`{"Coords":[1,2]}`+"\n")), 1)
	assert.NotNil(t, err2)
}

func TestErrorMarshal(t *testing.T) {
	e := NewError("postprocess", "SendResult", io.ErrShortWrite)
	var back Error
	require.NoError(t, json.Unmarshal(e.Marshal(), &back))
	assert.True(t, back.IsError)
	assert.True(t, back.InPostProcess)
	assert.Equal(t, "SendResult", back.Function)
	assert.Equal(t, io.ErrShortWrite.Error(), back.Message)
}
