package histo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoIO(t *testing.T) {
	rawdata := []float64{1, 6, 3, 2, 4, 5, 7, 6, 3.5, 3, 5, 1, 1, 0, 0, 5, 8, 1, 2, 3, 44, 3, 7, 3, 1, 3, 5, 32, 1}
	D := NewData([]float64{0, 1, 2, 3, 4, 8}, rawdata, 3)
	//44, 32 and 8 are out
	assert.Equal(t, 26, D.Total())
	assert.Equal(t, []float64{2, 6, 2, 7, 9}, D.View())
	j, err := json.Marshal(D)
	require.NoError(t, err)
	D2 := new(Data)
	require.NoError(t, json.Unmarshal(j, D2))
	assert.Equal(t, D.View(), D2.View())
	assert.Equal(t, 3, D2.ID())
	assert.Contains(t, D.String(), "TotalData: 26")

	assert.Error(t, json.Unmarshal([]byte(`{"dividers":[0,1],"histo":[1,2]}`), D2))
}

func TestAddData(t *testing.T) {
	D := NewData([]float64{0, 10, 20}, nil)
	D.AddData(0, 9.99, 10, 19, 20, -1)
	assert.Equal(t, []float64{2, 2}, D.View())
	assert.Equal(t, 4, D.Total())
	D.Normalize()
	assert.InDelta(t, 1, D.Sum(), 1e-12)
	D.AddData(5)
	assert.True(t, D.Normalized())
	assert.InDeltaSlice(t, []float64{0.6, 0.4}, D.View(), 1e-12)
	D.UnNormalize()
	assert.InDeltaSlice(t, []float64{3, 2}, D.View(), 1e-12)
}

func TestInts(t *testing.T) {
	D := Ints([]int{1, 1, 2, 50, 100}, 4)
	assert.Equal(t, 5, D.Total())
	assert.Equal(t, []float64{3, 0, 1, 1}, D.View())
	S := new(Data)
	S.Add(D, Ints([]int{100}, 4))
	assert.Equal(t, []float64{3, 0, 1, 2}, S.View())
	assert.Panics(t, func() { S.Add(D, Ints([]int{1}, 2)) })
	//values on interior edges go up a bin, the top edge stays in the last one
	edges := Ints([]int{0, 25, 50, 75, 100}, 4, 100)
	assert.Equal(t, []float64{0, 25, 50, 75, 100}, edges.Dividers())
	assert.Equal(t, []float64{1, 1, 1, 2}, edges.View())
	empty := Ints(nil, 0, 500)
	assert.Equal(t, 0, empty.Total())
	assert.Len(t, empty.View(), 1)
}
