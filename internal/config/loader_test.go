package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadYAML(t *testing.T) {
	p := writeTempFile(t, t.TempDir(), "run.yaml", "adsorbate: CO2\nadsorbent: zif8.xyz\nn: 5\ntol: 2.5\nchecker: grid\nlog_level: debug\n")
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "CO2", cfg.Adsorbate)
	assert.Equal(t, "zif8.xyz", cfg.Adsorbent)
	assert.Equal(t, 5, cfg.N)
	assert.Equal(t, 2.5, cfg.Tolerance)
	assert.Equal(t, CheckerGrid, cfg.Checker)
	assert.Equal(t, "debug", cfg.LogLevel)
	//defaults survive
	assert.Equal(t, 500, cfg.MaxIter)
	assert.Equal(t, 1, cfg.Structures)
	assert.Equal(t, OrienterTwoNormals, cfg.Orienter)
}

func TestLoadJSON(t *testing.T) {
	p := writeTempFile(t, t.TempDir(), "run.json", `{"adsorbent":"mof.pdb","structures":3,"maxiter":200,"seed":42,"orienter":"quaternion"}`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "H2O", cfg.Adsorbate)
	assert.Equal(t, 3, cfg.Structures)
	assert.Equal(t, 200, cfg.MaxIter)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, OrienterQuaternion, cfg.Orienter)
}

func TestLoadTOML(t *testing.T) {
	p := writeTempFile(t, t.TempDir(), "run.toml", "adsorbate=\"CH4\"\nadsorbent=\"mof.xyz.gz\"\nretries=2\nmetrics=\"fill.prom\"\nverbose=true\n")
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "CH4", cfg.Adsorbate)
	assert.Equal(t, 2, cfg.Retries)
	assert.Equal(t, "fill.prom", cfg.Metrics)
	assert.True(t, cfg.Verbose)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
	d := t.TempDir()
	_, err = Load(writeTempFile(t, d, "cfg.txt", "not supported"))
	assert.Error(t, err)
	_, err = Load(writeTempFile(t, d, "bad.yaml", "adsorbent: [unclosed\n"))
	assert.Error(t, err)
	_, err = Load(writeTempFile(t, d, "neg.toml", "adsorbent=\"a.xyz\"\ntol=-1.0\n"))
	assert.ErrorContains(t, err, "negative")
	_, err = Load(filepath.Join(d, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	//Decode leaves the checks to the caller
	cfg, err := Decode(writeTempFile(t, d, "partial.yaml", "n: 2\ncurve: sat.png\n"))
	require.NoError(t, err)
	assert.Equal(t, "sat.png", cfg.Curve)
	assert.Error(t, cfg.Check())
}

func TestCheck(t *testing.T) {
	valid := Default()
	valid.Adsorbent = "mof.xyz"
	require.NoError(t, valid.Check())

	bad := []func(c *Config){
		func(c *Config) { c.Adsorbent = "" },
		func(c *Config) { c.Adsorbate = "" },
		func(c *Config) { c.Tolerance = -0.1 },
		func(c *Config) { c.Structures = 0 },
		func(c *Config) { c.MaxIter = 0 },
		func(c *Config) { c.Tolerance = 0 },
		func(c *Config) { c.Retries = -1 },
		func(c *Config) { c.Reorient = 0 },
		func(c *Config) { c.Output = "" },
		func(c *Config) { c.Orienter = "euler" },
		func(c *Config) { c.Checker = "octree" },
	}
	for i, f := range bad {
		c := valid
		f(&c)
		assert.Error(t, c.Check(), "case %d", i)
	}
	c := valid
	c.Tolerance = 0
	c.N = 3
	assert.NoError(t, c.Check())
}
