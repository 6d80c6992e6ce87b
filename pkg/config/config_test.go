package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilezen/hilbert/pkg/hilbert"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.CurveOptions(), 1)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hilbert.yaml")
	doc := `
curve:
  dims: 3
  bits: 21
  strict: true
concurrency: 4
aws:
  region: us-east-2
output:
  compress: true
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, CurveConfig{Dims: 3, Bits: 21, Strict: true}, cfg.Curve)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "us-east-2", cfg.AWS.Region)
	// untouched keys keep their defaults
	assert.Equal(t, 3, cfg.AWS.MaxRetries)
	assert.Equal(t, "logfmt", cfg.Log.Format)
	assert.True(t, cfg.Output.Compress)
	assert.Len(t, cfg.CurveOptions(), 2)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	cfg := Default()
	err := Decode(strings.NewReader("curve:\n  dimz: 3\n"), &cfg)
	assert.Error(t, err)
}

func TestDecodeEmptyDocument(t *testing.T) {
	cfg := Default()
	require.NoError(t, Decode(strings.NewReader(""), &cfg))
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Curve = CurveConfig{Dims: 5, Bits: 13}
	err := cfg.Validate()
	assert.ErrorIs(t, err, hilbert.ErrInvalidParameter)

	cfg = Default()
	cfg.Log.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Concurrency = -1
	assert.Error(t, cfg.Validate())
}
