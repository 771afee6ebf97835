package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLines_Latin1YDuplicados(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nombres.txt")
	// "Fábrica" en ISO-8859-1: á = 0xE1
	raw := []byte("F\xe1brica Andina\n\nfábrica andina\nMurata\n")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	lines, err := readLines(path, true)
	require.NoError(t, err)
	assert.Equal(t, "Fábrica Andina", lines[0])
	assert.Contains(t, lines, "Murata")
}

func TestReport_ExactasYSugerencias(t *testing.T) {
	var buf bytes.Buffer
	report(&buf, []string{"Murata", "Texas Instrument", "zzz"}, []string{"murata", "Texas Instruments"}, 65)

	out := buf.String()
	assert.Contains(t, out, "Murata\t= murata")
	assert.Contains(t, out, "1) Texas Instruments")
	assert.Contains(t, out, "zzz\t(sin coincidencias)")
	assert.Contains(t, out, "1 exactas, 1 con sugerencias, 1 sin coincidencias")
}
