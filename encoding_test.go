package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeScript_UTF8(t *testing.T) {
	got, err := decodeScript([]byte("SELECT 'привет'"))
	require.NoError(t, err)
	assert.Equal(t, "SELECT 'привет'", got)
}

func TestDecodeScript_UTF8BOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("CREATE TABLE [T] ([A] INT)")...)
	got, err := decodeScript(raw)
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE [T] ([A] INT)", got)
}

func TestDecodeScript_Windows1251(t *testing.T) {
	// "Привет" in Windows-1251; not valid UTF-8.
	raw := []byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2}
	got, err := decodeScript(raw)
	require.NoError(t, err)
	assert.Equal(t, "Привет", got)
}

func TestDecodeScript_Undecodable(t *testing.T) {
	// 0xFF breaks UTF-8 and 0x98 is the one byte Windows-1251 leaves undefined.
	_, err := decodeScript([]byte{0xFF, 0x98})
	assert.True(t, errors.Is(err, errEncodingDetection), "err = %v", err)
}

func TestReadScriptFile_Missing(t *testing.T) {
	_, err := readScriptFile(filepath.Join(t.TempDir(), "nope.sql"))
	assert.Error(t, err)
}

func TestReadWriteScriptFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.sql")
	require.NoError(t, os.WriteFile(in, []byte("INSERT INTO [T] ([A]) VALUES (1)"), 0o644))

	script, err := readScriptFile(in)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO [T] ([A]) VALUES (1)", script)

	out := filepath.Join(dir, "out.sql")
	require.NoError(t, writeScriptFile(out, "INSERT INTO t (a) VALUES (1);\n"))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO t (a) VALUES (1);\n", string(data))
}
