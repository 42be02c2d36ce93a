package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvertCmd_ToEpoch(t *testing.T) {
	out, err := execute(t, "convert", "2024-01-01T00:00:00+00:00", "--to-format", "U", "--cast", "int")
	require.NoError(t, err)
	assert.Equal(t, "1704067200\n", out)
}

func TestConvertCmd_FromEpochToYAML(t *testing.T) {
	out, err := execute(t, "convert", "1704067200",
		"--from-format", "U",
		"--timezone", "Europe/Prague",
		"--cast", "array",
		"--output", "yaml",
	)
	require.NoError(t, err)
	assert.Equal(t, "date: \"2024-01-01T01:00:00+01:00\"\ntimezone: Europe/Prague\n", out)
}

func TestConvertCmd_JSONInput(t *testing.T) {
	out, err := execute(t, "convert", `{"date":"2024-01-01 01:00:00","timezone":"Europe/Prague"}`,
		"--input", "json",
		"--from-format", "2006-01-02 15:04:05",
	)
	require.NoError(t, err)
	assert.Equal(t, "\"2024-01-01T01:00:00+01:00\"\n", out)

	out, err = execute(t, "convert", "1704067200.500000",
		"--input", "json",
		"--from-format", "U.u",
		"--to-format", "U.u",
		"--cast", "float",
	)
	require.NoError(t, err)
	assert.Equal(t, "1704067200.5\n", out)
}

func TestConvertCmd_YAMLInput(t *testing.T) {
	out, err := execute(t, "convert", "date: \"2024-01-01T00:00:00+00:00\"\ntimezone: UTC\n",
		"--input", "yaml",
		"--to-format", "U",
		"--cast", "int",
	)
	require.NoError(t, err)
	assert.Equal(t, "1704067200\n", out)
}

func TestConvertCmd_MalformedInput(t *testing.T) {
	_, err := execute(t, "convert", `{"date":`, "--input", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode json")
}

func TestConvertCmd_InvalidValue(t *testing.T) {
	_, err := execute(t, "convert", "abcdef")
	assert.Error(t, err)
}

func TestConvertCmd_UnsupportedOutput(t *testing.T) {
	_, err := execute(t, "convert", "2024-01-01T00:00:00+00:00", "--output", "xml")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "mapkit version 1.0.0\n", out)
}
