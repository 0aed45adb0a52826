package decode_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toheart/dumpy"
	"github.com/toheart/dumpy/decode"
)

func TestJSONKeepsDocumentOrder(t *testing.T) {
	v, err := decode.JSON([]byte(`{"b": 1, "a": [true, null, "x"], "c": {"n": 2.5}}`))
	require.NoError(t, err)

	want := dumpy.Map(
		"b", int64(1),
		"a", dumpy.List(true, nil, "x"),
		"c", dumpy.Map("n", 2.5),
	)
	assert.Equal(t, want, v)
}

func TestJSONNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"1.5", 1.5},
		{"1e3", 1000.0},
		{"99999999999999999999", 1e20},
	}
	for _, tt := range tests {
		v, err := decode.JSON([]byte(tt.input))
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, v, tt.input)
	}
}

func TestJSONInvalid(t *testing.T) {
	for _, input := range []string{"", "{", `{"a":}`, "[1,]"} {
		_, err := decode.JSON([]byte(input))
		assert.True(t, errors.Is(err, decode.ErrInvalidJSON), "input %q", input)
	}
}

func TestYAML(t *testing.T) {
	doc := `
name: dumpy
count: 3
ratio: 0.25
enabled: yes
tags: [a, b]
nothing: ~
quoted: "12"
`
	v, err := decode.YAML([]byte(doc))
	require.NoError(t, err)

	want := dumpy.Map(
		"name", "dumpy",
		"count", int64(3),
		"ratio", 0.25,
		"enabled", "yes",
		"tags", dumpy.List("a", "b"),
		"nothing", nil,
		"quoted", "12",
	)
	assert.Equal(t, want, v)
}

func TestYAMLAliases(t *testing.T) {
	doc := `
base: &b
  k: 1
copy: *b
`
	v, err := decode.YAML([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, dumpy.Map("base", dumpy.Map("k", int64(1)), "copy", dumpy.Map("k", int64(1))), v)
}

func TestYAMLNonStringKeys(t *testing.T) {
	v, err := decode.YAML([]byte("1: one\ntrue: yes\n"))
	require.NoError(t, err)
	assert.Equal(t, dumpy.Map(int64(1), "one", true, "yes"), v)
}

func TestYAMLEmptyAndInvalid(t *testing.T) {
	v, err := decode.YAML(nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = decode.YAML([]byte("a: [1, 2"))
	assert.True(t, errors.Is(err, decode.ErrInvalidYAML))
}

func TestDetect(t *testing.T) {
	assert.Equal(t, decode.FormatJSON, decode.Detect("x/data.JSON"))
	assert.Equal(t, decode.FormatYAML, decode.Detect("conf.yml"))
	assert.Equal(t, decode.FormatYAML, decode.Detect("conf.yaml"))
	assert.Equal(t, decode.FormatAuto, decode.Detect("-"))
	assert.Equal(t, decode.FormatAuto, decode.Detect("notes.txt"))
}

func TestParseFormat(t *testing.T) {
	f, err := decode.ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, decode.FormatYAML, f)

	f, err = decode.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, decode.FormatAuto, f)

	_, err = decode.ParseFormat("toml")
	assert.True(t, errors.Is(err, decode.ErrUnknownFormat))
}

func TestAuto(t *testing.T) {
	v, err := decode.Auto([]byte(`  [1, 2]`))
	require.NoError(t, err)
	assert.Equal(t, dumpy.List(int64(1), int64(2)), v)

	v, err = decode.Auto([]byte("- 1\n- two\n"))
	require.NoError(t, err)
	assert.Equal(t, dumpy.List(int64(1), "two"), v)

	v, err = decode.Decode(decode.FormatAuto, []byte("plain"))
	require.NoError(t, err)
	assert.Equal(t, "plain", v)

	_, err = decode.Decode("xml", nil)
	assert.True(t, errors.Is(err, decode.ErrUnknownFormat))
}

func TestDecodedValuesRender(t *testing.T) {
	v, err := decode.JSON([]byte(`{"foo": "bar", "list": [1]}`))
	require.NoError(t, err)
	assert.Equal(t, "[\n    \"foo\" => \"bar\",\n    \"list\" => [\n        1,\n    ],\n]\n", dumpy.Sdump(v))
}
