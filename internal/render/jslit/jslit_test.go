package jslit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeScalars(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "null"},
		{true, "true"},
		{42, "42"},
		{1.5, "1.5"},
		{json.Number("7"), "7"},
		{"it's", `'it\'s'`},
		{"a\nb", `'a\nb'`},
		{Raw("mdx()"), "mdx()"},
		{[]any{}, "[]"},
		{map[string]any{}, "{}"},
	}
	for _, tt := range tests {
		got, err := Encode(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestEncodeNestedSortsKeys(t *testing.T) {
	got, err := Encode(map[string]any{
		"title": "Docs",
		"social": map[string]string{
			"github": "https://github.com/example/docs",
		},
		"custom-key": []string{"a", "b"},
	})
	require.NoError(t, err)
	want := `{
  'custom-key': [
    'a',
    'b',
  ],
  social: {
    github: 'https://github.com/example/docs',
  },
  title: 'Docs',
}`
	assert.Equal(t, want, got)
}

func TestEncoderPrefix(t *testing.T) {
	got, err := Encoder{Prefix: "    ", Indent: "  "}.Encode([]any{1})
	require.NoError(t, err)
	assert.Equal(t, "[\n      1,\n    ]", got)
}

func TestEncodeObjectKeepsOrder(t *testing.T) {
	got, err := Encoder{Indent: "  "}.EncodeObject(Object{
		{Key: "title", Value: "Docs"},
		{Key: "base", Value: "/docs"},
	})
	require.NoError(t, err)
	assert.Equal(t, "{\n  title: 'Docs',\n  base: '/docs',\n}", got)
}

func TestEncodeRejectsUnsupported(t *testing.T) {
	_, err := Encode(map[int]string{1: "x"})
	require.Error(t, err)

	_, err = Encode(struct{}{})
	require.Error(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "customCss", Key("customCss"))
	assert.Equal(t, "$ref", Key("$ref"))
	assert.Equal(t, "'@astrojs/mdx'", Key("@astrojs/mdx"))
	assert.Equal(t, "'2fa'", Key("2fa"))
}
