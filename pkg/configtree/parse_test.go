package configtree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYAML(t *testing.T) {
	v, err := ParseYAML([]byte(`
name: gateway
replicas: 3
ratio: 0.5
enabled: true
owner: null
tags:
  - alpha
  - 7
spec:
  image: golang
`))
	require.NoError(t, err)
	require.Equal(t, KindMapping, v.Kind)

	keys := make([]string, 0, len(v.Entries))
	for _, e := range v.Entries {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"name", "replicas", "ratio", "enabled", "owner", "tags", "spec"}, keys,
		"mapping must keep document key order")

	name, _ := v.Get("name")
	assert.True(t, name.Equal(Str("gateway")))
	replicas, _ := v.Get("replicas")
	assert.True(t, replicas.Equal(Num(3)))
	ratio, _ := v.Get("ratio")
	assert.True(t, ratio.Equal(Num(0.5)))
	enabled, _ := v.Get("enabled")
	assert.True(t, enabled.Equal(Bool(true)))
	owner, _ := v.Get("owner")
	assert.True(t, owner.Equal(Null()))
	tags, _ := v.Get("tags")
	assert.True(t, tags.Equal(Seq(Str("alpha"), Num(7))))
}

func TestParseYAMLQuotedScalarsStayStrings(t *testing.T) {
	v, err := ParseYAML([]byte(`
version: "3"
flag: "true"
`))
	require.NoError(t, err)

	version, _ := v.Get("version")
	assert.True(t, version.Equal(Str("3")))
	flag, _ := v.Get("flag")
	assert.True(t, flag.Equal(Str("true")))
}

func TestParseYAMLDuplicateKeys(t *testing.T) {
	v, err := ParseYAML([]byte("a: 1\nb: 2\na: 3\n"))
	require.NoError(t, err)

	require.Len(t, v.Entries, 2)
	assert.Equal(t, "a", v.Entries[0].Key)
	assert.True(t, v.Entries[0].Value.Equal(Num(3)), "duplicate key keeps the last value")
	assert.Equal(t, "b", v.Entries[1].Key)
}

func TestParseYAMLAnchors(t *testing.T) {
	v, err := ParseYAML([]byte(`
base: &base
  region: us-east
copy: *base
`))
	require.NoError(t, err)

	base, _ := v.Get("base")
	copied, _ := v.Get("copy")
	assert.True(t, base.Equal(copied))
}

func TestParseYAMLErrors(t *testing.T) {
	_, err := ParseYAML([]byte("a: [unclosed"))
	assert.ErrorIs(t, err, ErrInvalidYAML)

	_, err = ParseYAML([]byte(""))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = ParseYAML([]byte("# only a comment\n"))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestParseYAMLDocuments(t *testing.T) {
	docs, err := ParseYAMLDocuments([]byte(`
kind: Namespace
---
---
kind: Deployment
`))
	require.NoError(t, err)
	require.Len(t, docs, 2, "empty documents are skipped")

	kind, _ := docs[0].Get("kind")
	assert.True(t, kind.Equal(Str("Namespace")))
	kind, _ = docs[1].Get("kind")
	assert.True(t, kind.Equal(Str("Deployment")))

	_, err = ParseYAMLDocuments([]byte("---\n---\n"))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestParseJSON(t *testing.T) {
	v, err := ParseJSON([]byte(`{"zeta": 1, "alpha": {"beta": [true, null, "x"]}, "n": 2.5}`))
	require.NoError(t, err)

	keys := make([]string, 0, len(v.Entries))
	for _, e := range v.Entries {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"zeta", "alpha", "n"}, keys, "object key order must survive")

	alpha, _ := v.Get("alpha")
	beta, _ := alpha.Get("beta")
	assert.True(t, beta.Equal(Seq(Bool(true), Null(), Str("x"))))
	n, _ := v.Get("n")
	assert.True(t, n.Equal(Num(2.5)))
}

func TestParseJSONErrors(t *testing.T) {
	_, err := ParseJSON([]byte(`{"a": }`))
	assert.ErrorIs(t, err, ErrInvalidJSON)

	_, err = ParseJSON([]byte(`{"a": 1} trailing`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestFromGo(t *testing.T) {
	v := FromGo(map[string]any{
		"zeta":  1,
		"alpha": []any{"x", true, nil},
		"num":   json.Number("2.5"),
	})

	require.Equal(t, KindMapping, v.Kind)
	keys := make([]string, 0, len(v.Entries))
	for _, e := range v.Entries {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"alpha", "num", "zeta"}, keys, "map keys are sorted for determinism")

	alpha, _ := v.Get("alpha")
	assert.True(t, alpha.Equal(Seq(Str("x"), Bool(true), Null())))
	num, _ := v.Get("num")
	assert.True(t, num.Equal(Num(2.5)))
	zeta, _ := v.Get("zeta")
	assert.True(t, zeta.Equal(Num(1)))

	assert.True(t, FromGo(nil).Equal(Null()))
	assert.True(t, FromGo("s").Equal(Str("s")))
	assert.True(t, FromGo(int64(7)).Equal(Num(7)))
}

func TestParseThenCompareRoundTrip(t *testing.T) {
	expected, err := ParseYAML([]byte(`
service:
  replicas: 2
  labels: [prod]
`))
	require.NoError(t, err)

	actual, err := ParseJSON([]byte(`{"service": {"labels": ["extra", "prod"], "replicas": 2, "port": 80}}`))
	require.NoError(t, err)

	assert.True(t, Compare(expected, actual).OK())
}
