package configtree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Common errors for tree parsing.
var (
	ErrInvalidYAML   = errors.New("invalid YAML syntax")
	ErrInvalidJSON   = errors.New("invalid JSON syntax")
	ErrEmptyDocument = errors.New("document is empty")
)

const maxAliasDepth = 64

// ParseYAML parses a single YAML document into a Value, preserving the
// order of mapping keys as they appear in the document.
func ParseYAML(data []byte) (*Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, ErrEmptyDocument
	}
	return fromYAMLNode(doc.Content[0], 0)
}

// ParseYAMLDocuments parses a multi-document YAML stream, skipping empty
// documents. It returns ErrEmptyDocument when the stream holds none.
func ParseYAMLDocuments(data []byte) ([]*Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var values []*Value
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
		if doc.Kind == 0 || len(doc.Content) == 0 {
			continue
		}
		// An empty document parses as a lone null scalar.
		if root := doc.Content[0]; root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
			continue
		}
		v, err := fromYAMLNode(doc.Content[0], 0)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, ErrEmptyDocument
	}
	return values, nil
}

// FromYAMLNode converts an already-decoded yaml.Node into a Value,
// preserving mapping order. It accepts document nodes as well as bare
// values, so a node captured from a larger document (a config field
// holding a free-form tree) converts directly.
func FromYAMLNode(n *yaml.Node) (*Value, error) {
	if n == nil || n.Kind == 0 {
		return nil, ErrEmptyDocument
	}
	return fromYAMLNode(n, 0)
}

func fromYAMLNode(n *yaml.Node, aliasDepth int) (*Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, ErrEmptyDocument
		}
		return fromYAMLNode(n.Content[0], aliasDepth)
	case yaml.AliasNode:
		if aliasDepth >= maxAliasDepth {
			return nil, fmt.Errorf("%w: alias nesting too deep", ErrInvalidYAML)
		}
		return fromYAMLNode(n.Alias, aliasDepth+1)
	case yaml.MappingNode:
		v := &Value{Kind: KindMapping, Entries: make([]Entry, 0, len(n.Content)/2)}
		seen := make(map[string]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			if keyNode.Kind == yaml.AliasNode {
				keyNode = keyNode.Alias
			}
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: non-scalar mapping key at line %d", ErrInvalidYAML, keyNode.Line)
			}
			child, err := fromYAMLNode(n.Content[i+1], aliasDepth)
			if err != nil {
				return nil, err
			}
			// Duplicate keys keep the first position and the last value.
			if at, ok := seen[keyNode.Value]; ok {
				v.Entries[at].Value = child
				continue
			}
			seen[keyNode.Value] = len(v.Entries)
			v.Entries = append(v.Entries, Entry{Key: keyNode.Value, Value: child})
		}
		return v, nil
	case yaml.SequenceNode:
		v := &Value{Kind: KindSequence, Items: make([]*Value, 0, len(n.Content))}
		for _, item := range n.Content {
			child, err := fromYAMLNode(item, aliasDepth)
			if err != nil {
				return nil, err
			}
			v.Items = append(v.Items, child)
		}
		return v, nil
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	default:
		return nil, fmt.Errorf("%w: unsupported node kind %d", ErrInvalidYAML, n.Kind)
	}
}

func fromYAMLScalar(n *yaml.Node) (*Value, error) {
	switch n.Tag {
	case "!!null", "":
		return Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(n.Value))
		if err != nil {
			return nil, fmt.Errorf("%w: bad boolean %q at line %d", ErrInvalidYAML, n.Value, n.Line)
		}
		return Bool(b), nil
	case "!!int":
		// Base 0 picks up YAML's 0x/0o forms.
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err == nil {
			return Num(float64(i)), nil
		}
		f, ferr := strconv.ParseFloat(n.Value, 64)
		if ferr != nil {
			return nil, fmt.Errorf("%w: bad integer %q at line %d", ErrInvalidYAML, n.Value, n.Line)
		}
		return Num(f), nil
	case "!!float":
		switch strings.ToLower(n.Value) {
		case ".inf", "+.inf":
			return Num(math.Inf(1)), nil
		case "-.inf":
			return Num(math.Inf(-1)), nil
		case ".nan":
			return Num(math.NaN()), nil
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad float %q at line %d", ErrInvalidYAML, n.Value, n.Line)
		}
		return Num(f), nil
	default:
		return Str(n.Value), nil
	}
}

// ParseJSON parses a JSON document into a Value, preserving object key
// order. The usual decoders hand back unordered maps, so this walks the
// token stream instead.
func ParseJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := fromJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrInvalidJSON)
	}
	return v, nil
}

func fromJSONValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return fromJSONToken(dec, tok)
}

func fromJSONToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			v := &Value{Kind: KindMapping}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				child, err := fromJSONValue(dec)
				if err != nil {
					return nil, err
				}
				v.Entries = append(v.Entries, Entry{Key: key, Value: child})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return v, nil
		case '[':
			v := &Value{Kind: KindSequence}
			for dec.More() {
				child, err := fromJSONValue(dec)
				if err != nil {
					return nil, err
				}
				v.Items = append(v.Items, child)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return v, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return Str(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("bad number %q: %v", t.String(), err)
		}
		return Num(f), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// FromGo adapts an already-unmarshaled Go value (map[string]any, []any and
// scalars, as produced by decoding an API response) into a Value. Map keys
// are sorted for determinism; only the expected side of a comparison
// controls report order, so sorted actual trees are safe.
func FromGo(v any) *Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case *Value:
		return t
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := &Value{Kind: KindMapping, Entries: make([]Entry, 0, len(keys))}
		for _, k := range keys {
			m.Entries = append(m.Entries, Entry{Key: k, Value: FromGo(t[k])})
		}
		return m
	case []any:
		s := &Value{Kind: KindSequence, Items: make([]*Value, 0, len(t))}
		for _, item := range t {
			s.Items = append(s.Items, FromGo(item))
		}
		return s
	case string:
		return Str(t)
	case bool:
		return Bool(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Str(t.String())
		}
		return Num(f)
	default:
		if f, ok := toFloat64(t); ok {
			return Num(f)
		}
		return Str(fmt.Sprint(t))
	}
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case int16:
		return float64(n), true
	case int8:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint8:
		return float64(n), true
	default:
		return 0, false
	}
}
