package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AnswerSet is an insertion-ordered map from question id to answer value.
// Answer values are one of: string, bool, []string or float64. The insertion
// order is observable output: the generic synthesis strategy emits lines in
// the order answers were first written.
type AnswerSet struct {
	keys   []string
	values map[string]interface{}
}

// NewAnswerSet creates an empty answer set
func NewAnswerSet() *AnswerSet {
	return &AnswerSet{
		values: make(map[string]interface{}),
	}
}

// Set stores a value for a question id, overwriting any previous value.
// First writes register the key's position in iteration order; overwrites
// keep the original position.
func (a *AnswerSet) Set(id string, value interface{}) {
	if a.values == nil {
		a.values = make(map[string]interface{})
	}
	if _, ok := a.values[id]; !ok {
		a.keys = append(a.keys, id)
	}
	a.values[id] = NormalizeAnswer(value)
}

// Get returns the stored value for a question id, or nil when absent
func (a *AnswerSet) Get(id string) interface{} {
	if a == nil || a.values == nil {
		return nil
	}
	return a.values[id]
}

// Has reports whether any value, present or not, is stored for the id
func (a *AnswerSet) Has(id string) bool {
	if a == nil || a.values == nil {
		return false
	}
	_, ok := a.values[id]
	return ok
}

// Delete removes a stored value and its slot in the iteration order
func (a *AnswerSet) Delete(id string) {
	if a == nil || a.values == nil {
		return
	}
	if _, ok := a.values[id]; !ok {
		return
	}
	delete(a.values, id)
	for i, k := range a.keys {
		if k == id {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the question ids in insertion order
func (a *AnswerSet) Keys() []string {
	if a == nil {
		return nil
	}
	keys := make([]string, len(a.keys))
	copy(keys, a.keys)
	return keys
}

// Len returns the number of stored answers
func (a *AnswerSet) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// Snapshot returns a deep copy of the answer set. Mutating the live set after
// a snapshot never alters the copy, which is what makes saved prompts immutable.
func (a *AnswerSet) Snapshot() *AnswerSet {
	snap := NewAnswerSet()
	if a == nil {
		return snap
	}
	for _, k := range a.keys {
		v := a.values[k]
		if s, ok := v.([]string); ok {
			dup := make([]string, len(s))
			copy(dup, s)
			v = dup
		}
		snap.Set(k, v)
	}
	return snap
}

// NormalizeAnswer coerces decoded YAML/JSON values into the canonical answer
// forms: string, bool, []string or float64
func NormalizeAnswer(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case string, bool, []string, float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case []interface{}:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return items
	default:
		return fmt.Sprintf("%v", v)
	}
}

// IsPresent reports whether a value counts as an answer for synthesis.
// Present means: non-empty string, true, non-empty sequence, or any number,
// including zero. A slider deliberately set to its 0 minimum is an answer;
// an empty string or an unticked checkbox is not.
func IsPresent(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case []string:
		return len(v) > 0
	case float64:
		return true
	default:
		return false
	}
}

// FormatAnswer renders a value for a one-line field: booleans as Yes/No,
// sequences comma-joined, numbers without a trailing exponent
func FormatAnswer(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case []string:
		return strings.Join(v, ", ")
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// MarshalYAML encodes the set as a YAML mapping in insertion order
func (a *AnswerSet) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if a == nil {
		return node, nil
	}
	for _, k := range a.keys {
		keyNode := &yaml.Node{}
		if err := keyNode.Encode(k); err != nil {
			return nil, err
		}
		valNode := &yaml.Node{}
		if err := valNode.Encode(a.values[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping preserving its document order
func (a *AnswerSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("answers must be a mapping, got %v", node.Kind)
	}
	a.keys = nil
	a.values = make(map[string]interface{})
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("failed to decode answer key: %w", err)
		}
		var value interface{}
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("failed to decode answer %q: %w", key, err)
		}
		a.Set(key, value)
	}
	return nil
}

// MarshalJSON encodes the set as a JSON object in insertion order
func (a *AnswerSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if a != nil {
		for i, k := range a.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyBytes, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.Write(keyBytes)
			buf.WriteByte(':')
			valBytes, err := json.Marshal(a.values[k])
			if err != nil {
				return nil, err
			}
			buf.Write(valBytes)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving its document order. The
// standard map decoding would lose ordering, so keys are walked with a
// token decoder instead.
func (a *AnswerSet) UnmarshalJSON(data []byte) error {
	a.keys = nil
	a.values = make(map[string]interface{})

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("answers must be a JSON object")
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected answer key token %v", keyTok)
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode answer %q: %w", key, err)
		}
		a.Set(key, value)
	}
	// consume the closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
