package models

import (
	"encoding/json"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestAnswerSetInsertionOrder(t *testing.T) {
	a := NewAnswerSet()
	a.Set("c", "3")
	a.Set("a", "1")
	a.Set("b", "2")

	want := []string{"c", "a", "b"}
	if got := a.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	// Overwrites keep the original position
	a.Set("c", "updated")
	if got := a.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() after overwrite = %v, want %v", got, want)
	}
	if a.Get("c") != "updated" {
		t.Errorf("Get(c) = %v, want updated", a.Get("c"))
	}
}

func TestAnswerSetDelete(t *testing.T) {
	a := NewAnswerSet()
	a.Set("a", "1")
	a.Set("b", "2")
	a.Set("c", "3")

	a.Delete("b")
	if got := a.Keys(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("Keys() after delete = %v", got)
	}
	if a.Has("b") {
		t.Error("deleted key is still present")
	}

	// Deleting an unknown key is a no-op
	a.Delete("missing")
	if a.Len() != 2 {
		t.Errorf("Len() = %d, want 2", a.Len())
	}
}

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		in   interface{}
		want interface{}
	}{
		{"text", "text"},
		{true, true},
		{nil, nil},
		{42, float64(42)},
		{int64(7), float64(7)},
		{3.5, 3.5},
		{[]interface{}{"a", "b"}, []string{"a", "b"}},
		{[]string{"x"}, []string{"x"}},
	}

	for _, tt := range tests {
		if got := NormalizeAnswer(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("NormalizeAnswer(%v) = %v (%T), want %v", tt.in, got, got, tt.want)
		}
	}
}

func TestIsPresent(t *testing.T) {
	tests := []struct {
		value interface{}
		want  bool
	}{
		{nil, false},
		{"", false},
		{"x", true},
		{false, false},
		{true, true},
		{[]string{}, false},
		{[]string{"a"}, true},
		{float64(0), true}, // zero is a legitimate numeric answer
		{float64(5), true},
	}

	for _, tt := range tests {
		if got := IsPresent(tt.value); got != tt.want {
			t.Errorf("IsPresent(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestFormatAnswer(t *testing.T) {
	tests := []struct {
		value interface{}
		want  string
	}{
		{"plain", "plain"},
		{true, "Yes"},
		{false, "No"},
		{[]string{"a", "b", "c"}, "a, b, c"},
		{float64(0), "0"},
		{float64(2.5), "2.5"},
		{nil, ""},
	}

	for _, tt := range tests {
		if got := FormatAnswer(tt.value); got != tt.want {
			t.Errorf("FormatAnswer(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestAnswerSetYAMLRoundTrip(t *testing.T) {
	a := NewAnswerSet()
	a.Set("zeta", "last letter, first answer")
	a.Set("alpha", true)
	a.Set("list", []string{"one", "two"})
	a.Set("level", float64(3))

	data, err := yaml.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded AnswerSet
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if got := decoded.Keys(); !reflect.DeepEqual(got, a.Keys()) {
		t.Errorf("round trip lost insertion order: %v vs %v", got, a.Keys())
	}
	if decoded.Get("alpha") != true {
		t.Errorf("boolean lost in round trip: %v", decoded.Get("alpha"))
	}
	if got := decoded.Get("list"); !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Errorf("sequence lost in round trip: %v", got)
	}
	if decoded.Get("level") != float64(3) {
		t.Errorf("number lost in round trip: %v (%T)", decoded.Get("level"), decoded.Get("level"))
	}
}

func TestAnswerSetJSONRoundTrip(t *testing.T) {
	a := NewAnswerSet()
	a.Set("b", "second key first")
	a.Set("a", []string{"x", "y"})

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded AnswerSet
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if got := decoded.Keys(); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("JSON round trip lost key order: %v", got)
	}
	if got := decoded.Get("a"); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Errorf("sequence lost in JSON round trip: %v", got)
	}
}

func TestSnapshotDeepCopies(t *testing.T) {
	a := NewAnswerSet()
	a.Set("list", []string{"a"})

	snap := a.Snapshot()
	a.Get("list").([]string)[0] = "mutated"

	if got := snap.Get("list").([]string)[0]; got != "a" {
		t.Errorf("snapshot shares backing array: %v", got)
	}
}

func TestTemplateValidate(t *testing.T) {
	valid := &Template{
		ID: "custom-x",
		Questions: []Question{
			{ID: "a", Type: QuestionText},
			{ID: "b", Type: QuestionSelect, Options: []Option{{Value: "v", Label: "V"}}},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid template rejected: %v", err)
	}

	dup := &Template{
		ID:        "dup",
		Questions: []Question{{ID: "a", Type: QuestionText}, {ID: "a", Type: QuestionText}},
	}
	if err := dup.Validate(); err == nil {
		t.Error("duplicate question ids must be rejected")
	}

	noOpts := &Template{
		ID:        "no-opts",
		Questions: []Question{{ID: "pick", Type: QuestionRadio}},
	}
	if err := noOpts.Validate(); err == nil {
		t.Error("radio without options must be rejected")
	}
}
