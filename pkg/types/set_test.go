package types

import (
	"testing"

	"github.com/bytedance/sonic"
)

func TestSetToggle(t *testing.T) {
	s := NewSet("a")
	added := s.Toggle("b")
	if !added.Has("b") || !added.Has("a") {
		t.Errorf("Expected a and b, got %v", added.Values())
	}
	if s.Has("b") {
		t.Errorf("Toggle must not modify the receiver")
	}
	back := added.Toggle("b")
	if !back.Equal(s) {
		t.Errorf("Expected %v after toggling twice, got %v", s.Values(), back.Values())
	}
}

func TestSetToggleOnNil(t *testing.T) {
	var s Set
	r := s.Toggle("x")
	if !r.Has("x") || r.Len() != 1 {
		t.Errorf("Expected {x}, got %v", r.Values())
	}
}

func TestSetToggleFold(t *testing.T) {
	s := NewSet().ToggleFold("Apple")
	if !s.HasFold("apple") {
		t.Errorf("Expected folded membership for apple")
	}
	s = s.ToggleFold("APPLE")
	if s.Len() != 0 {
		t.Errorf("Expected toggling another case variant to remove, got %v", s.Values())
	}
}

func TestSetJson(t *testing.T) {
	data, err := sonic.Marshal(NewSet("b", "a"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["a","b"]` {
		t.Errorf("Expected sorted array, got %s", data)
	}
	data, err = sonic.Marshal(Set{})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `[]` {
		t.Errorf("Expected empty array, got %s", data)
	}
	var decoded Set
	if err := sonic.Unmarshal([]byte(`["x","y","x"]`), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Len() != 2 || !decoded.Has("x") || !decoded.Has("y") {
		t.Errorf("Expected {x,y}, got %v", decoded.Values())
	}
}
