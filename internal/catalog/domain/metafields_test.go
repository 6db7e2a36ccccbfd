package domain

import (
	"reflect"
	"testing"
)

func TestMetaStringShapes(t *testing.T) {
	if got := MetaString("plain"); got != "plain" {
		t.Fatalf("expected plain, got %q", got)
	}
	if got := MetaString(map[string]any{"value": "wrapped"}); got != "wrapped" {
		t.Fatalf("expected wrapped, got %q", got)
	}
	if got := MetaString(map[string]any{"other": "x"}); got != "" {
		t.Fatalf("expected empty for missing value key, got %q", got)
	}
	if got := MetaString(float64(30)); got != "30" {
		t.Fatalf("expected 30, got %q", got)
	}
	if got := MetaString(nil); got != "" {
		t.Fatalf("expected empty for nil, got %q", got)
	}
}

func TestMetaListEncodings(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want []string
	}{
		{"native list", []any{"a", " b ", ""}, []string{"a", "b"}},
		{"json array string", `["Free shipping", "Cancel anytime"]`, []string{"Free shipping", "Cancel anytime"}},
		{"newline separated", "one\ntwo\n\nthree", []string{"one", "two", "three"}},
		{"comma separated", "red, green ,blue", []string{"red", "green", "blue"}},
		{"single scalar", "only", []string{"only"}},
		{"empty", "   ", nil},
		{"wrapped value", map[string]any{"value": "x,y"}, []string{"x", "y"}},
	}
	for _, tc := range cases {
		if got := MetaList(tc.raw); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestMetaListPrefersNewlineOverComma(t *testing.T) {
	got := MetaList("a, b\nc, d")
	want := []string{"a, b", "c, d"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected newline split to win, got %v", got)
	}
}
