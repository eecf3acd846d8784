package util

import (
	"reflect"
	"testing"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single", input: "P31", want: []string{"P31"}},
		{name: "spaces and blanks", input: " P31, ,P279 ,", want: []string{"P31", "P279"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitList(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("SplitList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("WIKIGRAPH_TEST_INT", "3")
	if got := GetEnvInt("WIKIGRAPH_TEST_INT", 2); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}

	t.Setenv("WIKIGRAPH_TEST_INT", "three")
	if got := GetEnvInt("WIKIGRAPH_TEST_INT", 2); got != 2 {
		t.Fatalf("expected default 2 for invalid value, got %d", got)
	}

	if got := GetEnvInt("WIKIGRAPH_TEST_UNSET", 7); got != 7 {
		t.Fatalf("expected default 7, got %d", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("WIKIGRAPH_TEST_BOOL", "true")
	if !GetEnvBool("WIKIGRAPH_TEST_BOOL", false) {
		t.Fatal("expected true")
	}

	t.Setenv("WIKIGRAPH_TEST_BOOL", "yes")
	if GetEnvBool("WIKIGRAPH_TEST_BOOL", false) {
		t.Fatal("expected default for unrecognized value")
	}
}
