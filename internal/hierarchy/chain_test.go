package hierarchy

import (
	"reflect"
	"testing"
)

func TestBuildChains(t *testing.T) {
	flags := map[string]bool{
		"root":      true,
		"a.b":       true,
		"a.b.c.d":   true,
		"a.b.c.d.e": true,
		"x":         true,
		"x.y":       false,
		"x.y.z":     true,
	}

	got := BuildChains(flags)
	want := map[string][]string{
		"a.b":       {"root"},
		"a.b.c.d":   {"a.b", "root"},
		"a.b.c.d.e": {"a.b.c.d", "a.b", "root"},
		"x":         {"root"},
		"x.y":       {},
		"x.y.z":     {"x.y"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BuildChains() = %v, want %v", got, want)
	}
}

func TestBuildChainsExcludesRootKey(t *testing.T) {
	got := BuildChains(map[string]bool{"root": false})
	if len(got) != 0 {
		t.Fatalf("expected empty table, got %v", got)
	}
}

func TestBuildChainsIgnoresRootFlag(t *testing.T) {
	got := BuildChains(map[string]bool{"root": false, "a": true, "a.b": true})
	if want := []string{"a", "root"}; !reflect.DeepEqual(got["a.b"], want) {
		t.Fatalf("chain a.b = %v, want %v", got["a.b"], want)
	}
}

func TestBuildChainsWithoutRootStillEndsWithRoot(t *testing.T) {
	got := BuildChains(map[string]bool{"svc": true, "svc.db": true})
	if want := []string{"svc", "root"}; !reflect.DeepEqual(got["svc.db"], want) {
		t.Fatalf("chain svc.db = %v, want %v", got["svc.db"], want)
	}
}

func TestBuildChainsBreakPointIsKept(t *testing.T) {
	flags := map[string]bool{
		"root":    true,
		"a":       true,
		"a.b":     false,
		"a.b.c":   true,
		"a.b.c.d": true,
	}
	got := BuildChains(flags)
	if want := []string{"a.b.c", "a.b"}; !reflect.DeepEqual(got["a.b.c.d"], want) {
		t.Fatalf("chain a.b.c.d = %v, want %v", got["a.b.c.d"], want)
	}
	if want := []string{"a.b"}; !reflect.DeepEqual(got["a.b.c"], want) {
		t.Fatalf("chain a.b.c = %v, want %v", got["a.b.c"], want)
	}
}

func TestBuildChainsSegmentBoundaries(t *testing.T) {
	flags := map[string]bool{"root": true, "a.b": true, "a.bc": true, "a.bc.d": true}
	got := BuildChains(flags)
	if want := []string{"root"}; !reflect.DeepEqual(got["a.bc"], want) {
		t.Fatalf("chain a.bc = %v, want %v", got["a.bc"], want)
	}
	if want := []string{"a.bc", "root"}; !reflect.DeepEqual(got["a.bc.d"], want) {
		t.Fatalf("chain a.bc.d = %v, want %v", got["a.bc.d"], want)
	}
}

func TestIsAncestor(t *testing.T) {
	tests := []struct {
		ancestor string
		name     string
		want     bool
	}{
		{"a", "a.b", true},
		{"a.b", "a.b.c.d", true},
		{"a", "a", false},
		{"a.b", "a.bc", false},
		{"a.b.c", "a.b", false},
		{"root", "root.x", true},
		{"", ".x", true},
	}
	for _, tc := range tests {
		if got := IsAncestor(tc.ancestor, tc.name); got != tc.want {
			t.Errorf("IsAncestor(%q, %q) = %v, want %v", tc.ancestor, tc.name, got, tc.want)
		}
	}
}
