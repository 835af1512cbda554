package yamltext

import (
	"testing"
)

func TestNeedsQuoting(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"plain", false},
		{"STONE", false},
		{"give {player} diamond", true},
		{"a: b", true},
		{"&6Scava:", true},
		{"#comment", true},
		{"tick`", true},
		{"100%", true},
		{"user@host", true},
		{" x", true},
		{"x ", true},
		{"\tx", true},
		{"true", true},
		{"TRUE", true},
		{"False", true},
		{"null", true},
		{"~", true},
		{"yes", false},
		{"mining1", false},
		{"say hello world", false},
	}

	for _, tc := range tests {
		if got := NeedsQuoting(tc.in); got != tc.want {
			t.Fatalf("NeedsQuoting(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestQuoteEscapesDoubleQuotes(t *testing.T) {
	if got := Quote(`say "hi"`); got != `"say \"hi\""` {
		t.Fatalf("unexpected quoted string: %s", got)
	}
}

func TestDumpScalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"true", true, "true"},
		{"false", false, "false"},
		{"int", 42, "42"},
		{"negative", -7, "-7"},
		{"int64", int64(9), "9"},
		{"null", nil, "null"},
		{"plain string", "STONE", "STONE"},
		{"quoted string", "&eMiniera I", `"&eMiniera I"`},
		{"empty string", "", `""`},
		{"empty list", []string{}, "[]"},
		{"empty map", NewMap(), "{}"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Dump(tc.in, 0); got != tc.want {
				t.Fatalf("Dump(%#v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDumpNestedStructure(t *testing.T) {
	task := NewMap().
		Set("type", "blockbreak").
		Set("amount", 64).
		Set("block", "STONE").
		Set("allow-silk-touch", true)

	root := NewMap().
		Set("tasks", NewMap().Set("stone", task)).
		Set("rewards", []string{}).
		Set("display", NewMap().
			Set("name", "&eMiniera I").
			Set("lore-started", []string{"", "&6Stone: &7{stone:progress}/{stone:goal}"})).
		Set("options", NewMap().
			Set("category", "mining").
			Set("requires", []string{"mining1"}).
			Set("sort-order", 2))

	want := `tasks:
  stone:
    type: blockbreak
    amount: 64
    block: STONE
    allow-silk-touch: true
rewards: []
display:
  name: "&eMiniera I"
  lore-started:
    - ""
    - "&6Stone: &7{stone:progress}/{stone:goal}"
options:
  category: mining
  requires:
    - mining1
  sort-order: 2`

	if got := Dump(root, 0); got != want {
		t.Fatalf("unexpected dump:\n%s\n--- want ---\n%s", got, want)
	}
}

func TestDumpListOfCollections(t *testing.T) {
	in := []any{
		"a",
		NewMap().Set("k", "v").Set("n", 1),
		[]any{"x", "y"},
		[]string{},
	}
	want := `- a
-
  k: v
  n: 1
-
  - x
  - y
- []`
	if got := Dump(in, 0); got != want {
		t.Fatalf("unexpected dump:\n%s\n--- want ---\n%s", got, want)
	}
}

func TestDumpIndentOffset(t *testing.T) {
	in := NewMap().Set("a", []string{"b"})
	want := "    a:\n      - b"
	if got := Dump(in, 2); got != want {
		t.Fatalf("unexpected dump: %q", got)
	}
}

func TestDumpIsDeterministic(t *testing.T) {
	build := func() *Map {
		m := NewMap()
		for _, k := range []string{"zeta", "alpha", "mid", "beta", "omega"} {
			m.Set(k, k+"-value")
		}
		return m
	}
	first := Dump(build(), 0)
	for i := 0; i < 50; i++ {
		if got := Dump(build(), 0); got != first {
			t.Fatalf("dump changed between runs:\n%s\nvs\n%s", first, got)
		}
	}
	if first[:4] != "zeta" {
		t.Fatalf("expected insertion order to be kept, got:\n%s", first)
	}
}

func TestMapSetKeepsPositionAndDelete(t *testing.T) {
	m := NewMap().Set("a", 1).Set("b", 2).Set("c", 3)
	m.Set("a", 10)
	m.Delete("b")

	keys := m.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
		t.Fatalf("unexpected keys: %v", keys)
	}
	if v, _ := m.Get("a"); v != 10 {
		t.Fatalf("expected a=10, got %v", v)
	}

	clone := m.Clone()
	clone.Set("d", 4)
	if m.Len() != 2 {
		t.Fatalf("clone must not share keys with the original")
	}
}
