package task

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/kayz/questgen/internal/schema"
)

func TestNormalizeBlockbreakMutex(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]any
		wantErr error
	}{
		{
			name:    "block and blocks",
			raw:     map[string]any{"amount": 10, "block": "STONE", "blocks": []any{"A", "B"}},
			wantErr: ErrMutexViolation,
		},
		{
			name: "block only",
			raw:  map[string]any{"amount": 10, "block": "STONE"},
		},
		{
			name: "neither",
			raw:  map[string]any{"amount": 10},
		},
		{
			name: "empty block does not count",
			raw:  map[string]any{"amount": 10, "block": "", "blocks": []string{"A"}},
		},
		{
			name: "empty blocks does not count",
			raw:  map[string]any{"amount": 10, "block": "STONE", "blocks": []string{}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fields, err := Normalize("blockbreak", tc.raw)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if fields != nil {
					t.Fatalf("expected no partial record, got %#v", fields)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
		})
	}
}

func TestMutexErrorNamesBothFields(t *testing.T) {
	_, err := Normalize("interact", map[string]any{
		"amount":  1,
		"action":  "RIGHT_CLICK_BLOCK",
		"actions": []string{"LEFT_CLICK_BLOCK"},
	})
	var mutexErr *MutexError
	if !errors.As(err, &mutexErr) {
		t.Fatalf("expected MutexError, got %v", err)
	}
	if mutexErr.FieldA != "action" || mutexErr.FieldB != "actions" {
		t.Fatalf("unexpected fields in error: %+v", mutexErr)
	}
}

func TestNormalizeAppliesRetentionPolicy(t *testing.T) {
	fields, err := Normalize("blockbreak", map[string]any{"amount": "64", "block": "STONE"})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want := Fields{
		"amount":                  64,
		"block":                   "STONE",
		"reverse-if-placed":       false,
		"allow-silk-touch":        true,
		"allow-negative-progress": true,
	}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("unexpected fields:\n got %#v\nwant %#v", fields, want)
	}
	if _, ok := fields["worlds"]; ok {
		t.Fatalf("empty worlds list must not be retained")
	}
}

func TestNormalizeRequiredZeroIsRetained(t *testing.T) {
	fields, err := Normalize("crafting", map[string]any{"amount": 0})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if v, ok := fields["amount"]; !ok || v != 0 {
		t.Fatalf("expected amount=0 to be retained, got %v (present=%v)", v, ok)
	}
}

func TestNormalizeOptionalInteger(t *testing.T) {
	fields, err := Normalize("enchanting", map[string]any{"amount": 3})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if _, ok := fields["min-level"]; ok {
		t.Fatalf("unset min-level must not appear, got %#v", fields)
	}

	fields, err = Normalize("enchanting", map[string]any{"amount": 3, "min-level": ""})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if _, ok := fields["min-level"]; ok {
		t.Fatalf("blank min-level must not appear, got %#v", fields)
	}

	fields, err = Normalize("enchanting", map[string]any{"amount": 3, "min-level": 0})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if v, ok := fields["min-level"]; !ok || v != 0 {
		t.Fatalf("expected min-level=0, got %v (present=%v)", v, ok)
	}
}

func TestNormalizeIntegerCoercion(t *testing.T) {
	valid := []any{12, int64(12), float64(12), "12", " 12 ", json.Number("12")}
	for _, raw := range valid {
		fields, err := Normalize("smelting", map[string]any{"amount": raw})
		if err != nil {
			t.Fatalf("amount %#v: unexpected error %v", raw, err)
		}
		if fields["amount"] != 12 {
			t.Fatalf("amount %#v: expected 12, got %#v", raw, fields["amount"])
		}
	}

	invalid := []any{"twelve", "12.5", 12.5, true, nil, []string{"12"}, float64(1 << 63), -float64(1<<63) * 2}
	for _, raw := range invalid {
		_, err := Normalize("smelting", map[string]any{"amount": raw})
		if !errors.Is(err, ErrInvalidFieldType) {
			t.Fatalf("amount %#v: expected ErrInvalidFieldType, got %v", raw, err)
		}
		var typeErr *FieldTypeError
		if !errors.As(err, &typeErr) || typeErr.Field != "amount" || typeErr.Kind != "smelting" {
			t.Fatalf("amount %#v: expected FieldTypeError naming kind and field, got %v", raw, err)
		}
	}
}

func TestNormalizeHostileTriState(t *testing.T) {
	tests := []struct {
		raw     any
		want    any
		present bool
	}{
		{nil, nil, false},
		{"", nil, false},
		{"true", true, true},
		{"FALSE", false, true},
		{false, false, true},
	}
	for _, tc := range tests {
		fields, err := Normalize("mobkilling", map[string]any{"amount": 5, "hostile": tc.raw})
		if err != nil {
			t.Fatalf("hostile %#v: %v", tc.raw, err)
		}
		v, ok := fields["hostile"]
		if ok != tc.present || v != tc.want {
			t.Fatalf("hostile %#v: got %#v (present=%v)", tc.raw, v, ok)
		}
	}

	if _, err := Normalize("mobkilling", map[string]any{"amount": 5, "hostile": "maybe"}); !errors.Is(err, ErrInvalidFieldType) {
		t.Fatalf("expected ErrInvalidFieldType for hostile=maybe, got %v", err)
	}
}

func TestNormalizeRejectsUnknownKindAndField(t *testing.T) {
	if _, err := Normalize("fishing", map[string]any{"amount": 1}); !errors.Is(err, schema.ErrUnknownTaskKind) {
		t.Fatalf("expected ErrUnknownTaskKind, got %v", err)
	}
	if _, err := Normalize("crafting", map[string]any{"amount": 1, "blok": "STONE"}); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []struct {
		kind string
		raw  map[string]any
	}{
		{"blockbreak", map[string]any{"amount": "64", "blocks": []any{"STONE", "GRANITE"}, "worlds": "world\nworld_nether\n"}},
		{"enchanting", map[string]any{"amount": 1, "min-level": "0", "enchantment": []string{"SHARPNESS"}}},
		{"mobkilling", map[string]any{"amount": 9, "mob": "ZOMBIE", "hostile": "true", "names": []string{"Bob"}}},
		{"inventory", map[string]any{"amount": 2, "item": "DIAMOND", "remove-items-when-complete": "true"}},
	}

	for _, in := range inputs {
		first, err := Normalize(in.kind, in.raw)
		if err != nil {
			t.Fatalf("%s: first pass failed: %v", in.kind, err)
		}
		second, err := Normalize(in.kind, first.Raw())
		if err != nil {
			t.Fatalf("%s: second pass failed: %v", in.kind, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("%s: normalization not idempotent:\n first %#v\nsecond %#v", in.kind, first, second)
		}
	}
}

func TestOrderedFollowsDeclarationOrder(t *testing.T) {
	fields, err := Normalize("blockbreak", map[string]any{"worlds": []string{"world"}, "amount": 1, "block": "STONE"})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	k, _ := schema.Lookup("blockbreak")
	keys := fields.Ordered(k).Keys()
	want := []string{"amount", "block", "reverse-if-placed", "allow-silk-touch", "allow-negative-progress", "worlds"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("unexpected order: %v", keys)
	}
}

func TestDefaults(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 100; i++ {
		d, err := Defaults("enchanting", rng)
		if err != nil {
			t.Fatalf("Defaults failed: %v", err)
		}
		amount, _ := d["amount"].(int)
		if amount < 1 || amount > 64 {
			t.Fatalf("amount out of range: %d", amount)
		}
		if d["min-level"] != nil {
			t.Fatalf("min-level must not be seeded, got %v", d["min-level"])
		}
		if _, err := Normalize("enchanting", d); err != nil {
			t.Fatalf("defaults must normalize cleanly: %v", err)
		}
	}
}
