package validate

import (
	"errors"
	"testing"
)

type statusUp struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

type priceNew struct {
	Price float64 `json:"price" validate:"gt=0"`
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		val  any
		ok   bool
	}{
		{"approved", statusUp{"approved"}, true},
		{"rejected", statusUp{"rejected"}, true},
		{"unknown status", statusUp{"archived"}, false},
		{"missing status", statusUp{}, false},
		{"positive price", priceNew{49.99}, true},
		{"zero price", priceNew{0}, false},
		{"negative price", priceNew{-1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.val)
			if tt.ok && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestCheckTranslated(t *testing.T) {
	err := Check(statusUp{"archived"})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if got, exp := err.Error(), "status must be one of [approved rejected]"; got != exp {
		t.Fatalf("expected %q, got %q", exp, got)
	}
}

func TestParseID(t *testing.T) {
	oid, err := ParseID("64b7f3c2a1e4d5f6a7b8c9d0")
	if err != nil {
		t.Fatalf("expected a valid id, got %v", err)
	}
	if oid.Hex() != "64b7f3c2a1e4d5f6a7b8c9d0" {
		t.Fatalf("unexpected id %s", oid.Hex())
	}

	for _, id := range []string{"", "123", "zzb7f3c2a1e4d5f6a7b8c9d0", "64b7f3c2a1e4d5f6a7b8c9d0ff"} {
		if _, err := ParseID(id); !errors.Is(err, ErrInvalidID) {
			t.Fatalf("id %q: expected ErrInvalidID, got %v", id, err)
		}
	}
}
