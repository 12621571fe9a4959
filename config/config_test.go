package config

import "testing"

func TestOverwritableResolve(t *testing.T) {
	o := Overwritable[int]{Value: 50, Overwritable: true}

	override := 10
	if got := o.Resolve(&override); got != 10 {
		t.Fatalf("expected override 10, got %d", got)
	}
	if got := o.Resolve(nil); got != 50 {
		t.Fatalf("expected default 50, got %d", got)
	}

	locked := Overwritable[int]{Value: 50, Overwritable: false}
	if got := locked.Resolve(&override); got != 50 {
		t.Fatalf("non-overwritable field must ignore override, got %d", got)
	}
}
