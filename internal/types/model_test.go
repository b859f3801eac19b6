package types

import "testing"

func TestStringToModel(t *testing.T) {
	for m, name := range ModelNames {
		if got := StringToModel(name); got != m {
			t.Errorf("expected %s to map to %d, got %d", name, m, got)
		}
	}
	if got := StringToModel("cgb"); got != CGBABC {
		t.Errorf("expected lowercase names to be accepted, got %s", got)
	}
	if got := StringToModel("nes"); got != Unset {
		t.Errorf("expected unknown names to map to Unset, got %s", got)
	}
}

func TestModelRegisters(t *testing.T) {
	for m := Unset; m <= AGB; m++ {
		regs, ok := ModelRegisters[m]
		if !ok || len(regs) != 8 {
			t.Fatalf("expected 8 registers for %s, got %v", m, regs)
		}
	}
}
