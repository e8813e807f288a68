package cmd

import "testing"

func TestPlayFlags(t *testing.T) {
	f := playCmd.Flags().Lookup("no-quota")
	if f == nil {
		t.Fatal("no-quota flag not registered")
	}
	if !f.Hidden {
		t.Error("no-quota should be hidden from help")
	}
	for _, name := range []string{"mode", "level", "limit"} {
		if playCmd.Flags().Lookup(name) == nil {
			t.Errorf("flag %q not registered", name)
		}
	}
}
