package ui

import "testing"

func TestNamedTheme(t *testing.T) {
	light := NamedTheme("light")
	if light.Primary.Dark != light.Primary.Light {
		t.Errorf("light theme still adapts: %+v", light.Primary)
	}

	def := DefaultTheme()
	for _, name := range []string{"", "dark", "solarized"} {
		got := NamedTheme(name)
		if got.Primary != def.Primary {
			t.Errorf("NamedTheme(%q).Primary = %+v, want default", name, got.Primary)
		}
	}
}
