package core

import "testing"

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionNone, "None"},
		{ActionShop, "Shop"},
		{ActionClearPest, "ClearPest"},
		{ActionQuit, "Quit"},
		{Action(-1), "Unknown"},
		{ActionQuit + 1, "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.action.String(); got != tc.want {
			t.Errorf("Action(%d).String() = %q, want %q", tc.action, got, tc.want)
		}
	}
}

func TestColorString(t *testing.T) {
	if ColorPest.String() != "pest" {
		t.Errorf("ColorPest.String() = %q", ColorPest.String())
	}
	if Color(200).String() != "unknown" {
		t.Errorf("Color(200).String() = %q", Color(200).String())
	}
}
