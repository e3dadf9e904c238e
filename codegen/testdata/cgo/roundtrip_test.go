package lvgl

import "testing"

func TestMutableStringRoundTrip(t *testing.T) {
	roller := NewRoller(nil)
	if roller == nil {
		t.Fatal("NewRoller returned nil")
	}

	buf := "xxxxxxxx"
	if res := RollerGetOptionStr(roller, 1, &buf, uint32(len(buf)+1)); res != 0 {
		t.Fatalf("result = %d, want 0", res)
	}
	if buf != "beta" {
		t.Errorf("buf = %q, want %q", buf, "beta")
	}

	keep := "untouched"
	if res := RollerGetOptionStr(roller, 7, &keep, uint32(len(keep)+1)); res == 0 {
		t.Fatal("out of range option succeeded")
	}
	if keep != "untouched" {
		t.Errorf("buf = %q after a call that wrote nothing", keep)
	}
}

func TestConstStringRoundTrip(t *testing.T) {
	label := NewLabel(ObjCreate(nil))
	LabelSetText(label, "hello")
	if got := LabelGetText(label); got != "hello" {
		t.Errorf("LabelGetText = %q, want %q", got, "hello")
	}
}
