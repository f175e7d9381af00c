package maintenance

import (
	"reflect"
	"testing"
)

func TestLabelEncoderSortedCodes(t *testing.T) {
	enc := FitLabelEncoder([]string{"Good", "Fair", "Excellent", "Good"})
	if got := enc.Classes(); !reflect.DeepEqual(got, []string{"Excellent", "Fair", "Good"}) {
		t.Fatalf("classes not sorted: %v", got)
	}
	if enc.Code("Excellent") != 0 || enc.Code("Fair") != 1 || enc.Code("Good") != 2 {
		t.Fatalf("unexpected codes")
	}
	if enc.Code("Terrible") != UnseenCode {
		t.Fatalf("unseen value should map to %d", UnseenCode)
	}
	label, err := enc.Decode(1)
	if err != nil || label != "Fair" {
		t.Fatalf("Decode(1) = %q, %v", label, err)
	}
	if _, err := enc.Decode(UnseenCode); err == nil {
		t.Fatalf("Decode(-1) should fail")
	}
}
