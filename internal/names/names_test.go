package names

import (
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"A", "B"}, []string{"A", "B"}},
		{[]string{"A, B,C"}, []string{"A", "B", "C"}},
		{[]string{" A ", "", " , "}, []string{"A"}},
		{nil, nil},
	}
	for _, tt := range tests {
		if got := Split(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Split(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResolve_FallsBackToTeam(t *testing.T) {
	got := Resolve(nil, "To 1, To 2")
	want := []string{"To 1", "To 2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}

	got = Resolve([]string{"A,B"}, "Team X")
	want = []string{"A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve with workers = %v, want %v", got, want)
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("Nguyen Van A (To 2)"); got != "Nguyen Van A" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := DisplayName("  Tran B  "); got != "Tran B" {
		t.Errorf("DisplayName = %q", got)
	}
}
