package nirrevision

import "testing"

func TestHeaderVersion(t *testing.T) {
	got := HeaderVersion(Header{Magic: 0x4e495200, Compat: 1, Revision: 3})
	want := "0.1.3"

	if got != want {
		t.Fatalf("HeaderVersion = %q, want %q", got, want)
	}
}

func TestPolicy_Accepts(t *testing.T) {
	p, err := NewPolicy(">=0.1.0, <0.2.0")
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}

	cases := []struct {
		name string
		h    Header
		want bool
	}{
		{"compat1 revision1 accepted", Header{Compat: 1, Revision: 1}, true},
		{"compat1 revision9 accepted (patch-open)", Header{Compat: 1, Revision: 9}, true},
		{"compat2 rejected", Header{Compat: 2, Revision: 0}, false},
		{"compat0 rejected", Header{Compat: 0, Revision: 5}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := p.Accepts(tc.h)
			if err != nil {
				t.Fatalf("Accepts: %v", err)
			}

			if ok != tc.want {
				t.Fatalf("Accepts(%+v) = %v, want %v", tc.h, ok, tc.want)
			}
		})
	}
}

func TestPolicy_CheckReturnsUnsupportedError(t *testing.T) {
	p, err := NewPolicy(">=0.1.0, <0.2.0")
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}

	err = p.Check(Header{Compat: 2, Revision: 0})
	if err == nil {
		t.Fatal("expected error for out-of-range header")
	}

	if _, ok := err.(*UnsupportedError); !ok {
		t.Fatalf("expected *UnsupportedError, got %T", err)
	}
}

func TestPolicy_EmptyAcceptsAnything(t *testing.T) {
	p, err := NewPolicy("")
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}

	if err := p.Check(Header{Compat: 99, Revision: 999}); err != nil {
		t.Fatalf("empty policy rejected a header: %v", err)
	}
}

func TestNewPolicy_InvalidConstraint(t *testing.T) {
	if _, err := NewPolicy("not a constraint"); err == nil {
		t.Fatal("expected error for invalid constraint expression")
	}
}
