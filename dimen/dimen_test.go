package dimen

import "testing"

func TestParseUnits(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"72", 72},
		{"72pt", 72},
		{"1in", 72},
		{"1cm", 28.346456692913385},
		{"1mm", 2.8346456692913385},
		{"-10pt", -10},
		{"0.5in", 36},
	}
	for _, c := range cases {
		got, err := Parse(c.in, -1, -1)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("Parse(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseRelativeUnits(t *testing.T) {
	got, err := Parse("0.5w", 200, 100)
	if err != nil {
		t.Fatal(err)
	}
	if got != 100 {
		t.Errorf("0.5w of 200 = %v, want 100", got)
	}

	got, err = Parse("2h", 200, 100)
	if err != nil {
		t.Fatal(err)
	}
	if got != 200 {
		t.Errorf("2h of 100 = %v, want 200", got)
	}

	if _, err := Parse("1w", -1, -1); err == nil {
		t.Error("expected error when width not set")
	}
	if _, err := Parse("1h", -1, -1); err == nil {
		t.Error("expected error when height not set")
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "pt", "abc", "12xy", "1ptgarbage"} {
		if _, err := Parse(in, -1, -1); err == nil {
			t.Errorf("Parse(%q) expected error, got none", in)
		}
	}
}

func TestParseInt(t *testing.T) {
	n, err := ParseInt("4")
	if err != nil || n != 4 {
		t.Errorf("ParseInt(4) = %d, %v", n, err)
	}
	if _, err := ParseInt(""); err == nil {
		t.Error("expected error for empty string")
	}
	if _, err := ParseInt("abc"); err == nil {
		t.Error("expected error for non-numeric")
	}
}
