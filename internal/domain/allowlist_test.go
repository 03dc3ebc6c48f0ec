package domain

import "testing"

func TestAccepts(t *testing.T) {
	a := NewAllowlist(nil)
	cases := []struct {
		base string
		want bool
	}{
		{"http://foo.io", true},
		{"http://foo.com", false},
		{"http://FOO.IO:8080", true},
		{"http://sub.panel.top", true},
		{"http://panel.space", true},
		{"http://foo.xyz", false},
		{"http://192.168.1.10:8080", false},
		{"", false},
	}
	for _, c := range cases {
		if got := a.Accepts(c.base); got != c.want {
			t.Errorf("Accepts(%q) = %v, want %v", c.base, got, c.want)
		}
	}
}

func TestAccepts_customSuffixes(t *testing.T) {
	a := NewAllowlist([]string{".xyz", "Live"})
	if !a.Accepts("http://foo.xyz") {
		t.Error("custom suffix .xyz should be accepted")
	}
	if !a.Accepts("http://foo.LIVE") {
		t.Error("suffix matching should be case-insensitive")
	}
	if a.Accepts("http://foo.io") {
		t.Error("default suffixes should not apply when a custom list is given")
	}
}
