package vault

import "testing"

func TestParseRef(t *testing.T) {
	cases := []struct {
		in        string
		path, key string
		ok        bool
	}{
		{"secret/theme#dsn", "secret/theme", "dsn", true},
		{"secret/theme", "", "", false},
		{"#dsn", "", "", false},
		{"secret/theme#", "", "", false},
	}
	for _, c := range cases {
		p, k, ok := ParseRef(c.in)
		if p != c.path || k != c.key || ok != c.ok {
			t.Errorf("ParseRef(%q) = %q, %q, %v", c.in, p, k, ok)
		}
	}
}

func TestSplitMount(t *testing.T) {
	m, r := splitMount("secret/app/theme")
	if m != "secret" || r != "app/theme" {
		t.Fatalf("splitMount = %q, %q", m, r)
	}
}
