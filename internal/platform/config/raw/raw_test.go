package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("NAME", " namematch ")
	t.Setenv("LOG_SERVICE", " recon-cli ")
	t.Setenv("LOG_COMPONENT", "   ")

	root := New()
	log := root.Prefix("LOG_")
	cases := []struct {
		conf      Conf
		key, want string
	}{
		{root, "NAME", "namematch"},
		{log, "SERVICE", "recon-cli"},
		{log, "COMPONENT", "fallback"},
		{log, "MISSING", "fallback"},
	}
	for _, c := range cases {
		if got := c.conf.Get(c.key, "fallback"); got != c.want {
			t.Fatalf("%s%s = %q, want %q", c.conf.prefix, c.key, got, c.want)
		}
	}
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("B_")
	env := map[string]string{
		"TRUE": "true", "ONE": "1", "YES": "YES", "ON": " on ",
		"FALSE": "False", "ZERO": "0", "NO": "no", "OFF": "off",
		"JUNK": "maybe",
	}
	for k, v := range env {
		t.Setenv("B_"+k, v)
	}

	for _, k := range []string{"TRUE", "ONE", "YES", "ON"} {
		if !c.GetBool(k, false) {
			t.Fatalf("%s should be true", k)
		}
	}
	for _, k := range []string{"FALSE", "ZERO", "NO", "OFF"} {
		if c.GetBool(k, true) {
			t.Fatalf("%s should be false", k)
		}
	}
	if !c.GetBool("JUNK", true) || c.GetBool("MISSING", false) {
		t.Fatal("unparseable and missing values use the default")
	}
}

func TestGetInt(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_SAMPLE_EVERY", " 10 ")
	t.Setenv("LOG_BAD", "12x")
	t.Setenv("LOG_NEG", "-5")

	cases := map[string]int{"SAMPLE_EVERY": 10, "BAD": 3, "NEG": 3, "MISSING": 3}
	for key, want := range cases {
		if got := c.GetInt(key, 3); got != want {
			t.Fatalf("GetInt(%s) = %d, want %d", key, got, want)
		}
	}
}

func TestGetOneOf(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_FORMAT", " JSON ")
	t.Setenv("LOG_STYLE", "xml")

	if got := c.GetOneOf("FORMAT", "console", "console", "json"); got != "json" {
		t.Fatalf("FORMAT = %q", got)
	}
	if got := c.GetOneOf("STYLE", "console", "console", "json"); got != "console" {
		t.Fatalf("STYLE = %q, want default", got)
	}
}

func TestPrefixNesting(t *testing.T) {
	t.Setenv("CORE_API_LOG_LEVEL", "debug")
	if got := New().Prefix("CORE_API_").Prefix("LOG_").Get("LEVEL", ""); got != "debug" {
		t.Fatalf("nested prefix = %q", got)
	}
}
