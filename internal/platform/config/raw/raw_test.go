package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("LOG_SERVICE", " rdtlog ")
	t.Setenv("LOG_COMPONENT", "")

	log := New().Prefix("LOG_")
	cases := []struct {
		key, def, want string
	}{
		{"SERVICE", "x", "rdtlog"},
		{"COMPONENT", "cli", "cli"},
		{"MISSING", "", ""},
	}
	for _, tc := range cases {
		if got := log.Get(tc.key, tc.def); got != tc.want {
			t.Fatalf("Get(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestGetBool(t *testing.T) {
	log := New().Prefix("LOG_")
	for env, want := range map[string]bool{
		"1": true, "true": true, " YES ": true,
		"0": false, "no": false, "maybe": false,
	} {
		t.Setenv("LOG_CALLER", env)
		if got := log.GetBool("CALLER", !want); got != want {
			t.Fatalf("GetBool(%q) = %v, want %v", env, got, want)
		}
	}
	t.Setenv("LOG_CALLER", "")
	if !log.GetBool("CALLER", true) {
		t.Fatalf("empty should use default")
	}
}

func TestGetInt(t *testing.T) {
	log := New().Prefix("LOG_")
	cases := []struct {
		env  string
		want int
	}{
		{"10", 10},
		{" 3 ", 3},
		{"0", 0},
		{"-1", 5},
		{"ten", 5},
		{"", 5},
	}
	for _, tc := range cases {
		t.Setenv("LOG_SAMPLE_EVERY", tc.env)
		if got := log.GetInt("SAMPLE_EVERY", 5); got != tc.want {
			t.Fatalf("GetInt(%q) = %d, want %d", tc.env, got, tc.want)
		}
	}
}

func TestGetEnum(t *testing.T) {
	log := New().Prefix("LOG_")
	t.Setenv("LOG_FORMAT", " JSON ")
	if got := log.GetEnum("FORMAT", "console", "json", "console"); got != "json" {
		t.Fatalf("GetEnum = %q, want json", got)
	}
	t.Setenv("LOG_FORMAT", "logfmt")
	if got := log.GetEnum("FORMAT", "console", "json", "console"); got != "console" {
		t.Fatalf("unknown value should fall back, got %q", got)
	}
}

func TestPrefix_Nested(t *testing.T) {
	t.Setenv("CORE_REPLAY_STATION", "msf")
	t.Setenv("REPLAY_STATION", "npl")
	if got := New().Prefix("CORE_").Prefix("REPLAY_").Get("STATION", ""); got != "msf" {
		t.Fatalf("nested prefix = %q, want msf", got)
	}
}
