package binding

import "testing"

func TestInterpolate(t *testing.T) {
	vars := map[string]any{"page": 2, "pages": 5, "type": "vocabulary"}
	cases := []struct {
		in, want string
	}{
		{"copybook · ${page}/${pages}", "copybook · 2/5"},
		{"${ type } sheet", "vocabulary sheet"},
		{"${missing} stays", "${missing} stays"},
		{"no placeholders", "no placeholders"},
		{"${}", "${}"},
	}
	for _, c := range cases {
		if got := Interpolate(c.in, vars); got != c.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestInterpolateWithoutVars(t *testing.T) {
	if got := Interpolate("${page}", nil); got != "${page}" {
		t.Fatalf("expected placeholder untouched, got %q", got)
	}
}
