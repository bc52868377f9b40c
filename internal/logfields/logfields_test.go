package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attr    slog.Attr
		wantKey string
		wantVal string
	}{
		{"Path", Path("docsite.yaml"), KeyPath, "docsite.yaml"},
		{"Target", Target("astro"), KeyTarget, "astro"},
		{"Variant", Variant("staging"), KeyVariant, "staging"},
		{"Output", Output("./out"), KeyOutput, "./out"},
		{"RenderID", RenderID("abc"), KeyRenderID, "abc"},
		{"Integration", Integration("mdx"), KeyIntegration, "mdx"},
		{"Snapshot", Snapshot("0123456789abcdef"), KeySnapshot, "0123456789ab"},
		{"ShortSnapshot", Snapshot("abc"), KeySnapshot, "abc"},
		{"Error", Error(errors.New("boom")), KeyError, "boom"},
		{"NilError", Error(nil), KeyError, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.attr.Key != c.wantKey {
				t.Fatalf("key mismatch: got %s want %s", c.attr.Key, c.wantKey)
			}
			if got := c.attr.Value.String(); got != c.wantVal {
				t.Fatalf("value mismatch: got %s want %s", got, c.wantVal)
			}
		})
	}
}

func TestNumericHelpers(t *testing.T) {
	if a := Issues(3); a.Key != KeyIssues || a.Value.Int64() != 3 {
		t.Fatalf("unexpected issues attr: %v", a)
	}
	if a := DurationMS(1.5); a.Key != KeyDurationMS || a.Value.Float64() != 1.5 {
		t.Fatalf("unexpected duration attr: %v", a)
	}
}
