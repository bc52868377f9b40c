package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath        = "path"
	KeyTarget      = "target"
	KeyVariant     = "variant"
	KeyOutput      = "output"
	KeySnapshot    = "snapshot"
	KeyRenderID    = "render_id"
	KeyIntegration = "integration"
	KeyIssues      = "issues"
	KeyDurationMS  = "duration_ms"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Target(t string) slog.Attr       { return slog.String(KeyTarget, t) }
func Variant(v string) slog.Attr      { return slog.String(KeyVariant, v) }
func Output(o string) slog.Attr       { return slog.String(KeyOutput, o) }
func RenderID(id string) slog.Attr    { return slog.String(KeyRenderID, id) }
func Integration(n string) slog.Attr  { return slog.String(KeyIntegration, n) }
func Issues(n int) slog.Attr          { return slog.Int(KeyIssues, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

// Snapshot logs the first 12 characters of a snapshot hash.
func Snapshot(s string) slog.Attr {
	if len(s) > 12 {
		s = s[:12]
	}
	return slog.String(KeySnapshot, s)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
