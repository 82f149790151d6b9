package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyPattern    = "pattern"
	KeyTemplate   = "template"
	KeyURL        = "url"
	KeyTarget     = "target"
	KeyExtension  = "extension"
	KeyCount      = "count"
	KeyEvent      = "event"
	KeyAddr       = "addr"
	KeyError      = "error"
	KeyMethod     = "method"
	KeyStatus     = "status"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Pattern(p string) slog.Attr       { return slog.String(KeyPattern, p) }
func Template(name string) slog.Attr   { return slog.String(KeyTemplate, name) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Target(t string) slog.Attr        { return slog.String(KeyTarget, t) }
func Extension(name string) slog.Attr  { return slog.String(KeyExtension, name) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Event(op string) slog.Attr        { return slog.String(KeyEvent, op) }
func Addr(a string) slog.Attr          { return slog.String(KeyAddr, a) }
func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
