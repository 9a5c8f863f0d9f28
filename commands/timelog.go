package commands

import (
	"time"

	"github.com/lestrrat-go/strftime"
)

// timeLogLayout is the strftime pattern used only for human-readable log
// lines describing a Time push. The wire bytes a Time command actually
// carries are raw big-endian fields built by NewTimeCommand and never pass
// through this formatter.
const timeLogLayout = "%Y-%m-%d %H:%M:%S"

// FormatTimeLog renders t the way the daemon and CLI log a pushed LCD clock
// value. Falls back to time.Time's default string form if the layout
// somehow fails to compile (it never does for a literal constant).
func FormatTimeLog(t time.Time) string {
	s, err := strftime.Format(timeLogLayout, t)
	if err != nil {
		return t.Format("2006-01-02 15:04:05")
	}
	return s
}
