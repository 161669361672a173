package gobdd

import (
	"io"
	"log"
)

// Logger is the seam the runner's diagnostic trace writes through,
// satisfied by *log.Logger. stdlib log is the only logging library
// anywhere in the retrieved pack's go.mod files; the teacher itself
// silences gherkin-go's own output with log.SetOutput(ioutil.Discard)
// rather than reaching for a structured logger, so this stays on the
// same stdlib seam, just made swappable instead of global.
type Logger interface {
	Printf(format string, args ...interface{})
}

// defaultLogger discards everything, matching the teacher's
// log.SetOutput(ioutil.Discard): a Runner is silent until a host opts in.
func defaultLogger() Logger {
	return log.New(io.Discard, "", 0)
}
