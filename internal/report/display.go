package report

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Log levels.
const (
	LogLevelSilent = iota
	LogLevelError
	LogLevelWarn
	LogLevelVerbose
)

var (
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorColorFG = pterm.FgRed
	warnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	warnColorFG  = pterm.FgYellow
	infoStyleBG  = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	infoColorFG  = pterm.FgLightGreen
)

// Reporter prints diagnostics at or above its configured log level. It has
// no concurrency story: base spec §5 states the lowering pass is strictly
// single-threaded, so there is no need for a mutex here.
type Reporter struct {
	LogLevel int
}

// New creates a Reporter at the given log level.
func New(logLevel int) *Reporter {
	return &Reporter{LogLevel: logLevel}
}

// PrintError displays a lowering error and is the sole point where a
// *report.Error becomes user-visible output, per §7 policy.
func (r *Reporter) PrintError(err *Error) {
	if r.LogLevel <= LogLevelSilent {
		return
	}
	errorStyleBG.Print(err.Kind.String())
	errorColorFG.Println(" " + err.Name)
}

// PrintWarning displays a non-fatal diagnostic.
func (r *Reporter) PrintWarning(msg string) {
	if r.LogLevel < LogLevelWarn {
		return
	}
	warnStyleBG.Print("Warning")
	warnColorFG.Println(" " + msg)
}

// PrintInfo displays a progress or status message.
func (r *Reporter) PrintInfo(tag, msg string) {
	if r.LogLevel < LogLevelVerbose {
		return
	}
	infoStyleBG.Print(tag)
	infoColorFG.Println(" " + msg)
}

// PrintFatal displays a non-lowering fatal error (bad CLI usage, toolchain
// failures) and is always shown regardless of log level.
func (r *Reporter) PrintFatal(format string, args ...interface{}) {
	errorStyleBG.Print("Fatal Error")
	errorColorFG.Println(" " + fmt.Sprintf(format, args...))
}
