package report

import (
	"fmt"

	"github.com/pterm/pterm"
)

var (
	successColorFG = pterm.FgLightGreen
	successStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	warnColorFG    = pterm.FgYellow
	warnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	errorColorFG   = pterm.FgRed
	errorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	infoColorFG    = successColorFG
	infoStyleBG    = successStyleBG
)

// DisplayErrorMessage prints a standard Go error to the console.
func DisplayErrorMessage(tag string, err error) {
	if rep == nil || rep.logLevel > LogLevelSilent {
		errorStyleBG.Print(tag)
		errorColorFG.Println(" " + err.Error())
	}

	if rep != nil {
		rep.isErr = true
	}
}

// DisplayInfoMessage prints an informational message to the user.
func DisplayInfoMessage(tag, msg string) {
	if rep == nil || rep.logLevel == LogLevelVerbose {
		infoStyleBG.Print(tag)
		infoColorFG.Println(" " + msg)
	}
}

// DisplayFatal displays a fatal error message.  Fatal errors are expected
// errors that stop execution immediately: invalid configuration, unreadable
// source files, inconsistent package clauses.
func DisplayFatal(msg string, args ...interface{}) {
	if rep == nil || rep.logLevel > LogLevelSilent {
		errorStyleBG.Print("Fatal Error")
		errorColorFG.Println(" " + fmt.Sprintf(msg, args...))
	}

	if rep != nil {
		rep.isErr = true
	}
}

// DisplayDiagnostics renders every diagnostic in the given list.  Hard
// diagnostics are labelled as errors and soft diagnostics as warnings; the
// configured log level decides whether each category is shown at all.
func DisplayDiagnostics(el *ErrorList, isError bool) {
	if rep != nil {
		rep.m.Lock()
		defer rep.m.Unlock()

		if isError && rep.logLevel < LogLevelError {
			return
		}

		if !isError && rep.logLevel < LogLevelWarn {
			return
		}

		if isError && !el.IsEmpty() {
			rep.isErr = true
		}
	}

	for _, d := range el.Diagnostics() {
		displayDiagnostic(d, isError)
	}
}

// displayDiagnostic renders one diagnostic with its resolved position.
func displayDiagnostic(d *Diagnostic, isError bool) {
	if isError {
		errorStyleBG.Print("Error")
	} else {
		warnStyleBG.Print("Warning")
	}

	fmt.Println(" " + d.Error())
}

// DisplayCheckFinished displays a closing message summarizing the number of
// hard and soft diagnostics produced by a check.
func DisplayCheckFinished(errorCount, warningCount int) {
	if rep != nil && rep.logLevel < LogLevelVerbose {
		return
	}

	if errorCount == 0 {
		successColorFG.Print("All done! ")
	} else {
		errorColorFG.Print("Oh no! ")
	}

	fmt.Printf("(%d errors, %d warnings)\n", errorCount, warningCount)
}
