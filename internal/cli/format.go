package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Color functions; fatih/color disables itself automatically off-TTY.
var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	dimColor     = color.New(color.FgHiBlack)
)

// printSuccess prints a success message with a checkmark.
func printSuccess(format string, args ...interface{}) {
	_, _ = successColor.Printf("✓ "+format+"\n", args...)
}

// printWarning prints a warning message.
func printWarning(format string, args ...interface{}) {
	_, _ = warningColor.Printf("⚠ "+format+"\n", args...)
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	_, _ = errorColor.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// printStep prints a progress line for a stage of the run.
func printStep(format string, args ...interface{}) {
	_, _ = infoColor.Printf("⚙ "+format+"\n", args...)
}

// printDim prints secondary detail, e.g. created file paths.
func printDim(format string, args ...interface{}) {
	_, _ = dimColor.Printf("  "+format+"\n", args...)
}

// printPlain is for next-steps guidance where color adds nothing.
func printPlain(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}
