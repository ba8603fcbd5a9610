package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// palette renders the parts of an error block. The plain palette returns
// its input unchanged.
type palette struct {
	label, message, category, fix, usageLabel, usage, bullet func(a ...any) string
}

var colored = palette{
	label:      color.New(color.FgRed, color.Bold).SprintFunc(),
	message:    color.New(color.FgRed).SprintFunc(),
	category:   color.New(color.FgYellow).SprintFunc(),
	fix:        color.New(color.FgGreen, color.Bold).SprintFunc(),
	usageLabel: color.New(color.FgCyan, color.Bold).SprintFunc(),
	usage:      color.New(color.FgCyan).SprintFunc(),
	bullet:     color.New(color.FgGreen).SprintFunc(),
}

var plain = palette{
	label: fmt.Sprint, message: fmt.Sprint, category: fmt.Sprint, fix: fmt.Sprint,
	usageLabel: fmt.Sprint, usage: fmt.Sprint, bullet: fmt.Sprint,
}

// FormatError formats a CLIError with colors. fatih/color disables them on
// its own when stdout is not a terminal or NO_COLOR is set.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, colored)
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, plain)
}

func formatError(err *CLIError, p palette) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", p.usageLabel("Usage: "), p.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}

	return sb.String()
}

// FprintError prints a formatted CLIError to the given writer.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

// FprintAny prints any error. A CLIError anywhere in the chain is printed
// with its remediation; other errors are printed as runtime errors.
func FprintAny(w io.Writer, err error) {
	if err == nil {
		return
	}
	if cliErr := AsCLIError(err); cliErr != nil {
		FprintError(w, cliErr)
		return
	}
	FprintError(w, &CLIError{Category: Runtime, Message: err.Error(), Err: err})
}
