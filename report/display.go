package report

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// colorSupported reports whether stdout is a terminal that can render ANSI
// color, so carets degrade to plain text under CI logs and redirected
// output rather than spraying escape codes into a file.
func colorSupported() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func colorize(code, text string) string {
	if !colorSupported() {
		return text
	}
	return "\x1b[" + code + "m" + text + "\x1b[0m"
}

// displayMessage prints a single diagnostic: module, line:col, label,
// message, and (if a span is available) the offending source line with a
// caret underline.
func displayMessage(label, moduleName, source string, span *TextSpan, message string) {
	if span == nil {
		fmt.Printf("%s: %s: %s\n", moduleName, coloredLabel(label), message)
		return
	}

	fmt.Printf("%s:%d:%d: %s: %s\n", moduleName, span.StartLine+1, span.StartCol+1, coloredLabel(label), message)
	displaySourceText(source, span)
}

func coloredLabel(label string) string {
	if label == "warning" {
		return colorize("33", label)
	}
	return colorize("31", label)
}

// displaySourceText renders the lines spanned by span with a caret
// underline beneath the erroneous text.
func displaySourceText(source string, span *TextSpan) {
	lines := strings.Split(source, "\n")
	if span.StartLine < 0 || span.StartLine >= len(lines) {
		return
	}

	endLine := span.EndLine
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	maxLineNumLen := len(strconv.Itoa(endLine + 1))
	lineNumFmt := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for ln := span.StartLine; ln <= endLine; ln++ {
		line := strings.ReplaceAll(lines[ln], "\t", "    ")
		fmt.Printf(lineNumFmt, ln+1)
		fmt.Println(line)

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		startCol := 0
		if ln == span.StartLine {
			startCol = span.StartCol
		}

		endCol := len(line)
		if ln == endLine && span.EndCol <= len(line) {
			endCol = span.EndCol
		}
		if endCol < startCol {
			endCol = startCol
		}

		fmt.Print(strings.Repeat(" ", startCol))
		caretCount := endCol - startCol
		if caretCount < 1 {
			caretCount = 1
		}
		fmt.Println(colorize("31", strings.Repeat("^", caretCount)))
	}
}
