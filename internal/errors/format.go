package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	fcolor "github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
)

// wrapWidth is the column at which explanations are wrapped.
const wrapWidth = 70

// DisableColors disables ANSI color output.
func DisableColors() {
	fcolor.NoColor = true
}

// EnableColors enables ANSI color output.
func EnableColors() {
	fcolor.NoColor = false
}

var (
	red  = fcolor.New(fcolor.FgRed, fcolor.Bold).SprintFunc()
	bold = fcolor.New(fcolor.Bold).SprintFunc()
	cyan = fcolor.New(fcolor.FgCyan).SprintFunc()
	gray = fcolor.New(fcolor.FgHiBlack).SprintFunc()
)

// Format returns a formatted error message for terminal display.
func (e *Error) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	if e.Code != "" {
		b.WriteString(red("ERROR "))
		b.WriteString(bold(e.Code + ": "))
	} else {
		b.WriteString(red("ERROR: "))
	}
	b.WriteString(e.Message)
	b.WriteString("\n\n")

	if e.Detail != "" {
		writeIndented(&b, e.Detail)
	}

	if explanation := Explain(e.Code); explanation != "" {
		writeIndented(&b, gray(explanation))
	}

	if e.Wrapped != nil {
		b.WriteString("  ")
		b.WriteString(gray("Cause: "))
		b.WriteString(e.Wrapped.Error())
		b.WriteString("\n\n")
	}

	if e.Suggestion != "" {
		b.WriteString("  ")
		b.WriteString(cyan("Hint: "))
		b.WriteString(e.Suggestion)
		b.WriteString("\n\n")
	}

	return b.String()
}

func writeIndented(b *strings.Builder, text string) {
	for _, line := range strings.Split(wordwrap.WrapString(text, wrapWidth), "\n") {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// FormatCompact returns a compact single-line error format.
func (e *Error) FormatCompact() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

// FormatJSON returns the error as a JSON object.
func (e *Error) FormatJSON() string {
	out := struct {
		Code       string   `json:"code,omitempty"`
		Category   Category `json:"category"`
		Message    string   `json:"message"`
		Detail     string   `json:"detail,omitempty"`
		Suggestion string   `json:"suggestion,omitempty"`
		Cause      string   `json:"cause,omitempty"`
	}{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	data, _ := json.Marshal(out)
	return string(data)
}

// Fprint writes a formatted error to w. Non-coded errors get a plain header.
func Fprint(w io.Writer, err error) {
	var me *Error
	if stderrors.As(err, &me) {
		fmt.Fprint(w, me.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", red("ERROR:"), err.Error())
}
