package cli

import (
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Tint names an output style.
type Tint string

const (
	TintError   Tint = "error"
	TintSuccess Tint = "success"
	TintInfo    Tint = "info"
	TintComment Tint = "comment"
	TintLink    Tint = "link"
	TintHeader  Tint = "header"
	TintMark    Tint = "mark"
)

// Output writes styled lines to a terminal. It also serves as the
// diagnostics reporter of the content services.
type Output struct {
	w      io.Writer
	styles map[Tint]*color.Color
	list   *color.Color
}

// NewOutput creates an output writing to w. With noColor set every style
// renders as plain text.
func NewOutput(w io.Writer, noColor bool) *Output {
	o := &Output{
		w: w,
		styles: map[Tint]*color.Color{
			TintError:   color.New(color.FgWhite, color.BgRed),
			TintSuccess: color.New(color.FgCyan, color.Bold, color.Underline),
			TintInfo:    color.New(color.FgMagenta),
			TintComment: color.New(color.FgBlue),
			TintLink:    color.New(color.FgMagenta, color.Underline),
			TintHeader:  color.New(color.FgCyan, color.ReverseVideo),
			TintMark:    color.New(color.FgBlue, color.BgWhite, color.ReverseVideo),
		},
		list: color.New(color.FgYellow, color.Underline),
	}
	if noColor {
		for _, c := range o.styles {
			c.DisableColor()
		}
		o.list.DisableColor()
	}
	return o
}

// Writer returns the underlying writer.
func (o *Output) Writer() io.Writer {
	return o.w
}

// Tint styles s. Unknown tints leave s unchanged.
func (o *Output) Tint(s string, t Tint) string {
	if c, ok := o.styles[t]; ok {
		return c.Sprint(s)
	}
	return s
}

// Write prints s on its own line in style t.
func (o *Output) Write(s string, t Tint) {
	fmt.Fprintln(o.w, o.Tint(s, t))
}

// Println prints an unstyled line.
func (o *Output) Println(a ...any) {
	fmt.Fprintln(o.w, a...)
}

// Header prints s as a padded section header.
func (o *Output) Header(s string) {
	o.Write(" "+upperFirst(s)+" ", TintHeader)
}

// RenderList prints a one-column list with a header and a count footer.
func (o *Output) RenderList(header string, items []string) {
	fmt.Fprintf(o.w, "%s\n\n", o.list.Sprint(upperFirst(header)))
	for _, item := range items {
		fmt.Fprintf(o.w, " - %s\n", item)
	}
	fmt.Fprintf(o.w, "\n%s\n", o.Tint(fmt.Sprintf("(%d in set)", len(items)), TintComment))
}

// Question formats a prompt as "question [default]: ".
func (o *Output) Question(question, def string) string {
	q := o.Tint(question, TintInfo)
	if def == "" {
		return q + ": "
	}
	return fmt.Sprintf("%s [%s]: ", q, o.Tint(def, TintComment))
}

func (o *Output) Error(msg string)   { o.Write(msg, TintError) }
func (o *Output) Warn(msg string)    { o.Write(msg, TintComment) }
func (o *Output) Success(msg string) { o.Write(msg, TintInfo) }
func (o *Output) Info(msg string)    { o.Println(msg) }

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
