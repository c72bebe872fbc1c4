package report

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/canopy/pkg/schema"
)

// Printer writes human readable parse results.
// Colors are only used when the destination is a terminal.
type Printer struct {
	out     io.Writer
	profile termenv.Profile
}

// New creates a Printer for w.
func New(w io.Writer) *Printer {
	profile := termenv.Ascii
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		profile = termenv.ColorProfile()
	}
	return &Printer{out: w, profile: profile}
}

// NewWithProfile creates a Printer with an explicit color profile.
func NewWithProfile(w io.Writer, profile termenv.Profile) *Printer {
	return &Printer{out: w, profile: profile}
}

// Valid reports a document that conforms to its schema.
func (p *Printer) Valid(doc string) {
	mark := p.profile.String("✓").Foreground(p.profile.Color("#22c55e"))
	fmt.Fprintf(p.out, "%s %s\n", mark, doc)
}

// Invalid reports a document together with every issue found in it.
func (p *Printer) Invalid(doc string, errs []error) {
	mark := p.profile.String("✗").Foreground(p.profile.Color("#ef4444"))
	fmt.Fprintf(p.out, "%s %s (%d %s)\n", mark, doc, len(errs), plural(len(errs), "issue", "issues"))
	for _, issue := range schema.Issues(errs) {
		path := issue.Path
		if path == "" {
			path = "(root)"
		}
		styled := p.profile.String(path).Foreground(p.profile.Color("#a78bfa")).Bold()
		fmt.Fprintf(p.out, "    %s: %s\n", styled, issue.Message)
	}
}

// Failed reports a document that could not be read or decoded.
func (p *Printer) Failed(doc string, err error) {
	mark := p.profile.String("!").Foreground(p.profile.Color("#f59e0b"))
	fmt.Fprintf(p.out, "%s %s: %v\n", mark, doc, err)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
