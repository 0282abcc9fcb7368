package logbook

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/taigrr/colorhash"
)

// echoer mirrors written entries to a debug writer.
type echoer struct {
	w      io.Writer
	styled bool
	label  lipgloss.Style
	levels map[string]lipgloss.Style
	name   string
}

func newEchoer(w io.Writer, name string) *echoer {
	e := &echoer{w: w, name: name}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		e.styled = true
		r := lipgloss.NewRenderer(w)
		// honor NO_COLOR and CLICOLOR_FORCE
		r.SetColorProfile(termenv.NewOutput(w).EnvColorProfile())
		e.label = r.NewStyle().Foreground(labelColor(name)).Bold(true)
		e.levels = map[string]lipgloss.Style{
			"FATAL_ERROR": r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			"ERROR":       r.NewStyle().Foreground(lipgloss.Color("9")),
			"WARNING":     r.NewStyle().Foreground(lipgloss.Color("11")),
			"OK":          r.NewStyle().Foreground(lipgloss.Color("10")),
		}
	}
	return e
}

// labelColor picks a stable 256-color code for an election so interleaved
// output of several runs stays apart.
func labelColor(name string) lipgloss.Color {
	h := colorhash.HashString(name)
	if h < 0 {
		h = -h
	}
	return lipgloss.Color(strconv.Itoa(16 + h%216))
}

func (e *echoer) prefix() string {
	if !e.styled {
		return "[" + e.name + "] "
	}
	return e.label.Render("["+e.name+"]") + " "
}

func (e *echoer) line(level Level, entry string) {
	if e == nil {
		return
	}
	entry = strings.TrimSuffix(entry, "\n")
	if e.styled {
		tag := strings.ToUpper(string(level))
		if st, ok := e.levels[tag]; ok {
			entry = strings.Replace(entry, "["+tag+"]", st.Render("["+tag+"]"), 1)
		}
	}
	fmt.Fprintln(e.w, e.prefix()+entry)
}

func (e *echoer) block(text string) {
	if e == nil {
		return
	}
	for _, ln := range strings.Split(strings.Trim(text, "\n"), "\n") {
		if ln == "" {
			continue
		}
		fmt.Fprintln(e.w, e.prefix()+ln)
	}
}
