package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// Progress shows parse progress on a single terminal line. It implements
// odf.Observer. When the writer is not a terminal it prints nothing.
type Progress struct {
	w       io.Writer
	message string
	enabled bool
	mu      sync.Mutex
	drawn   bool
}

// NewProgress creates a progress line on stderr labelled with message.
func NewProgress(message string) *Progress {
	return NewProgressTo(os.Stderr, message)
}

// NewProgressTo creates a progress line on w. Output is enabled only when w
// is a terminal.
func NewProgressTo(w io.Writer, message string) *Progress {
	enabled := false
	if f, ok := w.(*os.File); ok {
		enabled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Progress{w: w, message: message, enabled: enabled}
}

// OnPhaseStart redraws the line with the phase percent and label.
func (p *Progress) OnPhaseStart(percent int, label string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if percent >= 100 {
		p.clear()
		return
	}
	fmt.Fprintf(p.w, "\r\033[K%s %s %s", p.message, Muted.Render(fmt.Sprintf("%3d%%", percent)), Muted.Render(label))
	p.drawn = true
}

// Done clears the progress line.
func (p *Progress) Done() {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clear()
}

func (p *Progress) clear() {
	if p.drawn {
		fmt.Fprint(p.w, "\r\033[K")
		p.drawn = false
	}
}
