package trainer

import "fmt"
import "os"
import "strings"

import "golang.org/x/term"

type progress struct {
	total   int
	width   int
	enabled bool
}

// newProgress prints a progress bar on stdout when it is a terminal.
func newProgress(total int, disabled bool) *progress {
	var p = &progress{total: total, width: 40}
	if disabled || total <= 0 {
		return p
	}
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return p
	}
	p.enabled = true
	if cols, _, err := term.GetSize(fd); err == nil {
		// leave room for the counters after the bar
		if w := cols - 60; w < p.width {
			p.width = w
		}
	}
	if p.width < 10 {
		p.width = 10
	}
	return p
}

func (p *progress) update(it Iteration) {
	if !p.enabled {
		return
	}
	done := p.width * it.Iteration / p.total
	percent := 100 * it.Iteration / p.total
	fmt.Printf("\r[%s%s] %d%% ITERATION %d/%d |g| = %.4g ", strings.Repeat("=", done), strings.Repeat(" ", p.width-done), percent, it.Iteration, p.total, it.GradNorm)
}

func (p *progress) finish() {
	if p.enabled {
		fmt.Println()
	}
}

func (p *progress) abort() {
	if p.enabled {
		fmt.Println(" FAILED")
	}
}
