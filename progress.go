package main

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
	"system-transparency.org/mmioreg/pci"
)

// Runs of at least progressThreshold registers show a progress bar on a
// terminal stderr.
const progressThreshold = 1 << 16

type progress struct {
	bar *progressbar.ProgressBar
}

func newProgress(count uint32) *progress {
	if count < progressThreshold || !term.IsTerminal(int(os.Stderr.Fd())) {
		return &progress{}
	}

	return &progress{
		bar: progressbar.NewOptions64(int64(count),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("reading registers"),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		),
	}
}

// stepFunc returns nil when no bar is shown.
func (p *progress) stepFunc() func(pci.Register) {
	if p.bar == nil {
		return nil
	}

	return func(pci.Register) {
		_ = p.bar.Add(1)
	}
}

func (p *progress) close() {
	if p.bar != nil {
		_ = p.bar.Close()
	}
}
