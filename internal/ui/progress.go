package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar tracks bytes written during a long copy.
type ProgressBar struct {
	bar          *progressbar.ProgressBar
	out          io.Writer
	showProgress bool
}

// Write implements io.Writer
func (b *ProgressBar) Write(p []byte) (int, error) {
	return b.bar.Write(p)
}

// Finish completes the bar and ends its line when it was drawn.
func (b *ProgressBar) Finish() error {
	err := b.bar.Finish()
	if b.showProgress {
		fmt.Fprintln(b.out)
	}
	return err
}

// Progress returns a byte progress bar for an operation of total bytes.
// The bar draws only when show is set and output is a terminal; otherwise it
// still counts bytes but writes nowhere.
func (p *Printer) Progress(total int64, description string, show bool) *ProgressBar {
	show = show && p.terminal
	var w io.Writer = io.Discard
	if show {
		w = p.out
		if f, ok := p.out.(*os.File); ok && f == os.Stdout {
			// translates the bar's escape codes on Windows consoles
			w = ansi.NewAnsiStdout()
		}
	}

	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(p.styled()),
		progressbar.OptionShowBytes(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	return &ProgressBar{bar: bar, out: p.out, showProgress: show}
}
