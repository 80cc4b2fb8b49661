package output

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"
)

// Progress renders a single self-overwriting transfer status line.
type Progress struct {
	w        io.Writer
	label    string
	throttle rate.Sometimes
	last     string
}

func NewProgress(w io.Writer, label string, interval time.Duration) *Progress {
	return &Progress{
		w:        w,
		label:    label,
		throttle: rate.Sometimes{First: 1, Interval: interval},
	}
}

func (p *Progress) line(done, total int64) string {
	if total < 0 {
		return fmt.Sprintf("%s %s", p.label, humanize.Bytes(uint64(done)))
	}
	pct := 100.0
	if total > 0 {
		pct = float64(done) * 100 / float64(total)
	}
	return fmt.Sprintf("%s %s / %s (%.0f%%)", p.label, humanize.Bytes(uint64(done)), humanize.Bytes(uint64(total)), pct)
}

// Update is a transfer.ProgressFunc. Output is rate limited.
func (p *Progress) Update(done, total int64) {
	p.last = p.line(done, total)
	p.throttle.Do(func() {
		_, _ = fmt.Fprintf(p.w, "\r%s", p.last)
	})
}

// Done prints the final state and ends the line.
func (p *Progress) Done() {
	if p.last == "" {
		return
	}
	_, _ = fmt.Fprintf(p.w, "\r%s\n", p.last)
}
