package progress

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Bar wraps a progress bar for interactive runs. A nil *Bar is valid and
// does nothing, so callers can pass one through unconditionally.
type Bar struct {
	bar *progressbar.ProgressBar
}

func New(w io.Writer, n int, description string) *Bar {
	return &Bar{
		bar: progressbar.NewOptions(n,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(description),
			progressbar.OptionClearOnFinish(),
		),
	}
}

func (b *Bar) Add(n int) {
	if b == nil {
		return
	}
	_ = b.bar.Add(n)
}

func (b *Bar) Finish() {
	if b == nil {
		return
	}
	_ = b.bar.Finish()
}
