package cmd

import (
	"os"

	"github.com/MeKo-Tech/panoroll/internal/batch"
	"github.com/schollz/progressbar/v3"
)

// barSink renders a console progress bar for a batch run. The dispatcher
// calls it from its collector goroutine, which is fine: progressbar is safe
// to drive from a single non-main goroutine.
type barSink struct {
	description string
	bar         *progressbar.ProgressBar
}

func newBarSink(description string) *barSink {
	return &barSink{description: description}
}

func (b *barSink) OnStart(total int) {
	b.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(b.description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func (b *barSink) OnProgress(ev batch.ProgressEvent) {
	if b.bar == nil {
		return
	}
	_ = b.bar.Set(ev.Processed)
}

func (b *barSink) OnComplete(batch.Summary) {
	if b.bar == nil {
		return
	}
	_ = b.bar.Finish()
}
