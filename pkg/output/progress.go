package output

import (
	"io"
	"time"

	"github.com/cheggaaa/pb/v3"
)

// barTemplate mirrors the layout used while indexing: a label, counters,
// the bar itself, percentage and remaining time
const barTemplate = `{{string . "prefix"}} {{counters . }} {{bar . "[" "=" ">" "-" "]"}} {{percent . }} {{rtime . "ETA %s"}}`

// BarObserver renders one progress bar per indexing pass.
// It implements index.Observer; FileDone may be called from many worker
// goroutines concurrently (pb is safe for that).
type BarObserver struct {
	writer io.Writer
	bar    *pb.ProgressBar
}

// NewBarObserver creates a progress observer writing to w
func NewBarObserver(w io.Writer) *BarObserver {
	return &BarObserver{writer: w}
}

// BuildStarted starts a fresh bar sized to the discovered file count
func (o *BarObserver) BuildStarted(root string, totalFiles int) {
	o.bar = pb.New(totalFiles).
		SetTemplateString(barTemplate).
		Set("prefix", "Indexing "+root).
		SetWriter(o.writer).
		SetRefreshRate(100 * time.Millisecond)
	o.bar.Start()
}

// FileDone advances the bar by one file
func (o *BarObserver) FileDone(path string) {
	if o.bar != nil {
		o.bar.Increment()
	}
}

// BuildFinished completes and releases the bar
func (o *BarObserver) BuildFinished(root string) {
	if o.bar != nil {
		o.bar.Finish()
		o.bar = nil
	}
}
