package controls

import (
	"time"

	"github.com/niksmo/makeup-catalog/pkg/debounce"
)

// DefaultNameDebounce is the quiet period before name input is committed.
const DefaultNameDebounce = 400 * time.Millisecond

// A DebouncedInput turns keystrokes into settled values delivered on
// [DebouncedInput.Commits]. Only the latest settled value is kept when the
// reader falls behind.
type DebouncedInput struct {
	d       *debounce.Debouncer
	commits chan string
}

func NewDebouncedInput(window time.Duration) *DebouncedInput {
	if window <= 0 {
		window = DefaultNameDebounce
	}
	return &DebouncedInput{
		d:       debounce.New(window),
		commits: make(chan string, 1),
	}
}

// Keystroke restarts the quiet period with the current input text.
func (in *DebouncedInput) Keystroke(text string) {
	in.d.Do(func() { in.push(text) })
}

// Flush commits text now and drops the pending keystroke, if any.
func (in *DebouncedInput) Flush(text string) {
	in.d.Flush(func() { in.push(text) })
}

// Pending reports whether a keystroke is waiting out the quiet period.
func (in *DebouncedInput) Pending() bool {
	return in.d.Pending()
}

func (in *DebouncedInput) Commits() <-chan string {
	return in.commits
}

func (in *DebouncedInput) Stop() {
	in.d.Cancel()
}

func (in *DebouncedInput) push(text string) {
	for {
		select {
		case in.commits <- text:
			return
		default:
		}
		select {
		case <-in.commits:
		default:
		}
	}
}
