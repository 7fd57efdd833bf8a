package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/blobposter/pkg/observability"
)

// spinnerFrames animate a wobbling circle.
var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

const spinnerInterval = 100 * time.Millisecond

// spinner draws a one-line status on w while a poster is drawn. It
// implements observability.PipelineHooks so the line names the current
// pipeline stage.
type spinner struct {
	observability.NoopPipelineHooks

	w     io.Writer
	start time.Time

	mu    sync.Mutex
	stage string
	width int // widest line written so far

	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func newSpinner(w io.Writer, stage string) *spinner {
	return &spinner{
		w:       w,
		start:   time.Now(),
		stage:   stage,
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// run draws the first frame and animates until Stop is called or ctx is
// done.
func (s *spinner) run(ctx context.Context) {
	s.draw(spinnerFrames[0])
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 1; ; i++ {
			select {
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			case <-ticker.C:
			}
			s.draw(spinnerFrames[i%len(spinnerFrames)])
		}
	}()
}

// Stop ends the animation and clears the line. It is safe to call twice.
func (s *spinner) Stop() {
	s.once.Do(func() { close(s.stop) })
	<-s.stopped

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
}

func (s *spinner) setStage(stage string) {
	s.mu.Lock()
	s.stage = stage
	s.mu.Unlock()
}

func (s *spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.line(frame)
	s.width = max(s.width, lipgloss.Width(line))
	fmt.Fprintf(s.w, "\r%s", line)
}

// line renders the status text, e.g. "◐ Composing 12 blobs 0.3s".
func (s *spinner) line(frame string) string {
	elapsed := time.Since(s.start).Truncate(100 * time.Millisecond).Seconds()
	return fmt.Sprintf("%s %s %s",
		styleIconSpinner.Render(frame),
		StyleDim.Render(s.stage),
		StyleDim.Render(fmt.Sprintf("%.1fs", elapsed)))
}

func (s *spinner) OnComposeStart(_ context.Context, layers int, _ bool) {
	s.setStage(fmt.Sprintf("Composing %d blobs", layers))
}

func (s *spinner) OnRenderStart(_ context.Context, formats []string) {
	s.setStage("Rendering " + strings.Join(formats, ", "))
}
