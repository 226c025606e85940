package nodeflow

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"
)

// Screenshot queues a labeled screenshot to be captured at the end of the
// current frame's Draw call. The resulting PNG is written to ScreenshotDir
// with a timestamped filename. Safe to call from Update or Draw.
func (v *GraphView) Screenshot(label string) {
	v.screenshotQueue = append(v.screenshotQueue, label)
}

// flushScreenshots renders the frame's commands once and writes a PNG for
// every queued label. Called at the end of GraphView.Draw.
func (v *GraphView) flushScreenshots(cmds []RenderCommand) {
	if len(v.screenshotQueue) == 0 {
		return
	}
	defer func() { v.screenshotQueue = v.screenshotQueue[:0] }()

	if err := os.MkdirAll(v.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(v.logOut, "[nodeflow] screenshot: mkdir %s: %v\n", v.ScreenshotDir, err)
		return
	}

	img, err := Snapshot(cmds, v.config.Width, v.config.Height, v.config.ClearColor)
	if err != nil {
		_, _ = fmt.Fprintf(v.logOut, "[nodeflow] screenshot: %v\n", err)
		return
	}

	stamp := time.Now().Format("20060102_150405")
	for _, label := range v.screenshotQueue {
		path := filepath.Join(v.ScreenshotDir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := gg.SavePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(v.logOut, "[nodeflow] screenshot: %s: %v\n", path, err)
		}
	}
}

// sanitizeLabel maps a label to a file-name-safe form. Anything other than
// ASCII letters, digits, '-' and '.' becomes '_'; a blank label is
// "unlabeled".
func sanitizeLabel(label string) string {
	if label = strings.TrimSpace(label); label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '.' || ('0' <= r && r <= '9') ||
			('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			return r
		}
		return '_'
	}, label)
}
