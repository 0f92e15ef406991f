package mrkit

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the next drawn frame. Files land in
// RunConfig.ScreenshotDir as <time>_f<world frame>_<label>.png. F12 queues
// one labeled "viewer".
func (v *Viewer) Screenshot(label string) {
	v.screenshotQueue = append(v.screenshotQueue, label)
}

// flushScreenshots writes every queued capture of screen. Failures are logged
// and the queue is emptied either way.
func (v *Viewer) flushScreenshots(screen *ebiten.Image) {
	if len(v.screenshotQueue) == 0 {
		return
	}
	defer func() { v.screenshotQueue = v.screenshotQueue[:0] }()

	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	stamp := time.Now().Format("20060102_150405")
	for i, label := range v.screenshotQueue {
		path := screenshotPath(v.cfg.ScreenshotDir, stamp, v.world.frame, label, i)
		if err := savePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[mrkit] screenshot %q: %v\n", label, err)
			continue
		}
		_, _ = fmt.Fprintf(os.Stderr, "[mrkit] screenshot: %s\n", path)
	}
}

// unpremultiply converts ebiten's premultiplied RGBA pixels to straight alpha.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, pixels)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := int(img.Pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for c := i; c < i+3; c++ {
			img.Pix[c] = uint8(min(int(img.Pix[c])*255/a, 255))
		}
	}
	return img
}

// screenshotPath names the i-th capture of a frame. Later captures of the
// same frame get a numeric suffix.
func screenshotPath(dir, stamp string, frame uint64, label string, i int) string {
	name := fmt.Sprintf("%s_f%d_%s", stamp, frame, sanitizeLabel(label))
	if i > 0 {
		name = fmt.Sprintf("%s_%d", name, i)
	}
	return filepath.Join(dir, name+".png")
}

// savePNG creates the parent directory and encodes img there.
func savePNG(path string, img image.Image) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create screenshot dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel lowercases label and turns every run of characters outside
// [a-z0-9.-] into a single underscore. Empty results become "unlabeled".
func sanitizeLabel(label string) string {
	var b strings.Builder
	gap := false
	for _, r := range strings.ToLower(label) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '.' {
			if gap && b.Len() > 0 {
				b.WriteByte('_')
			}
			gap = false
			b.WriteRune(r)
			continue
		}
		gap = true
	}
	if b.Len() == 0 {
		return "unlabeled"
	}
	return b.String()
}
