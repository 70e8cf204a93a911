package storyboard

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
	"pkt.systems/pslog"

	"github.com/ivlev/flexdash-demo/internal/renderer"
	"github.com/ivlev/flexdash-demo/internal/system"
	"github.com/ivlev/flexdash-demo/internal/video"
)

// Source renders any presentation time without side effects
type Source interface {
	FrameAt(t time.Duration) renderer.Frame
	Total() time.Duration
}

// Exporter renders one pass of a presentation at a fixed frame rate
type Exporter struct {
	Raster  *Rasterizer
	FPS     int
	Workers int          // 0 = one per CPU
	Dir     string       // PNG frames go here when set
	Stream  video.Stream // Frames are streamed here in order when set
	Logger  pslog.Logger
}

// Result summarises an export
type Result struct {
	Frames   int
	Duration time.Duration
	Elapsed  time.Duration
}

// FrameCount returns how many frames cover total at fps.
func FrameCount(total time.Duration, fps int) int {
	if fps <= 0 || total <= 0 {
		return 0
	}
	frames := int64(total) * int64(fps)
	return int((frames + int64(time.Second) - 1) / int64(time.Second))
}

// Export rasterises frames in parallel batches; each batch is written to
// the stream in presentation order before the next starts.
func (e *Exporter) Export(ctx context.Context, src Source) (Result, error) {
	start := time.Now()
	logger := e.Logger
	if logger == nil {
		logger = pslog.Ctx(ctx)
	}

	total := FrameCount(src.Total(), e.FPS)
	if total == 0 {
		return Result{}, fmt.Errorf("nothing to export at %d fps", e.FPS)
	}
	if e.Dir != "" {
		if err := system.EnsureDir(e.Dir); err != nil {
			return Result{}, err
		}
	}

	workers := system.Workers(ctx, e.Workers, total)
	batch := workers * 2
	logger.Info("storyboard export started", "frames", total, "fps", e.FPS, "workers", workers)

	images := make([]*image.RGBA, batch)
	for first := 0; first < total; first += batch {
		n := min(batch, total-first)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for k := 0; k < n; k++ {
			idx := first + k
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				img, err := e.Raster.Draw(src.FrameAt(frameTime(idx, e.FPS)))
				if err != nil {
					return fmt.Errorf("frame %d: %w", idx, err)
				}
				images[k] = img
				if e.Dir != "" {
					return writePNG(filepath.Join(e.Dir, FrameName(idx)), img)
				}
				return nil
			})
		}
		err := g.Wait()

		for k := 0; k < n; k++ {
			if err == nil && e.Stream != nil {
				if werr := e.Stream.WriteFrame(images[k]); werr != nil {
					err = fmt.Errorf("frame %d: %w", first+k, werr)
				}
			}
			if images[k] != nil {
				system.PutImage(images[k])
				images[k] = nil
			}
		}
		if err != nil {
			return Result{}, err
		}
		logger.Debug("storyboard batch done", "done", first+n, "frames", total)
	}

	res := Result{
		Frames:   total,
		Duration: src.Total(),
		Elapsed:  time.Since(start),
	}
	pool := system.ImageStats()
	logger.Info("storyboard export finished", "frames", res.Frames, "elapsed", res.Elapsed.String(),
		"buffers_allocated", pool.Allocated, "buffers_reused", pool.Reused)
	return res, nil
}

// FrameName is the file name of the i-th exported frame.
func FrameName(i int) string {
	return fmt.Sprintf("frame_%05d.png", i)
}

func frameTime(i, fps int) time.Duration {
	return time.Duration(i) * time.Second / time.Duration(fps)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
