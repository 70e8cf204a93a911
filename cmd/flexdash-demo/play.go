package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"pkt.systems/pslog"

	"github.com/ivlev/flexdash-demo/internal/engine"
	"github.com/ivlev/flexdash-demo/internal/renderer"
	"github.com/ivlev/flexdash-demo/internal/storyboard"
)

func newPlayCmd() *cobra.Command {
	var which string
	var duration time.Duration
	var hz float64
	var noLoop bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play presentations in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := pslog.Ctx(ctx)
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if hz > 0 {
				cfg.TickHz = hz
			}
			if noLoop {
				cfg.Loop = false
			}

			out := newTerminalSink(cmd.OutOrStdout())
			latest := make(map[string]*engine.Latest)
			sinkFor := func(name string) engine.Sink {
				l := &engine.Latest{}
				latest[name] = l
				return engine.Fanout{out, l}
			}
			hosts, err := buildHosts(cfg, which, sinkFor,
				engine.WithLogger(logger),
				engine.WithOnLoop(func(name string, loop int64) {
					logger.Info("presentation looped", "presentation", name, "loop", loop)
				}),
			)
			if err != nil {
				return err
			}

			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}
			if err := play(ctx, hosts); err != nil {
				return err
			}
			for _, h := range hosts {
				f, n := latest[h.Name()].Frame()
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %d frames, last %s/%s at %s\n",
					h.Name(), n, f.SceneID, f.ActionID, clock(f.Elapsed))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&which, "presentation", "p", presentationAll, "presentation to play: video, hero or all")
	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "stop after this long (0 plays until interrupted)")
	cmd.Flags().Float64Var(&hz, "hz", 0, "tick rate override")
	cmd.Flags().BoolVar(&noLoop, "once", false, "play a single pass")
	return cmd
}

// play runs every host until ctx is done or all of them finished
func play(ctx context.Context, hosts []*engine.Host) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, h := range hosts {
		h.Start()
		g.Go(func() error {
			defer h.Stop()
			return h.Run(gctx)
		})
	}
	return g.Wait()
}

// terminalSink prints a line whenever a presentation enters a new action
type terminalSink struct {
	mu     sync.Mutex
	w      io.Writer
	last   map[string]string
	shownQ map[string]bool
}

func newTerminalSink(w io.Writer) *terminalSink {
	return &terminalSink{w: w, last: make(map[string]string), shownQ: make(map[string]bool)}
}

func (t *terminalSink) Publish(f renderer.Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := fmt.Sprintf("%d/%s/%s", f.Loop, f.SceneID, f.ActionID)
	if t.last[f.Presentation] == key {
		return
	}
	t.last[f.Presentation] = key
	fmt.Fprintln(t.w, describeFrame(f))

	if f.Link != "" && !t.shownQ[f.Link] {
		t.shownQ[f.Link] = true
		if qr, err := storyboard.QRText(f.Link); err == nil {
			fmt.Fprint(t.w, qr)
		}
	}
}

// describeFrame formats a one-line summary of a frame
func describeFrame(f renderer.Frame) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s %-22s %-20s %-13s", f.Presentation, clock(f.Elapsed), f.SceneID, f.ActionID, f.Phase)
	if f.URL != "" {
		fmt.Fprintf(&b, " %s", f.URL)
	}
	if f.Headline != "" {
		fmt.Fprintf(&b, " %q", f.Headline)
	}
	if f.Prompt.Typed != "" {
		fmt.Fprintf(&b, " > %s", f.Prompt.Typed)
	}
	var visible []string
	for _, e := range f.Elements {
		if e.State != renderer.StateHidden {
			visible = append(visible, e.Label+"="+e.State)
		}
	}
	if len(visible) > 0 {
		fmt.Fprintf(&b, " {%s}", strings.Join(visible, ", "))
	}
	if f.Link != "" {
		fmt.Fprintf(&b, " -> %s", f.Link)
	}
	return b.String()
}

func clock(d time.Duration) string {
	d = d.Truncate(time.Millisecond)
	m := d / time.Minute
	s := (d % time.Minute).Seconds()
	return fmt.Sprintf("%02d:%06.3f", int(m), s)
}
