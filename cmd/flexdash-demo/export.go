package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/ivlev/flexdash-demo/internal/config"
	"github.com/ivlev/flexdash-demo/internal/storyboard"
	"github.com/ivlev/flexdash-demo/internal/video"
)

// applyPreset overrides the export size with a named aspect preset.
func applyPreset(cfg *config.ExportConfig, preset string) error {
	switch preset {
	case "":
	case "16:9":
		cfg.Width, cfg.Height = 1280, 720
	case "9:16":
		cfg.Width, cfg.Height = 720, 1280
	case "4:5":
		cfg.Width, cfg.Height = 1080, 1350
	default:
		return fmt.Errorf("unknown preset %q (want 16:9, 9:16 or 4:5)", preset)
	}
	return nil
}

func newExportCmd() *cobra.Command {
	var which, preset, ffmpeg string
	var frames bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render one pass of a presentation to PNG frames and video",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := pslog.Ctx(ctx)
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if which == presentationAll {
				return fmt.Errorf("export renders a single presentation, pick video or hero")
			}
			if err := exportFlags(cmd, &cfg.Export); err != nil {
				return err
			}
			if err := applyPreset(&cfg.Export, preset); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			hosts, err := buildHosts(cfg, which, nil)
			if err != nil {
				return err
			}
			h := hosts[0]

			ex := &storyboard.Exporter{
				Raster:  storyboard.NewRasterizer(cfg.Export.Width, cfg.Export.Height),
				FPS:     cfg.Export.FPS,
				Workers: cfg.Export.Workers,
				Logger:  logger.With("presentation", h.Name()),
			}
			if frames {
				ex.Dir = cfg.Export.Dir
			}

			var stream video.Stream
			if cfg.Export.Encode {
				enc := &video.FFmpegEncoder{Binary: ffmpeg}
				codec := cfg.Export.Encoder
				if codec == "" {
					codec = video.BestH264Encoder(ctx, ffmpeg)
				}
				logger.Info("encoding video", "output", cfg.Export.Output, "codec", codec)
				stream, err = enc.Open(ctx, video.Params{
					Width:   cfg.Export.Width,
					Height:  cfg.Export.Height,
					FPS:     cfg.Export.FPS,
					Output:  cfg.Export.Output,
					Codec:   codec,
					Quality: cfg.Export.Quality,
				})
				if err != nil {
					return err
				}
				ex.Stream = stream
			}
			if ex.Dir == "" && ex.Stream == nil {
				return fmt.Errorf("nothing to write: enable --frames or --encode")
			}

			res, err := ex.Export(ctx, h)
			if stream != nil {
				if cerr := stream.Close(); err == nil {
					err = cerr
				}
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d frames (%s) in %s\n", h.Name(), res.Frames, res.Duration, res.Elapsed.Round(time.Millisecond))
			if ex.Dir != "" {
				fmt.Fprintf(out, "frames: %s\n", ex.Dir)
			}
			if stream != nil {
				fmt.Fprintf(out, "video: %s\n", cfg.Export.Output)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&which, "presentation", "p", presentationVideo, "presentation to export: video or hero")
	f.StringVar(&preset, "preset", "", "aspect preset: 16:9, 9:16 or 4:5")
	f.StringVar(&ffmpeg, "ffmpeg", "", "ffmpeg binary (default ffmpeg from PATH)")
	f.BoolVar(&frames, "frames", true, "write PNG frames to the export directory")
	f.String("dir", "", "frame directory (overrides export.dir)")
	f.String("output", "", "video file (overrides export.output)")
	f.Int("fps", 0, "frames per second (overrides export.fps)")
	f.Int("width", 0, "frame width (overrides export.width)")
	f.Int("height", 0, "frame height (overrides export.height)")
	f.Int("workers", 0, "render workers, 0 = one per CPU (overrides export.workers)")
	f.Bool("encode", false, "encode a video with ffmpeg (overrides export.encode)")
	f.String("encoder", "", "ffmpeg video encoder (overrides export.encoder)")
	f.Int("quality", 0, "CRF for x264/x265, bitrate multiplier for hardware encoders (overrides export.quality)")
	return cmd
}

// exportFlags copies explicitly set flags over the loaded config.
func exportFlags(cmd *cobra.Command, cfg *config.ExportConfig) error {
	f := cmd.Flags()
	var err error
	set := func(name string, apply func() error) {
		if err == nil && f.Changed(name) {
			err = apply()
		}
	}
	set("dir", func() (e error) { cfg.Dir, e = f.GetString("dir"); return })
	set("output", func() (e error) { cfg.Output, e = f.GetString("output"); return })
	set("fps", func() (e error) { cfg.FPS, e = f.GetInt("fps"); return })
	set("width", func() (e error) { cfg.Width, e = f.GetInt("width"); return })
	set("height", func() (e error) { cfg.Height, e = f.GetInt("height"); return })
	set("workers", func() (e error) { cfg.Workers, e = f.GetInt("workers"); return })
	set("encode", func() (e error) { cfg.Encode, e = f.GetBool("encode"); return })
	set("encoder", func() (e error) { cfg.Encoder, e = f.GetString("encoder"); return })
	set("quality", func() (e error) { cfg.Quality, e = f.GetInt("quality"); return })
	return err
}
