package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/flexdash-demo/internal/config"
	"github.com/ivlev/flexdash-demo/internal/director"
	"github.com/ivlev/flexdash-demo/internal/engine"
	"github.com/ivlev/flexdash-demo/internal/renderer"
	"github.com/ivlev/flexdash-demo/internal/scenes"
)

// Presentation names
const (
	presentationVideo = "video"
	presentationHero  = "hero"
	presentationAll   = "all"
)

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// videoSchedule returns the schedule at path, or the built-in script
func videoSchedule(path string) (*director.Schedule, error) {
	if path == "" {
		return director.VideoSchedule()
	}
	return director.LoadSchedule(path)
}

// presentation builds the schedule and registry of a named presentation
func presentation(cfg config.Config, name string) (*director.Schedule, *renderer.Registry, error) {
	switch name {
	case presentationVideo:
		s, err := videoSchedule(cfg.SchedulePath)
		if err != nil {
			return nil, nil, err
		}
		return s, scenes.VideoRegistry(cfg.BookingURL), nil
	case presentationHero:
		return scenes.HeroSetup(scenes.HeroQuestions())
	default:
		return nil, nil, fmt.Errorf("unknown presentation %q", name)
	}
}

// buildHosts creates the hosts selected by which (video, hero or all).
// sinkFor, when set, supplies each host's frame sink.
func buildHosts(cfg config.Config, which string, sinkFor func(name string) engine.Sink, opts ...engine.Option) ([]*engine.Host, error) {
	names := []string{which}
	if which == presentationAll {
		names = []string{presentationVideo, presentationHero}
	}

	base := []engine.Option{
		engine.WithFreq(engine.Freq(cfg.TickHz)),
		engine.WithLoop(cfg.Loop),
	}
	hosts := make([]*engine.Host, 0, len(names))
	for _, name := range names {
		s, reg, err := presentation(cfg, name)
		if err != nil {
			return nil, err
		}
		hostOpts := append(base, opts...)
		if sinkFor != nil {
			hostOpts = append(hostOpts, engine.WithSink(sinkFor(name)))
		}
		h, err := engine.NewHost(name, s, reg, hostOpts...)
		if err != nil {
			return nil, fmt.Errorf("presentation %s: %w", name, err)
		}
		hosts = append(hosts, h)
	}
	return hosts, nil
}
