package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/flexdash-demo/internal/director"
	"github.com/ivlev/flexdash-demo/internal/effects"
	"github.com/ivlev/flexdash-demo/internal/scenes"
	"github.com/ivlev/flexdash-demo/internal/system"
)

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Inspect and validate presentation schedules",
	}
	cmd.AddCommand(newScheduleValidateCmd())
	cmd.AddCommand(newScheduleDumpCmd())
	return cmd
}

func newScheduleValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Check a video schedule file (or the newest one in a directory)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path := cfg.SchedulePath
			if len(args) == 1 {
				path = args[0]
			}
			s, err := videoSchedule(path)
			if err != nil {
				return err
			}
			if err := checkSchedule(s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d scenes, %s\n", len(s.Scenes), s.Total())
			return nil
		},
	}
}

// checkSchedule runs every check a host performs before playback.
func checkSchedule(s *director.Schedule) error {
	return errors.Join(
		s.Validate(),
		effects.Validate(s),
		scenes.VideoRegistry("").Validate(s),
	)
}

func newScheduleDumpCmd() *cobra.Command {
	var hero bool
	var out string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the active schedule as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			name := presentationVideo
			if hero {
				name = presentationHero
			}
			s, _, err := presentation(cfg, name)
			if err != nil {
				return err
			}

			if out != "" {
				if err := system.EnsureDir(out); err != nil {
					return err
				}
				path := director.GenerateSchedulePath(out)
				if err := director.WriteSchedule(s, path); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(s); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().BoolVar(&hero, "hero", false, "dump the generated hero schedule instead of the video script")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write a timestamped file into this directory")
	return cmd
}
