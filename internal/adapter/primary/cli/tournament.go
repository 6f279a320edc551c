package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"pokerclock/internal/domain"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the current tournament",
	}
	cmd.AddCommand(newConfigGetCmd(), newConfigSetCmd(), newConfigResetCmd())
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the current tournament as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			cfg := a.service.LoadCurrent()

			bc := cfg.BreakConfig
			display := map[string]any{
				"name":                 cfg.Name,
				"startingChips":        cfg.StartingChips,
				"levels":               len(cfg.BlindLevels),
				"currentLevel":         cfg.CurrentLevel + 1,
				"defaultLevelDuration": domain.FormatTime(cfg.DefaultLevelDuration),
				"soundAlertsEnabled":   cfg.SoundAlertsEnabled,
				"breaks": map[string]any{
					"enabled":      bc.Enabled,
					"duration":     domain.FormatTime(bc.Duration),
					"everyNLevels": bc.EveryNLevels,
					"atLevels":     domain.BreakLevels(cfg),
				},
			}
			if cfg.Description != "" {
				display["description"] = cfg.Description
			}

			out, _ := json.MarshalIndent(display, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var (
		name        string
		description string
		chips       int
		duration    string
		soundFlag   string
		level       int
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change tournament settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			cfg := a.service.LoadCurrent()

			if cmd.Flags().Changed("name") {
				cfg = cfg.WithName(name)
			}
			if cmd.Flags().Changed("description") {
				cfg = cfg.WithDescription(description)
			}
			if cmd.Flags().Changed("chips") {
				cfg = cfg.WithStartingChips(chips)
			}
			if cmd.Flags().Changed("default-duration") {
				secs, err := parseClock(duration)
				if err != nil {
					return err
				}
				cfg = cfg.WithDefaultLevelDuration(secs)
			}
			if cmd.Flags().Changed("sound") {
				enabled, err := strconv.ParseBool(soundFlag)
				if err != nil {
					return errors.New("--sound takes true or false")
				}
				cfg = cfg.WithSoundAlerts(enabled)
			}
			if cmd.Flags().Changed("level") {
				if !domain.HasLevel(cfg, level-1) {
					return fmt.Errorf("%w: %d", domain.ErrLevelOutOfRange, level)
				}
				cfg = cfg.WithCurrentLevel(level - 1)
			}

			if err := a.service.SaveCurrent(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s, %d chips, %d levels\n", cfg.Name, cfg.StartingChips, len(cfg.BlindLevels))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "tournament name")
	cmd.Flags().StringVar(&description, "description", "", "free-form description")
	cmd.Flags().IntVar(&chips, "chips", 0, "starting chips per player")
	cmd.Flags().StringVar(&duration, "default-duration", "", "duration for new levels, e.g. 10:00 or 600")
	cmd.Flags().StringVar(&soundFlag, "sound", "", "true/false to toggle alert sounds")
	cmd.Flags().IntVar(&level, "level", 1, "current level (1-based)")
	return cmd
}

func newConfigResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard the current tournament and start from defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			cfg, err := a.service.ResetCurrent()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset to %s (%d levels)\n", cfg.Name, len(cfg.BlindLevels))
			return nil
		},
	}
}

func newLevelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Edit the blind schedule",
	}
	cmd.AddCommand(newLevelsListCmd(), newLevelsAddCmd(), newLevelsRemoveCmd(), newLevelsSetCmd())
	return cmd
}

func newLevelsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the blind schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			printLevels(cmd.OutOrStdout(), a.service.LoadCurrent())
			return nil
		},
	}
}

type levelFlags struct {
	small, big, ante int
	duration         string
}

func (f *levelFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.small, "small", 0, "small blind")
	cmd.Flags().IntVar(&f.big, "big", 0, "big blind")
	cmd.Flags().IntVar(&f.ante, "ante", 0, "ante")
	cmd.Flags().StringVar(&f.duration, "duration", "", "level duration, e.g. 15:00 or 900")
}

// apply overlays the flags the user actually passed onto lvl.
func (f *levelFlags) apply(cmd *cobra.Command, lvl domain.BlindLevel) (domain.BlindLevel, error) {
	if cmd.Flags().Changed("small") {
		lvl.SmallBlind = f.small
	}
	if cmd.Flags().Changed("big") {
		lvl.BigBlind = f.big
	}
	if cmd.Flags().Changed("ante") {
		lvl.Ante = f.ante
	}
	if cmd.Flags().Changed("duration") {
		secs, err := parseClock(f.duration)
		if err != nil {
			return lvl, err
		}
		lvl.Duration = secs
	}
	return lvl, nil
}

func newLevelsAddCmd() *cobra.Command {
	var flags levelFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a level (blinds grow 1.5x unless given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			cfg := a.service.LoadCurrent().AppendLevel()
			last := len(cfg.BlindLevels) - 1
			lvl, err := flags.apply(cmd, cfg.BlindLevels[last])
			if err != nil {
				return err
			}
			if cfg, err = cfg.ReplaceLevel(last, lvl); err != nil {
				return err
			}
			if err := a.service.SaveCurrent(cfg); err != nil {
				return err
			}
			printLevels(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newLevelsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove LEVEL",
		Short: "Remove a level (1-based)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid level %q", args[0])
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			cfg, err := a.service.LoadCurrent().RemoveLevel(n - 1)
			if err != nil {
				return err
			}
			if err := a.service.SaveCurrent(cfg); err != nil {
				return err
			}
			printLevels(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

func newLevelsSetCmd() *cobra.Command {
	var flags levelFlags
	cmd := &cobra.Command{
		Use:   "set LEVEL",
		Short: "Change blinds, ante or duration of a level (1-based)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid level %q", args[0])
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			cfg := a.service.LoadCurrent()
			if !domain.HasLevel(cfg, n-1) {
				return fmt.Errorf("%w: %d", domain.ErrLevelOutOfRange, n)
			}
			lvl, err := flags.apply(cmd, cfg.BlindLevels[n-1])
			if err != nil {
				return err
			}
			if cfg, err = cfg.ReplaceLevel(n-1, lvl); err != nil {
				return err
			}
			if err := a.service.SaveCurrent(cfg); err != nil {
				return err
			}
			printLevels(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newBreakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break",
		Short: "Configure scheduled breaks",
	}
	cmd.AddCommand(newBreakSetCmd())
	return cmd
}

func newBreakSetCmd() *cobra.Command {
	var (
		enabled  string
		duration string
		every    int
		at       []int
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the break policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			cfg := a.service.LoadCurrent()
			bc := cfg.BreakConfig

			if cmd.Flags().Changed("enabled") {
				on, err := strconv.ParseBool(enabled)
				if err != nil {
					return errors.New("--enabled takes true or false")
				}
				bc.Enabled = on
			}
			if cmd.Flags().Changed("duration") {
				secs, err := parseClock(duration)
				if err != nil {
					return err
				}
				bc.Duration = secs
			}
			if cmd.Flags().Changed("every") {
				bc.EveryNLevels = every
			}
			if cmd.Flags().Changed("at") {
				bc.SpecificLevels = append([]int{}, at...)
			}

			cfg = cfg.WithBreakConfig(bc)
			if err := a.service.SaveCurrent(cfg); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !bc.Enabled {
				fmt.Fprintln(out, "Breaks disabled")
				return nil
			}
			fmt.Fprintf(out, "Breaks of %s after levels %v\n", domain.FormatTime(bc.Duration), domain.BreakLevels(cfg))
			return nil
		},
	}
	cmd.Flags().StringVar(&enabled, "enabled", "", "true/false to turn breaks on or off")
	cmd.Flags().StringVar(&duration, "duration", "", "break length, e.g. 5:00 or 300")
	cmd.Flags().IntVar(&every, "every", 0, "break after every N levels (0 turns the rule off)")
	cmd.Flags().IntSliceVar(&at, "at", nil, "break after these levels, e.g. --at 4,8")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the current tournament for problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			cfg := a.service.LoadCurrent()
			problems := cfg.Problems()
			out := cmd.OutOrStdout()
			if len(problems) == 0 {
				fmt.Fprintln(out, "OK")
				return nil
			}
			for _, p := range problems {
				fmt.Fprintln(out, "-", p)
			}
			return cfg.Validate()
		},
	}
}

func printLevels(w io.Writer, cfg domain.TournamentConfig) {
	if len(cfg.BlindLevels) == 0 {
		fmt.Fprintln(w, "No blind levels configured")
		return
	}
	fmt.Fprintf(w, "%-6s %8s %8s %8s %8s\n", "LEVEL", "SMALL", "BIG", "ANTE", "TIME")
	for i, l := range cfg.BlindLevels {
		marker := " "
		if i == cfg.CurrentLevel {
			marker = "*"
		}
		brk := ""
		if domain.ShouldBreakAtLevel(cfg, i) {
			brk = "  break"
		}
		fmt.Fprintf(w, "%s%-5d %8d %8d %8d %8s%s\n", marker, l.Level, l.SmallBlind, l.BigBlind, l.Ante, domain.FormatTime(l.Duration), brk)
	}
}

// parseClock accepts "MM:SS" or plain seconds.
func parseClock(s string) (int, error) {
	var m, sec int
	if n, err := fmt.Sscanf(s, "%d:%d", &m, &sec); err == nil && n == 2 {
		if m < 0 || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return domain.MinutesAndSecondsToSeconds(m, sec), nil
	}
	secs, err := strconv.Atoi(s)
	if err != nil || secs < 0 {
		return 0, fmt.Errorf("invalid duration %q (use MM:SS or seconds)", s)
	}
	return secs, nil
}
