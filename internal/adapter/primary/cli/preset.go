package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pokerclock/internal/adapter/secondary/repository"
)

func newPresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage tournament presets",
	}
	cmd.AddCommand(
		newPresetListCmd(),
		newPresetSaveCmd(),
		newPresetLoadCmd(),
		newPresetDeleteCmd(),
		newPresetExportCmd(),
		newPresetImportCmd(),
	)
	return cmd
}

func newPresetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and saved presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			presets, err := a.service.ListPresets()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range presets {
				origin := "built-in"
				if !p.IsDefault {
					origin = "saved " + time.UnixMilli(p.CreatedAt).Format(time.DateTime)
				}
				fmt.Fprintf(out, "%-38s %-24s %2d levels  (%s)\n", p.ID, p.Name, len(p.Config.BlindLevels), origin)
			}
			return nil
		},
	}
}

func newPresetSaveCmd() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Save the current tournament as a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			preset, err := a.service.SavePreset(args[0], description, a.service.LoadCurrent())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved preset %s (%s)\n", preset.Name, preset.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "preset description")
	return cmd
}

func newPresetLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load ID",
		Short: "Make a preset the current tournament",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			cfg, err := a.service.LoadPreset(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s (%d levels)\n", cfg.Name, len(cfg.BlindLevels))
			return nil
		},
	}
}

func newPresetDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a saved preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			if err := a.service.DeletePreset(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newPresetExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export ID FILE",
		Short: "Write a preset to a YAML file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			preset, err := a.service.GetPreset(args[0])
			if err != nil {
				return err
			}
			if err := repository.ExportPresetYAML(args[1], preset); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", preset.Name, args[1])
			return nil
		},
	}
}

func newPresetImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Save a preset from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			parsed, err := repository.ImportPresetYAML(args[0])
			if err != nil {
				return err
			}
			preset, err := a.service.ImportPreset(parsed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported preset %s (%s)\n", preset.Name, preset.ID)
			return nil
		},
	}
}
