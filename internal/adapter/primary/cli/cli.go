package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"pokerclock/internal/adapter/primary/tui"
	"pokerclock/internal/adapter/primary/web"
	"pokerclock/internal/adapter/secondary/repository"
	"pokerclock/internal/adapter/secondary/sound"
	"pokerclock/internal/config"
	"pokerclock/internal/domain"
	"pokerclock/internal/logging"
	"pokerclock/internal/usecase"
)

var (
	dataDir   string
	verbosity int
	settings  = config.DefaultSettings()
)

// NewRootCmd creates the root CLI command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pokerclock",
		Short:         "Poker tournament clock",
		Long:          "Blind schedule timer with a terminal clock, a web UI and preset management",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for saved tournaments and presets (default ~/.config/pokerclock)")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log detail (-v, -vv, ... up to 4)")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if dataDir != "" {
			loaded.DataDir = dataDir
		}
		settings = loaded

		count := verbosity
		if count == 0 && settings.LogLevel != "" {
			_, n, err := logging.ParseLevel(settings.LogLevel)
			if err != nil {
				return err
			}
			count = n
		}
		logging.SetVerbosity(count)
		return nil
	}

	cmd.AddCommand(
		newRunCmd(),
		newServeCmd(),
		newConfigCmd(),
		newLevelsCmd(),
		newBreakCmd(),
		newPresetCmd(),
		newValidateCmd(),
		newShellCmd(),
	)

	return cmd
}

// app bundles the adapters every command needs.
type app struct {
	repo    *repository.FileRepository
	service *usecase.TournamentService
}

func openApp() (*app, error) {
	repo, err := repository.NewFileRepository(settings.DataDir)
	if err != nil {
		return nil, err
	}
	return &app{
		repo:    repo,
		service: usecase.NewTournamentService(repo, repo, nil),
	}, nil
}

func newSoundPlayer() (domain.SoundPlayer, func()) {
	if settings.Sound == config.SoundOff {
		return sound.NewNoopPlayer(), func() {}
	}
	player := sound.NewBeepPlayer()
	if err := player.Init(); err != nil {
		logging.Warnf("audio unavailable, alerts are silent: %v", err)
	}
	return player, player.Close
}

func newSession(a *app, hooks usecase.Hooks) (*usecase.Session, func()) {
	player, closePlayer := newSoundPlayer()
	cfg := a.service.LoadCurrent()
	s := usecase.NewSession(cfg, a.repo, player, usecase.Options{
		TickInterval: settings.TickInterval,
		Hooks:        hooks,
	})
	return s, func() {
		s.Close()
		closePlayer()
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Show the tournament clock in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}

			// The clock owns the terminal, so logs go to a file.
			logPath := filepath.Join(settings.DataDir, "pokerclock.log")
			logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return err
			}
			defer logFile.Close()
			logging.SetOutput(logFile)
			defer logging.SetOutput(os.Stderr)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			session, closeSession := newSession(a, usecase.Hooks{})
			defer closeSession()
			session.Start(ctx)

			clock, err := tui.NewClock(session)
			if err != nil {
				return err
			}
			defer clock.Close()

			logging.Infof("terminal clock started")
			return clock.Run(ctx)
		},
	}
}

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the clock and serve the web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = settings.Addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			session, closeSession := newSession(a, usecase.Hooks{
				OnLevelChange: func(level int) {
					fmt.Fprintf(out, "Level %d\n", level+1)
				},
				OnTimerEnd: func() {
					fmt.Fprintln(out, "Final level finished")
				},
			})
			defer closeSession()
			session.Start(ctx)

			srv := web.NewServer(session, a.service, addr)
			fmt.Fprintf(out, "Poker clock running at http://%s\n", addr)
			logging.Infof("web UI: http://%s", addr)

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			return srv.Start()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "HTTP listen address host:port")
	return cmd
}
