package main

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/notch/internal/audio"
	"github.com/jmylchreest/notch/internal/config"
	"github.com/jmylchreest/notch/internal/daemon"
	"github.com/jmylchreest/notch/internal/dbus"
	"github.com/jmylchreest/notch/internal/display"
	"github.com/jmylchreest/notch/internal/geometry"
	"github.com/jmylchreest/notch/internal/overlay"
	"github.com/jmylchreest/notch/internal/platform"
	"github.com/jmylchreest/notch/internal/theme"
)

func runOverlay(cmd *cobra.Command, args []string) error {
	log := logger.With("run", ulid.Make().String())
	log.Info("starting notch", "version", version, "clickthrough", runOpts.clickThrough)

	app := adw.NewApplication(appID, 0)
	loop := display.Loop{}

	var (
		surface       *display.Surface
		runner        *overlay.Runner
		themeLoader   *theme.Loader
		cue           *audio.Cue
		control       *dbus.ControlServer
		configWatcher *daemon.ConfigWatcher
		running       atomic.Bool
		fatal         error
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		sig, ok := <-sigCh
		if !ok {
			return
		}
		log.Info("received signal, shutting down", "signal", sig)
		loop.Post(app.Quit)
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			log.Warn("application already running")
			return
		}
		running.Store(true)

		themeLoader = theme.NewLoader(log)
		themeLoader.Load(cfg.Appearance.Theme)
		themeLoader.Apply(nil)

		w, h, err := display.ScreenSize(nil)
		if err != nil {
			fatal = err
			log.Error("failed to read screen size", "error", err)
			app.Quit()
			return
		}
		metrics := geometry.NewMetrics(w, h)
		log.Debug("screen metrics", "screen_w", w, "screen_h", h, "base", metrics.Base)

		surface, err = display.NewSurface(&app.Application, display.Options{ClickThrough: runOpts.clickThrough}, log)
		if err != nil {
			fatal = err
			log.Error("failed to create surface", "error", err)
			app.Quit()
			return
		}

		session, err := dbus.Connect(log)
		if err != nil {
			log.Warn("session bus unavailable, media and folder features disabled", "error", err)
		}
		mpris := dbus.NewMPRIS(session, cfg.Source.Players)
		cue = audio.NewCue(cfg.Audio, log)

		ctrl := overlay.NewController(metrics, cfg, log)
		runner = overlay.NewRunner(ctrl, loop, surface, overlay.Platform{
			Source:    mpris,
			Directory: mpris,
			Launcher:  platform.NewExecLauncher(log),
			Picker:    dbus.NewPortal(session),
			Opener:    dbus.NewFileManager(session),
			Cue:       cue,
		}, log)
		runner.SetQuitCallback(app.Quit)

		surface.SetRenderer(ctrl.Scene)
		surface.SetEventHandler(runner.Dispatch)

		control = dbus.NewControlServer(session, dbus.ControlHandlers{
			Toggle: func() {
				loop.Post(func() { runner.Dispatch(overlay.ToggleRequested{}) })
			},
			Announce: func(title, detail string) {
				loop.Post(func() { runner.Dispatch(overlay.SourcePolled{Label: title, Detail: detail}) })
			},
			Quit: func() {
				loop.Post(app.Quit)
			},
		}, log)
		if err := control.Start(); err != nil {
			log.Warn("control interface unavailable", "error", err)
		} else {
			runner.SetStateCallback(func(st overlay.State) {
				if err := control.EmitStateChanged(st.String()); err != nil {
					log.Debug("failed to emit state change", "error", err)
				}
			})
		}

		configWatcher, err = daemon.NewConfigWatcher(configPath(), themeLoader.Dir(), log)
		if err != nil {
			log.Warn("failed to create config watcher", "error", err)
		} else {
			configWatcher.SetConfigCallback(func(next *config.Config) {
				loop.Post(func() {
					if next.Appearance.Theme != cfg.Appearance.Theme {
						themeLoader.Load(next.Appearance.Theme)
					}
					mpris.SetPlayers(next.Source.Players)
					cue.Apply(next.Audio)
					cfg = next
					runner.Dispatch(overlay.ConfigReloaded{Config: next})
				})
			})
			configWatcher.SetThemeCallback(func(name string) {
				loop.Post(func() {
					if name == themeLoader.Current() {
						themeLoader.Reload()
					}
				})
			})
			if err := configWatcher.Start(); err != nil {
				log.Warn("failed to start config watcher", "error", err)
			}
		}

		surface.Show()
		runner.Start()
		log.Info("notch ready", "state", ctrl.State())
	})

	app.ConnectShutdown(func() {
		log.Info("application shutting down")
		if configWatcher != nil {
			_ = configWatcher.Stop()
		}
		if runner != nil {
			runner.Stop()
		}
		if control != nil {
			_ = control.Stop()
		}
		if cue != nil {
			cue.Close()
		}
		if surface != nil {
			surface.Close()
		}
		running.Store(false)
	})

	status := app.Run([]string{os.Args[0]})
	if fatal != nil {
		return fatal
	}
	if status != 0 {
		log.Error("application exited with error", "status", status)
		os.Exit(status)
	}
	return nil
}
