package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"voicetype/config"
	"voicetype/internal/application"
	"voicetype/internal/infra/audio"
	"voicetype/internal/infra/inject"
	"voicetype/internal/infra/notify"
	"voicetype/internal/infra/openai"
	"voicetype/internal/infra/pidfile"
	"voicetype/internal/infra/trigger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	sendToggle := flag.Bool("toggle", false, "toggle the running daemon and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	if *sendToggle {
		if err := signalToggle(cfg.Daemon.PidFile); err != nil {
			slog.Error("delivering toggle", "error", err)
			os.Exit(1)
		}
		return
	}

	logger := setupLogger(cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := pidfile.Write(cfg.Daemon.PidFile); err != nil {
		logger.Error("writing pidfile", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := pidfile.Remove(cfg.Daemon.PidFile); err != nil {
			logger.Warn("removing pidfile", "error", err)
		}
	}()

	format := application.AudioFormat{
		SampleRate: cfg.Audio.SampleRate,
		Channels:   1,
		BitDepth:   16,
	}
	capture := audio.NewMicrophone(format, cfg.Audio.FramesPerBuffer, logger)
	whisper := openai.NewWhisperClient(openai.WhisperConfig{
		APIKey:   cfg.OpenAI.APIKey,
		Model:    cfg.OpenAI.Model,
		Language: cfg.OpenAI.Language,
		BaseURL:  cfg.OpenAI.BaseURL,
	})
	injector := createInjector(cfg.Inject, logger)

	var notifier application.Notifier
	if cfg.Notify.Desktop {
		notifier = notify.NewDesktop()
	} else {
		notifier = &application.NoopNotifier{}
	}

	controller := application.NewController(capture, whisper, injector, notifier, format, logger)

	// SIGUSR1 toggles; SIGINT/SIGTERM shut down.
	toggleCh := make(chan os.Signal, 1)
	signal.Notify(toggleCh, syscall.SIGUSR1)
	go func() {
		for range toggleCh {
			controller.Toggle()
		}
	}()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	if cfg.Trigger.HTTPAddr != "" {
		httpTrigger := trigger.NewHTTPTrigger(
			cfg.Trigger.HTTPAddr,
			cfg.Trigger.AuthToken,
			controller.Toggle,
			func() string { return controller.State().String() },
			logger,
		)
		if err := httpTrigger.Start(ctx); err != nil {
			logger.Error("starting HTTP trigger", "error", err)
			os.Exit(1)
		}
		defer httpTrigger.Stop()
	}

	logger.Info("voicetyped started",
		"pid", os.Getpid(),
		"inject_strategy", cfg.Inject.Strategy,
	)
	logger.Info("toggle recording",
		"hint", fmt.Sprintf("voicetyped -toggle (or kill -USR1 %d)", os.Getpid()),
	)

	if err := controller.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("controller error", "error", err)
		os.Exit(1)
	}
}

func createInjector(cfg config.InjectConfig, logger *slog.Logger) application.TextInjector {
	switch cfg.Strategy {
	case "type":
		return inject.NewTyper(cfg.TypeCommand, logger)
	case "clipboard":
		return inject.NewClipboardPaster(cfg.PasteCommand, cfg.RestoreClipboard, logger)
	default:
		logger.Warn("unknown inject strategy, using clipboard", "strategy", cfg.Strategy)
		return inject.NewClipboardPaster(cfg.PasteCommand, cfg.RestoreClipboard, logger)
	}
}

// signalToggle delivers one toggle to the daemon recorded in the pidfile.
func signalToggle(pidPath string) error {
	pid, err := pidfile.Read(pidPath)
	if err != nil {
		return err
	}
	if err := syscall.Kill(pid, syscall.SIGUSR1); err != nil {
		return fmt.Errorf("signaling pid %d: %w", pid, err)
	}
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
