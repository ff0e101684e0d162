package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-apm-agent-config/internal/agentconfig"
	"github.com/MKhiriev/go-apm-agent-config/internal/config"
	handler "github.com/MKhiriev/go-apm-agent-config/internal/handler/http"
	"github.com/MKhiriev/go-apm-agent-config/internal/logger"
	"github.com/MKhiriev/go-apm-agent-config/internal/server"
	"github.com/MKhiriev/go-apm-agent-config/internal/source"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// settingsProvider is a Provider that can be re-read on demand and released.
type settingsProvider interface {
	source.Provider
	Reload() error
	Close() error
}

// memoryProvider serves environment-only setups. Reload has nothing to read.
type memoryProvider struct {
	*source.Memory
}

func (memoryProvider) Reload() error { return errNoSettingsFile }
func (memoryProvider) Close() error  { return nil }

var errNoSettingsFile = errors.New("no settings file configured")

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger(config.DefaultLogRole).Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger(cfg.Log.Role)
	log.Debug().Any("config", cfg).Msg("received configs")

	provider, err := openProvider(cfg.Settings, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening settings")
	}
	defer func() {
		if err := provider.Close(); err != nil {
			log.Error().Err(err).Msg("error closing settings provider")
		}
	}()

	reader := agentconfig.NewReader(provider, source.OSEnvironment{}, log)
	defer reader.Close()

	// Everything the agent logs from here on follows the configured level.
	agentLog := log.WithLevelFunc(reader.ZerologLevel)
	agentLog.Info().
		Stringer("log_level", reader.LogLevel()).
		Any("config", reader.Snapshot()).
		Msg("resolved agent configuration")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	hangup := make(chan os.Signal, 1)
	signal.Notify(hangup, syscall.SIGHUP)
	defer signal.Stop(hangup)
	go reloadOnSignal(ctx, hangup, provider, agentLog)

	if cfg.Debug.Address == "" {
		<-ctx.Done()
		agentLog.Info().Msg("agent stopped")
		return
	}

	router := handler.NewHandler(reader, cfg.Debug.RequestTimeout, agentLog).Init()
	srv, err := server.NewServer(router, cfg.Debug, agentLog)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err := srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("error running server")
	}
}

// openProvider opens the settings file, or an empty in-memory provider when
// none is configured.
func openProvider(cfg config.Settings, log *logger.Logger) (settingsProvider, error) {
	if cfg.File == "" {
		log.Info().Msg("no settings file configured, using environment variables only")
		return memoryProvider{source.NewMemory(nil)}, nil
	}

	provider, err := source.OpenFile(cfg.File, log)
	if err != nil {
		return nil, err
	}

	if cfg.Watch {
		if err := provider.StartWatching(); err != nil {
			_ = provider.Close()
			return nil, err
		}
	}

	return provider, nil
}

// reloadOnSignal re-reads the settings on every value received from signals
// until ctx is done.
func reloadOnSignal(ctx context.Context, signals <-chan os.Signal, provider settingsProvider, log *logger.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-signals:
			if err := provider.Reload(); err != nil {
				log.Warn().Err(err).Stringer("signal", sig).Msg("settings not reloaded")
				continue
			}
			log.Info().Stringer("signal", sig).Msg("settings reloaded")
		}
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
