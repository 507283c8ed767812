package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"translator-backend/internal/cli"
	"translator-backend/internal/config"
	"translator-backend/internal/httpapi"
	"translator-backend/internal/logging"
	"translator-backend/internal/store"
	"translator-backend/internal/translation"
)

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	host := fs.String("host", "0.0.0.0", "Host interface to bind")
	port := fs.Int("port", 0, "HTTP port (0 uses PORT from the environment)")
	readTimeout := fs.Duration("read-timeout", 10*time.Second, "HTTP read timeout")
	writeTimeout := fs.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	shutdownTimeout := fs.Duration("shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *port < 0 || *port > 65535 {
		fmt.Fprintln(os.Stderr, "--port must be between 0 and 65535")
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	// The document store is optional: without DATABASE_URL the translation
	// proxy still serves and the theme endpoints report storage as
	// unavailable.
	var themeStore store.Store
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoStore, storeErr := store.Connect(dbCtx, cfg.DatabaseURL, cfg.DatabaseName)
		dbCancel()
		if storeErr != nil {
			logger.Warn().Err(storeErr).Msg("document store unavailable, theme endpoints disabled")
		} else {
			themeStore = mongoStore
			defer func() {
				closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer closeCancel()
				if closeErr := mongoStore.Close(closeCtx); closeErr != nil {
					logger.Error().Err(closeErr).Msg("close document store failed")
				}
			}()
		}
	} else {
		logger.Warn().Msg("DATABASE_URL is not set, theme endpoints disabled")
	}

	provider := translation.NewLibreProvider(cfg.TranslateURL, cfg.TranslateTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		cancel()
	}()

	resolvedPort := *port
	if resolvedPort == 0 {
		resolvedPort = cfg.Port
	}

	srv := httpapi.NewServer(provider, themeStore, logger, httpapi.Options{
		Host:            *host,
		Port:            resolvedPort,
		ReadTimeout:     *readTimeout,
		WriteTimeout:    *writeTimeout,
		ShutdownTimeout: *shutdownTimeout,
	})

	if err := srv.Start(ctx); err != nil {
		logger.Error().Err(err).Str("host", *host).Int("port", resolvedPort).Msg("server failed")
		fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		return 1
	}

	return 0
}
