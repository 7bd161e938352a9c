package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/soheilhy/cmux"
	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"
	"gopkg.in/natefinch/lumberjack.v2"

	"inferd/internal/config"
	"inferd/internal/grpcapi"
	"inferd/internal/httpapi"
	"inferd/internal/manager"
	"inferd/internal/repository"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "inferd",
		Short:         "Inference-serving runtime with batched model workers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(buildServeCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	})
	return root
}

func buildServeCmd() *cobra.Command {
	var (
		cfgPath string
		cfg     config.Config
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP+gRPC server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				fileCfg, err := config.Load(cfgPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				merged := fileCfg
				// flags explicitly set override the file
				if cmd.Flags().Changed("addr") {
					merged.Addr = cfg.Addr
				}
				if cmd.Flags().Changed("repository-dir") {
					merged.RepositoryDir = cfg.RepositoryDir
				}
				if cmd.Flags().Changed("load-existing") {
					merged.LoadExisting = cfg.LoadExisting
				}
				if cmd.Flags().Changed("monitor") {
					merged.Monitor = cfg.Monitor
				}
				if cmd.Flags().Changed("log-level") {
					merged.LogLevel = cfg.LogLevel
				}
				if cmd.Flags().Changed("log-file") {
					merged.LogFile = cfg.LogFile
				}
				if merged.Addr == "" {
					merged.Addr = cfg.Addr
				}
				cfg = merged
			}
			return serve(cfg)
		},
	}

	defaultAddr := ":8998"
	if v := os.Getenv("INFERD_ADDR"); v != "" {
		defaultAddr = v
	}
	cmd.Flags().StringVar(&cfgPath, "config", os.Getenv("INFERD_CONFIG"), "Path to config file (.yaml/.json/.toml)")
	cmd.Flags().StringVar(&cfg.Addr, "addr", defaultAddr, "Listen address for HTTP and gRPC, e.g. :8998")
	cmd.Flags().StringVar(&cfg.RepositoryDir, "repository-dir", os.Getenv("INFERD_REPOSITORY"), "Model repository directory")
	cmd.Flags().BoolVar(&cfg.LoadExisting, "load-existing", false, "Load models already present in the repository at startup")
	cmd.Flags().BoolVar(&cfg.Monitor, "monitor", false, "Watch the repository for model config changes")
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug|info|warn|error")
	cmd.Flags().StringVar(&cfg.LogFile, "log-file", "", "Write rotated logs to this file instead of stderr")
	return cmd
}

func buildLogger(cfg config.Config) zerolog.Logger {
	var sink io.Writer = os.Stderr
	if cfg.LogFile != "" {
		sink = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    100, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
		}
	}
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	return zerolog.New(sink).Level(level).With().Timestamp().Logger()
}

func serve(cfg config.Config) error {
	logger := buildLogger(cfg)
	httpapi.SetLogger(logger)
	if cfg.MaxBodyBytes > 0 {
		httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	}
	httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders)

	mgr := manager.New(manager.Config{
		RepositoryDir: cfg.RepositoryDir,
		Version:       version,
		Logger:        logger,
	})

	var watcher *repository.Watcher
	if cfg.RepositoryDir != "" && (cfg.Monitor || cfg.LoadExisting) {
		var err error
		watcher, err = repository.NewWatcher(cfg.RepositoryDir, mgr, logger)
		if err != nil {
			return fmt.Errorf("repository watcher: %w", err)
		}
		if cfg.LoadExisting {
			watcher.LoadExisting()
		}
		if !cfg.Monitor {
			_ = watcher.Close()
			watcher = nil
		}
	}

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	// one port, two protocols: gRPC is matched on its content-type,
	// everything else falls through to HTTP
	mux := cmux.New(listener)
	grpcListener := mux.MatchWithWriters(cmux.HTTP2MatchHeaderFieldSendSettings("content-type", "application/grpc"))
	httpListener := mux.Match(cmux.Any())

	grpcServer := grpcapi.NewGRPCServer(mgr, logger)
	httpServer := &http.Server{Handler: httpapi.NewMux(mgr)}

	errs := make(chan error, 3)
	go func() { errs <- grpcServer.Serve(grpcListener) }()
	go func() { errs <- httpServer.Serve(httpListener) }()
	go func() { errs <- mux.Serve() }()

	logger.Info().Str("addr", cfg.Addr).Str("repository", cfg.RepositoryDir).Msg("inferd listening")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-stop:
	case err := <-errs:
		if err != nil && !isClosedErr(err) {
			logger.Error().Err(err).Msg("server error")
		}
	}

	// stop accepting new requests, then drain workers, then the pool
	if watcher != nil {
		_ = watcher.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	grpcServer.GracefulStop()
	mgr.Shutdown()
	return nil
}

func isClosedErr(err error) bool {
	return err == cmux.ErrServerClosed || err == http.ErrServerClosed ||
		strings.Contains(err.Error(), "use of closed network connection")
}
