package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/internal/loader"
	httpAdapter "github.com/aretw0/canopy/pkg/adapters/http"
	mcpAdapter "github.com/aretw0/canopy/pkg/adapters/mcp"
	"github.com/aretw0/canopy/pkg/observability"
	"github.com/aretw0/canopy/pkg/registry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve schemas over HTTP",
	Long: `Registers every --schema file (name=path, or just path to name it after the file)
and exposes them on POST /schemas/{name}/parse, with Prometheus metrics on /metrics.

With --mcp the schemas are served as Model Context Protocol tools
(list_schemas, parse_document) over Standard Input/Output instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, _ := cmd.Flags().GetStringArray("schema")
		port, _ := cmd.Flags().GetString("port")
		useMCP, _ := cmd.Flags().GetBool("mcp")

		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}

		promReg := prometheus.NewRegistry()
		promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(promReg)

		reg, err := buildRegistry(specs, canopy.WithLogger(logger), canopy.WithHooks(metrics.Hooks()))
		if err != nil {
			return err
		}

		if useMCP {
			// Logs go to stderr so they never corrupt JSON-RPC on stdout.
			logger.Info("starting canopy MCP server (stdio)", "schemas", reg.Names())
			return mcpAdapter.NewServer(reg, mcpAdapter.WithLogger(logger)).ServeStdio()
		}

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           httpAdapter.NewHandler(reg, httpAdapter.WithMetrics(promReg), httpAdapter.WithLogger(logger)),
			ReadHeaderTimeout: 10 * time.Second,
		}
		return serve(srv, logger, reg.Names())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringArray("schema", nil, "Schema to serve as name=path or path (repeatable)")
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Bool("mcp", false, "Serve MCP tools over stdio instead of HTTP")
}

// buildRegistry loads every schema spec. A spec is "name=path" or a bare path.
func buildRegistry(specs []string, opts ...canopy.Option) (*registry.Registry, error) {
	if len(specs) == 0 {
		return nil, errors.New("at least one --schema is required")
	}

	reg := registry.NewRegistry()
	for _, spec := range specs {
		name, path, ok := strings.Cut(spec, "=")
		if !ok {
			path = spec
			name = loader.SchemaName(spec)
		}
		if name == "" || path == "" {
			return nil, fmt.Errorf("invalid schema spec %q", spec)
		}
		if _, exists := reg.Lookup(name); exists {
			return nil, fmt.Errorf("duplicate schema name %q", name)
		}

		root, err := loader.LoadSchema(path, append(opts, canopy.WithName(name))...)
		if err != nil {
			return nil, err
		}
		reg.Register(name, root)
	}
	return reg, nil
}

func serve(srv *http.Server, logger *slog.Logger, names []string) error {
	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("starting canopy server", "addr", srv.Addr, "schemas", names)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt or terminate signals.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig.String())

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown did not complete", "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("could not stop server: %w", err)
			}
		}
		logger.Info("canopy server stopped")
		return nil
	}
}
