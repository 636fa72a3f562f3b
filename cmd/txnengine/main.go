// Command txnengine drains an operation stream through the engine and
// writes the resulting account snapshots to standard output.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/darkcodi/txnengine/engine"
	"github.com/darkcodi/txnengine/ingest"
	"github.com/darkcodi/txnengine/report"
	"github.com/darkcodi/txnengine/storage"
	"github.com/darkcodi/txnengine/storage/ldb"
	"github.com/darkcodi/txnengine/storage/memory"
	"github.com/darkcodi/txnengine/storage/pebble"
)

var (
	backendFlag = &cli.StringFlag{
		Name:  "backend",
		Usage: "storage backend: memory, ldb or pebble",
		Value: "memory",
	}
	dbPathFlag = &cli.StringFlag{
		Name:  "db-path",
		Usage: "on-disk database directory (required for ldb/pebble)",
	}
	metricsAddrFlag = &cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "if set, serve Prometheus metrics at http://<addr>/metrics until the run completes",
	}
)

func main() {
	app := &cli.App{
		Name:  "txnengine",
		Usage: "deterministic per-client payments transaction engine",
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "drain an operation stream and print the resulting account snapshots",
				ArgsUsage: "<input-file>",
				Flags:     []cli.Flag{backendFlag, dbPathFlag, metricsAddrFlag},
				Action:    runCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCommand(c *cli.Context) error {
	inputPath := c.Args().First()
	if inputPath == "" {
		return fmt.Errorf("txnengine run: missing <input-file>")
	}

	store, closeStore, err := openBackend(c.String(backendFlag.Name), c.String(dbPathFlag.Name))
	if err != nil {
		return err
	}
	defer closeStore()

	logger := log.New(os.Stderr, "txnengine: ", log.LstdFlags)

	var opts []engine.Option
	opts = append(opts, engine.WithLogger(logger))
	if addr := c.String(metricsAddrFlag.Name); addr != "" {
		reg := prometheus.NewRegistry()
		metrics := engine.NewMetrics(reg)
		opts = append(opts, engine.WithMetrics(metrics))

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		server := &http.Server{Addr: addr, Handler: mux}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Printf("metrics server stopped: %v", err)
			}
		}()
		defer server.Close()
	}

	eng := engine.New(store, opts...)

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("txnengine run: open input: %w", err)
	}
	defer f.Close()

	ctx := context.Background()
	in := ingest.New(eng, logger)
	if err := in.Run(ctx, f); err != nil {
		return fmt.Errorf("txnengine run: %w", err)
	}

	accounts, err := eng.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("txnengine run: list accounts: %w", err)
	}
	return report.WriteAccounts(os.Stdout, accounts)
}

func openBackend(name, dbPath string) (storage.Storage, func(), error) {
	switch name {
	case "memory", "":
		s := memory.New()
		return s, func() { _ = s.Close() }, nil
	case "ldb":
		if dbPath == "" {
			return nil, nil, fmt.Errorf("txnengine run: --db-path is required for backend %q", name)
		}
		s, err := ldb.Open(dbPath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "pebble":
		if dbPath == "" {
			return nil, nil, fmt.Errorf("txnengine run: --db-path is required for backend %q", name)
		}
		s, err := pebble.Open(dbPath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("txnengine run: unknown backend %q", name)
	}
}
