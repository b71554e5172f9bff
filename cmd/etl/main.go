package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"

	"github.com/sousselabs/storelake/pkg/etl"
	"github.com/sousselabs/storelake/pkg/logger"
	"github.com/sousselabs/storelake/pkg/metrics"
	"github.com/sousselabs/storelake/pkg/sink"
	"github.com/sousselabs/storelake/pkg/source"
)

var (
	// Set by LDFLAGS
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	defaultMongoDatabase = "applestoresousse"
	defaultWarehousePath = ".tmp/warehouse/storelake.duckdb"
	defaultExportDir     = "./dw_export"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	verboseFlag := flag.Bool("verbose", false, "enable verbose (debug) logging")
	showVersionFlag := flag.Bool("version", false, "print version and exit")
	metricsAddrFlag := flag.String("metrics-addr", "", "Address to listen on for prometheus metrics (empty to disable)")

	mongoURIFlag := flag.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI (or set MONGO_URI env var)")
	mongoDatabaseFlag := flag.String("mongo-database", defaultMongoDatabase, "MongoDB database name (or set MONGO_DATABASE env var)")

	warehouseURIFlag := flag.String("warehouse-uri", defaultWarehousePath, "Warehouse target: a DuckDB file path, or a postgres:// URI (or set WAREHOUSE_URI env var)")
	exportDirFlag := flag.String("export-dir", defaultExportDir, "Directory for CSV export of the finished tables (empty to disable)")
	noReportFlag := flag.Bool("no-report", false, "skip printing the run report")
	maxConcurrencyFlag := flag.Int("max-concurrency", 1, "maximum number of concurrent dimension builds")

	flag.Parse()

	if *showVersionFlag {
		fmt.Printf("version: %s, commit: %s, date: %s\n", version, commit, date)
		return nil
	}

	// Override flags with environment variables if set
	if envMongoURI := os.Getenv("MONGO_URI"); envMongoURI != "" {
		*mongoURIFlag = envMongoURI
	}
	if envMongoDatabase := os.Getenv("MONGO_DATABASE"); envMongoDatabase != "" {
		*mongoDatabaseFlag = envMongoDatabase
	}
	if envWarehouseURI := os.Getenv("WAREHOUSE_URI"); envWarehouseURI != "" {
		*warehouseURIFlag = envWarehouseURI
	}

	log := logger.New(*verboseFlag)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *metricsAddrFlag != "" {
		metrics.BuildInfo.WithLabelValues(version, commit, date).Set(1)
		go func() {
			listener, err := net.Listen("tcp", *metricsAddrFlag)
			if err != nil {
				log.Error("failed to start prometheus metrics server listener", "error", err)
				return
			}
			log.Info("prometheus metrics server listening", "address", listener.Addr().String())
			http.Handle("/metrics", promhttp.Handler())
			if err := http.Serve(listener, nil); err != nil {
				log.Error("failed to start prometheus metrics server", "error", err)
			}
		}()
	}

	src, err := source.NewMongoSource(ctx, source.MongoConfig{
		Logger:   log,
		URI:      *mongoURIFlag,
		Database: *mongoDatabaseFlag,
	})
	if err != nil {
		return fmt.Errorf("failed to create source: %w", err)
	}
	defer func() {
		if err := src.Close(context.Background()); err != nil {
			log.Error("failed to close source", "error", err)
		}
	}()

	warehouseSink, closeSink, err := newSink(ctx, log, *warehouseURIFlag)
	if err != nil {
		return fmt.Errorf("failed to create sink: %w", err)
	}
	defer func() {
		if err := closeSink(); err != nil {
			log.Error("failed to close sink", "error", err)
		}
	}()

	cfg := etl.Config{
		Logger:         log,
		Clock:          clockwork.NewRealClock(),
		Source:         src,
		Sink:           warehouseSink,
		ExportDir:      *exportDirFlag,
		MaxConcurrency: *maxConcurrencyFlag,
	}
	if !*noReportFlag {
		cfg.ReportWriter = os.Stdout
	}

	pipeline, err := etl.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	if _, _, err := pipeline.Run(ctx); err != nil {
		return err
	}
	return nil
}

// newSink selects the warehouse backend from the URI: postgres:// targets a
// PostgreSQL warehouse, anything else is treated as a DuckDB file path.
func newSink(ctx context.Context, log *slog.Logger, uri string) (sink.Sink, func() error, error) {
	if strings.HasPrefix(uri, "postgres://") || strings.HasPrefix(uri, "postgresql://") {
		s, err := sink.NewPostgresSink(ctx, sink.PostgresConfig{Logger: log, URI: uri})
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return s.Close(context.Background()) }, nil
	}
	path := strings.TrimPrefix(uri, "file://")
	s, err := sink.NewDuckSink(sink.DuckConfig{Logger: log, Path: path})
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}
