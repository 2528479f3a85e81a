// Command steam-reviews scrapes a Steam app's reviews into batched,
// deterministically named JSON files.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/el-remph/hertzian-steam-tech-test/pkg/logging"
	"github.com/el-remph/hertzian-steam-tech-test/pkg/pipeline"
	"github.com/el-remph/hertzian-steam-tech-test/pkg/sink"
	"github.com/el-remph/hertzian-steam-tech-test/pkg/steam"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

type options struct {
	app       int64
	batchSize int
	maxFiles  int
	dateBasis string
	outDir    string
	redisAddr string
	validate  bool
	utc       bool
	logLevel  string
	pretty    bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "steam-reviews",
		Short: "Scrape a Steam app's reviews into batched JSON files",
		Long: `steam-reviews ingests the full review listing of one Steam app,
normalizes each review (hashed identifiers, calendar dates) and writes
fixed-size batches as <app>.<index>.json while the next page is already
being fetched.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.Int64Var(&opts.app, "app", 0, "Steam app id to scrape (required)")
	f.IntVar(&opts.batchSize, "batch-size", 5000, "reviews per page request and per output batch")
	f.IntVar(&opts.maxFiles, "max-files", 0, "stop after this many output batches (0 = unlimited)")
	f.StringVar(&opts.dateBasis, "date-basis", "created", "timestamp governing filter and dates: created or updated")
	f.StringVar(&opts.outDir, "out", getEnv("STEAM_REVIEWS_OUT", "."), "output directory for batch files")
	f.StringVar(&opts.redisAddr, "redis", getEnv("STEAM_REVIEWS_REDIS", ""), "also store batches in Redis at this address")
	f.BoolVar(&opts.validate, "validate", false, "validate each batch against the output schema after writing")
	f.BoolVar(&opts.utc, "utc", false, "derive calendar dates in UTC instead of local time")
	f.StringVar(&opts.logLevel, "log-level", getEnv("STEAM_REVIEWS_LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	f.BoolVar(&opts.pretty, "pretty", false, "human-readable console logging")

	cobra.CheckErr(cmd.MarkFlagRequired("app"))

	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	logging.Setup(logging.Config{
		Level:  logging.LogLevel(opts.logLevel),
		Pretty: opts.pretty,
	})

	basis, err := steam.ParseDateBasis(opts.dateBasis)
	if err != nil {
		return err
	}

	clientCfg := steam.DefaultConfig()
	clientCfg.PageSize = opts.batchSize
	client, err := steam.NewClient(clientCfg)
	if err != nil {
		return fmt.Errorf("create steam client: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fileSink, err := sink.NewFileSink(opts.outDir)
	if err != nil {
		return err
	}
	var out sink.Sink = fileSink

	if opts.redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: opts.redisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer rdb.Close()

		redisSink, err := sink.NewRedisSink(rdb, "reviews")
		if err != nil {
			return err
		}
		out = sink.MultiSink{fileSink, redisSink}
	}

	if opts.validate {
		validator, err := sink.NewValidator()
		if err != nil {
			return err
		}
		out = &sink.ValidatingSink{Inner: out, Validator: validator}
	}

	location := time.Local
	if opts.utc {
		location = time.UTC
	}

	orch, err := pipeline.New(client, out, pipeline.Config{
		AppID:     opts.app,
		BatchSize: opts.batchSize,
		MaxFiles:  opts.maxFiles,
		Basis:     basis,
		Location:  location,
	})
	if err != nil {
		return err
	}

	return orch.Run(ctx)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
