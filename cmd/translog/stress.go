// FILE: lixenwraith/translog/cmd/translog/stress.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/lixenwraith/translog"
	"github.com/lixenwraith/translog/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// stressCommand floods the configured transports from concurrent workers
func stressCommand() *cli.Command {
	return &cli.Command{
		Name:  "stress",
		Usage: "Log from concurrent workers and report transport statistics",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of concurrent child loggers",
				Value: 4,
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "Entries logged per worker",
				Value: 1000,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Total entries per second across workers, 0 for unlimited",
				Value: 0,
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Serve Prometheus metrics on this address while running, e.g. :9100",
			},
			&cli.DurationFlag{
				Name:  "heartbeat",
				Usage: "Heartbeat interval, 0 disables",
				Value: 0,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger, err := translog.NewFromConfig(cfg)
			if err != nil {
				return err
			}
			defer logger.Destroy()

			if addr := cmd.String("metrics-addr"); addr != "" {
				shutdown := serveMetrics(addr, logger)
				defer shutdown()
			}

			if interval := cmd.Duration("heartbeat"); interval > 0 {
				stop := logger.StartHeartbeat(ctx, interval)
				defer stop()
			}

			opts := stressOptions{
				workers: int(cmd.Int("workers")),
				count:   int(cmd.Int("count")),
				rate:    cmd.Float("rate"),
			}

			start := time.Now()
			if err := runStress(ctx, logger, opts); err != nil {
				return err
			}
			logger.Flush()
			elapsed := time.Since(start)

			printStats(logger, opts, elapsed)
			return nil
		},
	}
}

type stressOptions struct {
	workers int
	count   int
	rate    float64
}

// runStress logs opts.count entries from each of opts.workers child loggers
func runStress(ctx context.Context, logger *translog.Logger, opts stressOptions) error {
	if opts.workers < 1 || opts.count < 1 {
		return fmt.Errorf("workers and count must be positive")
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.rate), opts.workers)
	}

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < opts.workers; w++ {
		worker := logger.Child(
			translog.WithLabel(fmt.Sprintf("worker-%d", w)),
			translog.WithDefaultMeta(map[string]any{"worker": w}),
		)
		g.Go(func() error {
			for i := 0; i < opts.count; i++ {
				if err := limiter.Wait(ctx); err != nil {
					return err
				}
				switch i % 4 {
				case 0:
					worker.Debug("tick %d", i, translog.Meta{"seq": i})
				case 1:
					worker.Info("processed item %d of %d", i, opts.count)
				case 2:
					worker.Warn("slow item %d", i, translog.Meta{"latency": time.Duration(i) * time.Microsecond})
				default:
					worker.Error("item %d failed", i, translog.Meta{"err": errors.New("simulated")})
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// serveMetrics exposes transport statistics until the returned function is called
func serveMetrics(addr string, logger *translog.Logger) func() {
	reg := prometheus.NewRegistry()
	reg.MustRegister(metrics.NewCollector(logger.Transports))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "metrics server error: %v\n", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}

// printStats writes a per-transport summary to stderr
func printStats(logger *translog.Logger, opts stressOptions, elapsed time.Duration) {
	total := opts.workers * opts.count
	fmt.Fprintf(os.Stderr, "\n%d entries from %d workers in %v (%.0f/s)\n",
		total, opts.workers, elapsed.Round(time.Millisecond), float64(total)/elapsed.Seconds())

	for _, t := range logger.Transports() {
		s := t.Stats()
		fmt.Fprintf(os.Stderr, "  %s [%s] sent=%d batches=%d failures=%d filtered=%d dropped=%d queued=%d\n",
			s.ID[:8], s.Label, s.Sent, s.Batches, s.Failures, s.Filtered, s.Dropped, s.QueueLen)
	}
}
