// Command xtream-probe checks Xtream-Codes credentials found in pasted text.
//
// Input is free text (stdin by default) containing playlist or player_api
// URLs; every distinct credential set is authenticated and characterized:
// expiry, connection limits, catalog counts, adult-content flag, domain
// allow-list check, and an optional catalog search.
//
//	xtream-probe < pasted-list.txt
//	xtream-probe -input list.txt -search "noticias"
//	xtream-probe -config probe.yaml -metrics-listen :9105
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/xtreamprobe/xtream-probe/internal/classify"
	"github.com/xtreamprobe/xtream-probe/internal/config"
	"github.com/xtreamprobe/xtream-probe/internal/domain"
	"github.com/xtreamprobe/xtream-probe/internal/httpclient"
	"github.com/xtreamprobe/xtream-probe/internal/metrics"
	"github.com/xtreamprobe/xtream-probe/internal/pool"
	"github.com/xtreamprobe/xtream-probe/internal/probe"
	"github.com/xtreamprobe/xtream-probe/internal/report"
	"github.com/xtreamprobe/xtream-probe/internal/series"
)

func main() {
	input := flag.String("input", "-", "input file with pasted URLs, or - for stdin")
	search := flag.String("search", "", "optional catalog search term")
	configPath := flag.String("config", "", "optional YAML config file")
	metricsListen := flag.String("metrics-listen", "", "serve Prometheus metrics on this addr (overrides config)")
	insecure := flag.Bool("insecure", false, "skip TLS verification (legacy panels)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	_ = godotenv.Load() // .env is optional

	cfg := config.Load()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadFile(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *metricsListen != "" {
		cfg.MetricsListen = *metricsListen
	}
	if *insecure {
		cfg.InsecureTLS = true
	}

	text, err := readInput(*input)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.MetricsListen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			log.WithField("addr", cfg.MetricsListen).Info("metrics listener started")
			if err := http.ListenAndServe(cfg.MetricsListen, mux); err != nil {
				log.WithError(err).Warn("metrics listener stopped")
			}
		}()
	}

	httpClient := httpclient.WithTimeout(cfg.ActionTimeout)
	if cfg.InsecureTLS {
		httpClient = httpclient.Insecure(cfg.ActionTimeout)
	}

	prober := probe.NewProber(probe.Options{
		Allowlist:          domain.NewAllowlist(cfg.AllowedTLDs),
		Classifier:         classify.New(cfg.AdultKeywords, cfg.ClassifySampleLimit),
		Resolver:           series.NewResolver(cfg.DetailTimeout),
		Inner:              pool.New("actions", cfg.InnerWidth),
		HTTPClient:         httpClient,
		AuthTimeout:        cfg.AuthTimeout,
		ActionTimeout:      cfg.ActionTimeout,
		DetailTimeout:      cfg.DetailTimeout,
		ExpirySanityFactor: cfg.ExpirySanityFactor,
		Log:                log,
	})
	orch := probe.NewOrchestrator(prober, pool.New("servers", cfg.OuterWidth), log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results := orch.Run(ctx, text, *search)
	if len(results) == 0 {
		fmt.Println("no credentials found in input")
		return
	}
	probe.SortByAuthenticated(results)
	report.Render(os.Stdout, results, *search)
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}
