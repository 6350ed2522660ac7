package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"

	"roster-scheduler/allocator"
	"roster-scheduler/config"
	"roster-scheduler/formatter"
	"roster-scheduler/logger"
	"roster-scheduler/metrics"
	"roster-scheduler/models"
	"roster-scheduler/parser"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Define flags; environment (ROSTER_*) supplies the defaults
	input := flag.String("input", cfg.Input, "Input roster CSV file (required)")
	shiftName := flag.String("shift", cfg.Shift, "Shift to allocate: day|night")
	slots := flag.Int("slots", cfg.Slots, "Total slot override (0 = derive from shift and slot duration)")
	slotMinutes := flag.Int("slot-minutes", cfg.SlotMinutes, "Length of one interview slot in minutes")
	format := flag.String("format", cfg.Format, "Output format: text|json|csv")
	output := flag.String("output", cfg.Output, "Output file path (empty = stdout)")
	metricsAddr := flag.String("metrics-addr", cfg.Metrics.Addr, "Address to expose Prometheus metrics (e.g., :9090)")
	pushGateway := flag.String("push-url", cfg.Metrics.PushURL, "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	wait := flag.Bool("wait", false, "Keep process running after completion to allow for metric scraping")
	logLevel := flag.String("log-level", cfg.Log.Level, "Log level: debug|info|warn|error")
	logFormat := flag.String("log-format", cfg.Log.Format, "Log format: console|json")

	flag.Parse()

	log := logger.New(*logLevel, *logFormat)
	defer log.Sync()

	// Start metrics server if address provided
	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			log.Info("metrics server listening", zap.String("addr", *metricsAddr))
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				log.Error("metrics server error", zap.Error(err))
			}
		}()
	}

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: -input flag is required")
		fmt.Fprintln(os.Stderr, "\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	validFormats := map[string]bool{"text": true, "json": true, "csv": true}
	if !validFormats[*format] {
		log.Error("invalid output format", zap.String("format", *format))
		os.Exit(1)
	}

	shift, err := models.ParseShiftKind(*shiftName)
	if err != nil {
		log.Error("invalid shift", zap.Error(err))
		os.Exit(1)
	}

	file, err := os.Open(*input)
	if err != nil {
		log.Error("error opening roster file", zap.Error(err))
		os.Exit(1)
	}
	defer file.Close()

	interviewers, diags, err := parser.Parse(file, log)
	if err != nil {
		log.Error("error loading roster", zap.Error(err))
		os.Exit(1)
	}
	if len(diags) > 0 {
		log.Warn("some records were skipped",
			zap.Int("skipped", len(diags)),
			zap.Int("loaded", len(interviewers)),
		)
	}

	roster, err := allocator.BuildRoster(interviewers, shift, *slotMinutes, *slots)
	if err != nil {
		log.Error("error allocating slots", zap.Error(err))
		os.Exit(1)
	}
	if roster.Shortfall > 0 {
		log.Warn("requested slots exceed pool capacity",
			zap.Int("requested", roster.RequestedSlots),
			zap.Int("assigned", roster.AssignedTotal()),
			zap.Int("shortfall", roster.Shortfall),
		)
	}

	var rendered string
	switch *format {
	case "json":
		rendered = formatter.FormatJSON(roster)
	case "csv":
		rendered = formatter.FormatCSV(roster)
	default: // "text"
		rendered = formatter.FormatText(roster)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(rendered), 0o644); err != nil {
			log.Error("error writing output file", zap.Error(err))
			os.Exit(1)
		}
		log.Info("roster written", zap.String("path", *output))
	} else {
		fmt.Print(rendered)
	}

	// Handle metrics pushing or waiting
	if *pushGateway != "" {
		jobName := "roster_scheduler"
		if err := push.New(*pushGateway, jobName).Gatherer(metrics.Registry).Push(); err != nil {
			log.Error("error pushing to Pushgateway", zap.Error(err))
		} else {
			log.Info("metrics pushed to Pushgateway")
		}
	}

	if *wait && *metricsAddr != "" {
		log.Info("process kept alive for metric scraping, press Ctrl+C to exit")
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
	} else if *metricsAddr != "" && *pushGateway == "" {
		// Small delay to allow final scrape if not waiting explicitly
		// but typically batch jobs should use pushgateway or wait
		time.Sleep(100 * time.Millisecond)
	}
}
