package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"meterbill/internal/auth"
	"meterbill/internal/billing/application"
	"meterbill/internal/billing/infrastructure/hdf"
	"meterbill/internal/billing/infrastructure/pricing"
	"meterbill/internal/billing/interfaces"
	billshttp "meterbill/internal/billing/interfaces/http"
	"meterbill/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type config struct {
	inputPath  string
	periodDays int
	plansPath  string
	currency   string
	pdfPath    string
	xlsxPath   string
	httpAddr   string
	jwtSecret  string
}

func loadConfig() config {
	cfg := config{}
	flag.StringVar(&cfg.inputPath, "input", "", "path to the HDF meter export (required)")
	flag.IntVar(&cfg.periodDays, "days", 365, "billing period length in days; not derived from the readings")
	flag.StringVar(&cfg.plansPath, "plans", "", "optional YAML tariff plan file; empty uses the built-in catalog")
	flag.StringVar(&cfg.currency, "currency", "EUR", "display currency")
	flag.StringVar(&cfg.pdfPath, "pdf", "", "optional path to write a PDF bill comparison")
	flag.StringVar(&cfg.xlsxPath, "xlsx", "", "optional path to write an XLSX bill comparison")
	flag.StringVar(&cfg.httpAddr, "serve", "", "optional listen address to serve the computed bills over HTTP")
	flag.StringVar(&cfg.jwtSecret, "auth-secret", os.Getenv("AUTH_JWT_SECRET"), "JWT secret for the bills API; empty disables auth")
	flag.Parse()

	if cfg.inputPath == "" {
		log.Fatal("-input is required")
	}
	if cfg.periodDays <= 0 {
		log.Fatal("-days must be positive")
	}
	return cfg
}

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stderr, "", log.LstdFlags)
	metrics.Init()

	plans := pricing.DefaultPlans()
	currency := cfg.currency
	if cfg.plansPath != "" {
		planCfg, err := pricing.LoadConfig(cfg.plansPath)
		if err != nil {
			logger.Fatalf("plan config error: %v", err)
		}
		plans, err = planCfg.BuildPlans()
		if err != nil {
			logger.Fatalf("plan config error: %v", err)
		}
		if planCfg.Currency != "" {
			currency = planCfg.Currency
		}
	}

	result, err := hdf.ReadFile(cfg.inputPath)
	if err != nil {
		logger.Fatalf("read input error: %v", err)
	}
	metrics.AddReadingsParsed(len(result.Readings))
	logger.Printf("parsed %d readings from %s (%d rows dropped)", len(result.Readings), cfg.inputPath, result.DroppedTotal())
	for reason, count := range result.Dropped {
		metrics.AddRowsDropped(string(reason), count)
		logger.Printf("dropped %d rows: %s", count, reason)
	}

	service, err := application.NewBillingService(plans, currency, application.SystemClock{})
	if err != nil {
		logger.Fatalf("billing service error: %v", err)
	}

	statements := make([]application.Statement, 0, len(plans))
	for _, plan := range service.Plans() {
		start := time.Now()
		stmt, err := service.Run(plan, result.Readings, cfg.periodDays)
		if err != nil {
			metrics.ObserveBillCompute(plan.Name(), metrics.ResultError, time.Since(start))
			logger.Fatalf("bill compute error: plan=%s: %v", plan.Name(), err)
		}
		metrics.ObserveBillCompute(plan.Name(), metrics.ResultSuccess, time.Since(start))
		statements = append(statements, stmt)
	}

	if err := interfaces.WriteReport(os.Stdout, statements); err != nil {
		logger.Fatalf("report error: %v", err)
	}

	if cfg.pdfPath != "" {
		writeExport(logger, cfg.pdfPath, "pdf", statements)
	}
	if cfg.xlsxPath != "" {
		writeExport(logger, cfg.xlsxPath, "xlsx", statements)
	}

	if cfg.httpAddr == "" {
		return
	}

	billsHandler, err := billshttp.NewHandler(statements)
	if err != nil {
		logger.Fatalf("bills handler error: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/bills", billsHandler)
	mux.Handle("/api/v1/bills/", billsHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var root http.Handler = mux
	if cfg.jwtSecret != "" {
		policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"})
		root = auth.NewMiddleware([]byte(cfg.jwtSecret), policy).Wrap(mux)
	}

	server := &http.Server{Addr: cfg.httpAddr, Handler: loggingMiddleware(root, logger)}
	logger.Printf("http listening on %s", cfg.httpAddr)
	logger.Fatal(server.ListenAndServe())
}

func writeExport(logger *log.Logger, path, format string, statements []application.Statement) {
	start := time.Now()
	var data []byte
	var err error
	if format == "pdf" {
		data, err = interfaces.BuildBillPDF(statements)
	} else {
		data, err = interfaces.BuildBillXLSX(statements)
	}
	if err == nil {
		err = os.WriteFile(path, data, 0o644)
	}
	if err != nil {
		metrics.ObserveStatementExport(format, metrics.ResultError, time.Since(start))
		logger.Fatalf("%s export error: %v", format, err)
	}
	metrics.ObserveStatementExport(format, metrics.ResultSuccess, time.Since(start))
	logger.Printf("wrote %s export to %s", format, path)
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
