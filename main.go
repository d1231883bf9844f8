package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	apihttp "banque-numerique/internal/api/http"
	"banque-numerique/internal/appconfig"
	"banque-numerique/internal/audit"
	"banque-numerique/internal/auth"
	deliveryapp "banque-numerique/internal/delivery/application"
	delivery "banque-numerique/internal/delivery/domain"
	deliverymem "banque-numerique/internal/delivery/infrastructure/memory"
	deliverypg "banque-numerique/internal/delivery/infrastructure/postgres"
	deliveryhttp "banque-numerique/internal/delivery/interfaces/http"
	importhttp "banque-numerique/internal/importer/interfaces/http"
	inventoryapp "banque-numerique/internal/inventory/application"
	inventory "banque-numerique/internal/inventory/domain"
	inventorymem "banque-numerique/internal/inventory/infrastructure/memory"
	inventorypg "banque-numerique/internal/inventory/infrastructure/postgres"
	inventoryhttp "banque-numerique/internal/inventory/interfaces/http"
	"banque-numerique/internal/mailer"
	"banque-numerique/internal/observability/metrics"
	partnersapp "banque-numerique/internal/partners/application"
	partners "banque-numerique/internal/partners/domain"
	partnersmem "banque-numerique/internal/partners/infrastructure/memory"
	partnerspg "banque-numerique/internal/partners/infrastructure/postgres"
	partnershttp "banque-numerique/internal/partners/interfaces/http"
	"banque-numerique/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	_ = godotenv.Load()

	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	appCfg, err := appconfig.Load()
	if err != nil {
		logger.Fatalf("app config error: %v", err)
	}

	metrics.Init()

	var (
		deviceRepo  inventory.DeviceRepository
		partnerRepo partners.Store
		orderRepo   delivery.OrderRepository
		auditLogger audit.Logger
	)

	switch cfg.StorageDriver {
	case "postgres":
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("db open error: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("db ping error: %v", err)
		}
		deviceRepo = inventorypg.NewDeviceRepository(db)
		partnerRepo = partnerspg.NewStore(db)
		orderRepo = deliverypg.NewOrderRepository(db)
		auditLogger = audit.NewRepository(db)
	case "memory":
		deviceRepo = inventorymem.NewDeviceRepository()
		partnerRepo = partnersmem.NewStore()
		orderRepo = deliverymem.NewOrderRepository()
		auditLogger = audit.NewLogWriter(logger)
	default:
		logger.Fatalf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	deviceService, err := inventoryapp.NewService(deviceRepo, nil)
	if err != nil {
		logger.Fatalf("device service error: %v", err)
	}
	partnerService, err := partnersapp.NewService(partnerRepo, nil)
	if err != nil {
		logger.Fatalf("partner service error: %v", err)
	}
	orderService, err := deliveryapp.NewService(orderRepo, nil)
	if err != nil {
		logger.Fatalf("order service error: %v", err)
	}

	if cfg.StorageDriver == "memory" && appCfg.Seed.Demo {
		if err := seed.Load(context.Background(), deviceRepo, partnerRepo, orderRepo); err != nil {
			logger.Fatalf("seed error: %v", err)
		}
		logger.Printf("demo dataset loaded")
	}

	deviceHandler, err := inventoryhttp.NewHandler(deviceService, auditLogger)
	if err != nil {
		logger.Fatalf("device handler error: %v", err)
	}
	partnerHandler, err := partnershttp.NewHandler(partnerService, auditLogger)
	if err != nil {
		logger.Fatalf("partner handler error: %v", err)
	}
	orderHandler, err := deliveryhttp.NewHandler(orderService, auditLogger)
	if err != nil {
		logger.Fatalf("order handler error: %v", err)
	}
	statsHandler, err := apihttp.NewStatsHandler(deviceService, partnerService)
	if err != nil {
		logger.Fatalf("stats handler error: %v", err)
	}
	exportHandler, err := importhttp.NewExportHandler(deviceService, partnerService)
	if err != nil {
		logger.Fatalf("export handler error: %v", err)
	}
	previewHandler := importhttp.NewPreviewHandler()

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/devices", deviceHandler)
	mux.Handle("/api/v1/devices/", deviceHandler)
	mux.Handle("/api/v1/interlocuteurs", partnerHandler)
	mux.Handle("/api/v1/interlocuteurs/", partnerHandler)
	mux.Handle("/api/v1/donations", partnerHandler)
	mux.Handle("/api/v1/donations/", partnerHandler)
	mux.Handle("/api/v1/orders", orderHandler)
	mux.Handle("/api/v1/orders/", orderHandler)
	mux.Handle("/api/v1/stats", statsHandler)
	mux.Handle("/api/v1/import/preview", previewHandler)
	mux.Handle("/api/v1/exports/", exportHandler)

	if cfg.SendGridAPIKey != "" {
		channel, err := mailer.NewSendGridChannel(cfg.SendGridAPIKey, appCfg.Mail.FromName, appCfg.Mail.FromMail)
		if err != nil {
			logger.Fatalf("mail channel error: %v", err)
		}
		emailHandler, err := apihttp.NewEmailHandler(deviceService, channel, auditLogger)
		if err != nil {
			logger.Fatalf("email handler error: %v", err)
		}
		mux.Handle("/api/v1/emails/device-ready", emailHandler)
	} else {
		logger.Printf("SENDGRID_API_KEY not set, email endpoint disabled")
	}

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	HTTPAddr       string
	StorageDriver  string
	DatabaseURL    string
	JWTSecret      string
	SendGridAPIKey string
}

func loadConfig() config {
	cfg := config{
		HTTPAddr:       getenvDefault("HTTP_ADDR", ":8080"),
		StorageDriver:  getenvDefault("STORAGE_DRIVER", "memory"),
		DatabaseURL:    getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		JWTSecret:      getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
		SendGridAPIKey: getenvDefault("SENDGRID_API_KEY", ""),
	}
	if cfg.StorageDriver == "postgres" && cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required with STORAGE_DRIVER=postgres")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		elapsed := time.Since(start)
		metrics.ObserveRequest(r.Method, resp.status, elapsed)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, elapsed)
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
