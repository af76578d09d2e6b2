package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "fitclass/internal/adapters/email"
	web "fitclass/internal/adapters/http"
	"fitclass/internal/adapters/http/middleware"
	"fitclass/internal/adapters/storage"
	bookingStore "fitclass/internal/adapters/storage/booking"
	classStore "fitclass/internal/adapters/storage/fitnessclass"
	userStore "fitclass/internal/adapters/storage/user"
	"fitclass/internal/application/keylock"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Optional .env for local development; real deployments set env vars.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("FITCLASS_DB", "fitclass.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	log.Println("Database initialized successfully!")

	// Wrap DB with slow-query instrumentation
	timedDB := storage.NewTimedDB(db)

	stores := &web.Stores{
		UserStore:    userStore.NewSQLiteStore(timedDB),
		ClassStore:   classStore.NewSQLiteStore(timedDB),
		BookingStore: bookingStore.NewSQLiteStore(timedDB),
	}

	// Configure email sender
	resendKey := os.Getenv("FITCLASS_RESEND_KEY")
	emailFrom := envOrDefault("FITCLASS_RESEND_FROM", "FitClass <noreply@fitclass.example>")
	emailReplyTo := os.Getenv("FITCLASS_REPLY_TO")
	var sender emailPkg.Sender
	if resendKey != "" {
		sender = emailPkg.NewResendSender(resendKey, emailFrom, emailReplyTo)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if os.Getenv("FITCLASS_ENV") == "production" {
			log.Println("WARNING: FITCLASS_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set FITCLASS_RESEND_KEY for real delivery)")
		}
	}

	sessions := middleware.NewSessionStore()
	locks := keylock.New()

	mux := web.NewMux(stores, sessions, sender, locks)

	addr := envOrDefault("FITCLASS_ADDR", ":8080")
	log.Printf("FitClass %s starting on %s (env=%s)", version, addr, envOrDefault("FITCLASS_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
