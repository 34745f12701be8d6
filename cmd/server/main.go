package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "communityaction/internal/adapters/email"
	web "communityaction/internal/adapters/http"
	"communityaction/internal/adapters/storage"
	accountStore "communityaction/internal/adapters/storage/account"
	enrollmentStore "communityaction/internal/adapters/storage/enrollment"
	programStore "communityaction/internal/adapters/storage/program"
	settingStore "communityaction/internal/adapters/storage/setting"
	"communityaction/internal/application/orchestrators"
	"communityaction/internal/domain/identity"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("CA_DB_PATH", "communityaction.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	log.Println("Database initialized successfully!")

	acctStore := accountStore.NewSQLiteStore(db)
	progStore := programStore.NewSQLiteStore(db)
	stores := &web.Stores{
		ProgramStore:    progStore,
		EnrollmentStore: enrollmentStore.NewSQLiteStore(db),
		SettingStore:    settingStore.NewSQLiteStore(db),
		AccountStore:    acctStore,
	}

	// Seed superadmin account if it doesn't exist yet
	adminEmail := envOrDefault("CA_ADMIN_EMAIL", "admin@communityaction.local")
	adminPassword := envOrDefault("CA_ADMIN_PASSWORD", "change me before prod")
	seedDeps := orchestrators.SeedSuperAdminDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedSuperAdmin(context.Background(), seedDeps, adminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed superadmin: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("CA_RESEND_KEY")
	emailFrom := envOrDefault("CA_RESEND_FROM", "Community Action <noreply@communityaction.local>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender())
		if os.Getenv("CA_ENV") == "production" {
			log.Println("WARNING: CA_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set CA_RESEND_KEY for real delivery)")
		}
	}

	// First-activation seed: create the placeholder program, notify on success
	seedProgDeps := orchestrators.SeedDefaultProgramDeps{ProgramStore: progStore}
	created, err := orchestrators.ExecuteSeedDefaultProgram(context.Background(), seedProgDeps)
	if err != nil {
		log.Fatalf("failed to seed default program: %v", err)
	}
	if created {
		notifyDeps := orchestrators.NotifyActivationDeps{Sender: web.EmailSender()}
		orchestrators.ExecuteNotifyActivation(context.Background(), notifyDeps, adminEmail)
	}

	gate := identity.NewGate(acctStore)

	mux := web.NewMux(stores, gate)

	addr := envOrDefault("CA_ADDR", ":8080")
	log.Printf("Community Action %s starting on %s (env=%s)", version, addr, envOrDefault("CA_ENV", "development"))

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
