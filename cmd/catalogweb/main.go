// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the product catalog server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"catalogweb/internal/auth"
	"catalogweb/internal/cache"
	"catalogweb/internal/config"
	"catalogweb/internal/database"
	"catalogweb/internal/handlers"
	"catalogweb/internal/middleware"
	"catalogweb/internal/notify"
	"catalogweb/internal/pdf"
	"catalogweb/internal/render"
	"catalogweb/internal/router"
	"catalogweb/internal/session"
	"catalogweb/internal/storage"
	"catalogweb/internal/store"
	"catalogweb/web"
)

func main() {
	genTOTP := flag.Bool("gen-totp", false, "print a new ADMIN_TOTP_SECRET and exit")
	hashPassword := flag.String("hash-password", "", "print the bcrypt hash of the given password for ADMIN_PASSWORD_HASH and exit")
	flag.Parse()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	switch {
	case *genTOTP:
		secret, err := auth.GenerateTOTPSecret(cfg.AdminEmail)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(secret)
		return
	case *hashPassword != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(*hashPassword), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(string(hash))
		return
	}

	// Structured logger: text in development, JSON everywhere else.
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"base_url", cfg.BaseURL,
	)

	if err := run(cfg); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped gracefully")
}

func run(cfg *config.Config) error {
	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Seed a demo catalog (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
	}

	// Connect to Valkey (sessions + storefront page cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		return fmt.Errorf("connect to valkey: %w", err)
	}
	defer valkeyClient.Close()

	// In non-development environments, mark cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, cfg.SessionTTL, secureCookies)

	authManager, err := auth.NewManager(auth.Config{
		Email:        cfg.AdminEmail,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
		TOTPSecret:   cfg.AdminTOTPSecret,
		JWTSecret:    cfg.JWTSecret,
		TTL:          cfg.SessionTTL,
	}, sessionStore)
	if err != nil {
		return err
	}
	if !authManager.TOTPEnabled() {
		slog.Warn("admin second factor disabled, set ADMIN_TOTP_SECRET to enable it")
	}

	// Connect to S3-compatible object storage (optional; uploads are
	// refused without it).
	var (
		objects handlers.ObjectStorage
		covers  pdf.Downloader
	)
	if cfg.StorageEnabled() {
		client, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			return fmt.Errorf("initialize s3 storage: %w", err)
		}
		if client != nil {
			objects, covers = client, client
			slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
		}
	}
	if objects == nil {
		slog.Warn("s3 storage not configured, uploads disabled")
	}

	// Lead notifications (optional).
	var notifier handlers.Notifier
	if m := notify.New(notify.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		To:       cfg.NotifyEmail,
		BaseURL:  cfg.BaseURL,
	}); m != nil {
		notifier = m
	} else {
		slog.Warn("smtp not configured, lead notifications disabled")
	}

	// Headless Chrome is started lazily on the first catalog download.
	printer := pdf.NewChromePrinter(cfg.ChromePath)
	defer printer.Close()
	generator, err := pdf.NewGenerator(printer, pdf.Options{
		BaseURL:   cfg.BaseURL,
		CoverPath: cfg.CatalogCoverPath,
		Storage:   covers,
		SiteName:  cfg.SiteName,
	})
	if err != nil {
		return fmt.Errorf("initialize pdf generator: %w", err)
	}

	renderer, err := render.New(cfg.SiteName)
	if err != nil {
		return fmt.Errorf("initialize template renderer: %w", err)
	}

	// Initialize data stores.
	categories := store.NewCategoryStore(db)
	subCategories := store.NewSubCategoryStore(db)
	products := store.NewProductStore(db)
	contacts := store.NewContactStore(db)
	enquiries := store.NewEnquiryStore(db)

	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	defer loginLimiter.Stop()
	leadLimiter := middleware.NewRateLimiter(20, time.Minute)
	defer leadLimiter.Stop()

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("open static assets: %w", err)
	}

	r := router.New(router.Config{
		Verifier:      authManager,
		SecureCookies: secureCookies,
		Static:        static,
		Catalog:       handlers.NewCatalog(categories, subCategories, products, objects, pageCache),
		Leads:         handlers.NewLeads(contacts, enquiries, notifier, cfg.CaptchaValue),
		Export:        handlers.NewExport(categories, subCategories, products, enquiries, generator, notifier, cfg.PDFTimeout),
		Upload:        handlers.NewUpload(objects),
		Auth:          handlers.NewAuth(authManager, sessionStore),
		Public:        handlers.NewPublic(renderer, categories, subCategories, products, pageCache, cfg.CaptchaValue),
		LoginLimiter:  loginLimiter,
		LeadLimiter:   leadLimiter,
	})

	// WriteTimeout must accommodate catalog downloads, which wait on
	// headless Chrome for up to PDF_TIMEOUT.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.PDFTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	}

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}
