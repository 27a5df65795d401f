package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"auditdesk/internal/config"
	"auditdesk/internal/email/noop"
	"auditdesk/internal/email/ses"
	"auditdesk/internal/handler"
	"auditdesk/internal/port"
	"auditdesk/internal/repository/postgres"
	"auditdesk/internal/router"
	"auditdesk/internal/service"
	s3storage "auditdesk/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	tenantRepo := postgres.NewTenantRepo(db)
	userRepo := postgres.NewUserRepo(db)
	engagementRepo := postgres.NewEngagementRepo(db)
	sectionRepo := postgres.NewSectionRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)
	balanceRepo := postgres.NewBalanceRepo(db)
	importRepo := postgres.NewBalanceImportRepo(db)
	coaRepo := postgres.NewCOARepo(db)
	commentRepo := postgres.NewCommentRepo(db)
	issueRepo := postgres.NewIssueRepo(db)
	sprintRepo := postgres.NewSprintRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	quoteRepo := postgres.NewQuoteRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, tenantRepo, cfg.JWT)
	tenantSvc := service.NewTenantService(tenantRepo)
	userSvc := service.NewUserService(userRepo)
	engagementSvc := service.NewEngagementService(engagementRepo, sectionRepo, userRepo)
	reviewSvc := service.NewReviewService(engagementRepo, sectionRepo, reviewRepo, userRepo, emailSender, cfg.Email.FrontendURL)
	balanceSvc := service.NewBalanceService(balanceRepo, importRepo, engagementRepo, fileRepo, s3Client)
	coaSvc := service.NewCOAService(coaRepo, engagementRepo)
	commentSvc := service.NewCommentService(commentRepo, sectionRepo, userRepo)
	issueSvc := service.NewIssueService(issueRepo, sprintRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, quoteRepo, engagementRepo)
	fileSvc := service.NewFileService(fileRepo, importRepo, s3Client, &cfg.S3)

	// Initialize handlers
	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Tenant:     handler.NewTenantHandler(tenantSvc),
		User:       handler.NewUserHandler(userSvc),
		Engagement: handler.NewEngagementHandler(engagementSvc),
		Review:     handler.NewReviewHandler(reviewSvc),
		Balance:    handler.NewBalanceHandler(balanceSvc),
		COA:        handler.NewCOAHandler(coaSvc),
		Comment:    handler.NewCommentHandler(commentSvc),
		Issue:      handler.NewIssueHandler(issueSvc),
		Invoice:    handler.NewInvoiceHandler(invoiceSvc),
		File:       handler.NewFileHandler(fileSvc),
		Health:     handler.NewHealthHandler(db),
	}

	r := router.Setup(cfg, authSvc, handlers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Background ingest worker for queued balance imports
	worker := service.NewIngestWorker(importRepo, balanceSvc, service.IngestConfig{
		PollInterval: time.Duration(cfg.Ingest.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Ingest.MaxRetries,
		Concurrency:  cfg.Ingest.Concurrency,
	})
	go worker.Start(ctx)

	// Scheduled sweep marking sent invoices past due date as overdue
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Jobs.OverdueInvoiceCron, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		n, err := invoiceSvc.MarkOverdueInvoices(jobCtx)
		if err != nil {
			log.Printf("overdue invoice sweep failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("overdue invoice sweep: %d invoices marked", n)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule overdue invoice job: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}
