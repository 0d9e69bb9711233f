package main

import (
	"context"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ticket-triage/backend/internal/client"
	"github.com/ticket-triage/backend/internal/config"
	"github.com/ticket-triage/backend/internal/db"
	"github.com/ticket-triage/backend/internal/handler"
	"github.com/ticket-triage/backend/internal/service"
)

func main() {
	// .env 파일이 있으면 로드 (없어도 무방)
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	// --- 저장소 초기화 ---
	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	repo := &db.Postgres{Pool: pool}
	for _, ensure := range []func(context.Context) error{
		repo.EnsureTicketSchema,
		repo.EnsureProcessedSchema,
		repo.EnsureFeedbackSchema,
		repo.EnsureSystemLogSchema,
		repo.EnsureAuthSchema,
		repo.EnsureEmbeddingSchema,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}
	}

	// --- 외부 클라이언트 초기화 ---
	jiraClient := client.NewJiraClient(cfg.Jira)

	// AI 백엔드 실패는 치명적이지 않다. 분석기는 fallback 레코드로 동작한다.
	var generator service.TextGenerator
	genaiClient, err := client.NewGenAIClient(ctx, cfg.GenAI)
	if err != nil {
		log.Printf("GenAI unavailable, running analyzer in degraded mode: %v", err)
	} else {
		log.Printf("GenAI ready (model=%s)", genaiClient.Model())
		generator = genaiClient
	}

	var embeddingClient service.EmbeddingClient
	if ec, err := client.NewEmbeddingClient(ctx, cfg.GenAI); err != nil {
		log.Printf("Embedding backend unavailable: %v", err)
	} else {
		embeddingClient = ec
	}

	// --- 서비스 초기화 ---
	authService, err := service.NewAuthService(repo, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to init auth service: %v", err)
	}
	if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminLoginID, cfg.Auth.AdminPassword); err != nil {
		log.Fatalf("Failed to ensure admin account: %v", err)
	}

	analyzerService := service.NewAnalyzerService(generator)
	pipelineService := service.NewPipelineService(analyzerService, repo)
	ticketService := service.NewTicketService(jiraClient, repo)
	feedbackService := service.NewFeedbackService(repo, jiraClient)
	maintenanceService := service.NewMaintenanceService(repo)
	embeddingService := service.NewEmbeddingService(repo, embeddingClient)

	// --- 핸들러/라우터 초기화 ---
	authHandler := handler.NewAuthHandler(authService)
	ticketHandler := handler.NewTicketHandler(ticketService, embeddingService)
	analysisHandler := handler.NewAnalysisHandler(pipelineService, repo)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceService)
	embeddingHandler := handler.NewEmbeddingHandler(embeddingService)
	metricsHandler := handler.NewMetricsHandler(repo)

	router := gin.Default()
	router.Use(handler.RequestIDMiddleware())
	if cfg.Server.AllowedOrigins != "" {
		router.Use(handler.CORSMiddleware(strings.Split(cfg.Server.AllowedOrigins, ",")))
	}

	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)

	api := router.Group("/api/v1")
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(handler.AuthMiddleware(authService))
	{
		protected.GET("/auth/me", authHandler.Me)

		protected.GET("/tickets", ticketHandler.GetTickets)
		protected.POST("/tickets/fetch", ticketHandler.FetchTickets)
		protected.GET("/tickets/:id", ticketHandler.GetTicket)
		protected.GET("/tickets/:id/similar", ticketHandler.FindSimilar)

		protected.GET("/analysis", analysisHandler.GetAnalyses)
		protected.POST("/analysis/run", analysisHandler.RunAnalysis)

		protected.POST("/feedback", feedbackHandler.CreateFeedback)
		protected.GET("/feedback", feedbackHandler.GetFeedback)

		protected.POST("/embeddings", embeddingHandler.CreateEmbedding)

		protected.GET("/metrics", metricsHandler.GetMetrics)
		protected.GET("/events", metricsHandler.GetEvents)

		protected.GET("/maintenance/integrity", maintenanceHandler.Integrity)
		protected.POST("/maintenance/dedup", maintenanceHandler.Dedup)
		protected.POST("/maintenance/orphans", maintenanceHandler.Orphans)
		protected.POST("/maintenance/reset", maintenanceHandler.Reset)
	}

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
