package main

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pedidozap/internal/adapter/api/controller"
	"github.com/hugohenrick/pedidozap/internal/adapter/api/route"
	"github.com/hugohenrick/pedidozap/internal/adapter/repository"
	"github.com/hugohenrick/pedidozap/internal/conversation"
	"github.com/hugohenrick/pedidozap/internal/infrastructure/database"
	"github.com/hugohenrick/pedidozap/internal/matching"
	"github.com/hugohenrick/pedidozap/pkg/ai"
	"github.com/hugohenrick/pedidozap/pkg/auth"
	"github.com/hugohenrick/pedidozap/pkg/business"
	"github.com/hugohenrick/pedidozap/pkg/chat"
	"github.com/hugohenrick/pedidozap/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// memCheckInterval e memPressureBytes controlam o monitor de memória que
// descarta snapshots expirados e varre diálogos vencidos sob pressão
const (
	memCheckInterval = 1 * time.Minute
	memPressureBytes = 512 << 20
)

// App representa a aplicação e suas dependências
type App struct {
	router   *gin.Engine
	db       *pgxpool.Pool
	logger   logger.Logger
	pending  *conversation.PendingStore
	snapshot *matching.SnapshotCache
}

// NewApp cria uma nova instância do aplicativo com todas as dependências
func NewApp(log logger.Logger) (*App, error) {
	db, err := database.NewPostgresDB()
	if err != nil {
		return nil, err
	}

	// Repositórios
	businessRepo := repository.NewBusinessRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	matchLogRepo := repository.NewMatchLogRepository(db)
	matchCacheRepo := repository.NewMatchCacheRepository(db)

	// Camada de matching
	snapshot := matching.NewSnapshotCache(inventoryRepo, log)
	matchCache := matching.NewMatchCache(matchCacheRepo, log)
	confidence := matching.NewConfidenceService(matchLogRepo, log)

	// Cliente de IA; sem chave configurada o matching segue só com o fuzzy
	var completer ai.Completer
	if client, err := ai.NewOpenAIClientFromEnv(); err != nil {
		log.Warn("AI matching disabled", "error", err)
	} else {
		completer = ai.NewRetryCompleter(client, ai.DefaultRetryConfig(), log)
	}

	resolver := matching.NewResolver(snapshot, matchCache, confidence, completer, log)

	// Transporte de chat e notificações internas
	transport := chat.NewLogTransport(log)
	notifier := chat.NewTeamNotifier(transport, os.Getenv("SALES_CHAT_ID"), os.Getenv("DELIVERY_CHAT_ID"))

	// Conversação
	pending := conversation.NewPendingStore()
	completion := conversation.NewCompletionUpdater(orderRepo, inventoryRepo, snapshot, confidence, transport, notifier, log)
	conversations := conversation.NewService(resolver, confidence, snapshot, pending, inventoryRepo, orderRepo, completion, transport, log)

	// Autenticação
	jwtService, err := auth.NewJWTService()
	if err != nil {
		return nil, err
	}

	// Controllers
	authController := controller.NewAuthController(businessRepo, jwtService, log)
	businessController := controller.NewBusinessController(businessRepo)
	inventoryController := controller.NewInventoryController(inventoryRepo, snapshot)
	orderController := controller.NewOrderController(orderRepo)
	messageController := controller.NewMessageController(businessRepo, conversations, log)

	// Router
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "business-id"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(business.Middleware(repository.NewBusinessValidator(businessRepo)))

	api := router.Group("/api/v1")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	route.RegisterAuthRoutes(api, authController)
	route.RegisterBusinessRoutes(api, businessController)
	route.RegisterInventoryRoutes(api, inventoryController)
	route.RegisterOrderRoutes(api, orderController)
	route.RegisterMessageRoutes(api, messageController)

	return &App{
		router:   router,
		db:       db,
		logger:   log,
		pending:  pending,
		snapshot: snapshot,
	}, nil
}

// StartBackground inicia as rotinas de manutenção: varredura de diálogos
// pendentes e monitor de pressão de memória
func (a *App) StartBackground(ctx context.Context) {
	a.pending.StartSweeper(ctx, 1*time.Minute)

	go func() {
		ticker := time.NewTicker(memCheckInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				var stats runtime.MemStats
				runtime.ReadMemStats(&stats)
				if stats.HeapAlloc > memPressureBytes {
					evicted := a.snapshot.EvictExpired()
					swept := a.pending.Sweep()
					a.logger.Warn("memory pressure cleanup",
						"heap_alloc", stats.HeapAlloc, "snapshots_evicted", evicted, "dialogs_swept", swept)
				}
			}
		}
	}()
}

// Router retorna o router da aplicação
func (a *App) Router() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
