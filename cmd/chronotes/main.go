package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/chronotes/chronotes/internal/codestore"
	"github.com/chronotes/chronotes/internal/config"
	"github.com/chronotes/chronotes/internal/handler"
	"github.com/chronotes/chronotes/internal/middleware"
	"github.com/chronotes/chronotes/internal/pkg/jwt"
	"github.com/chronotes/chronotes/internal/repo"
	"github.com/chronotes/chronotes/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "chronotes",
		Short: "chronotes auth backend",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the auth server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			db, err := repo.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := repo.ApplyMigrations(db); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, db)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func newCodeStore(cfg config.CodeStoreConfig) (codestore.Store, error) {
	switch cfg.Type {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return codestore.NewRedis(client), nil
	case "memory":
		return codestore.NewMemory(cfg.Size, time.Hour), nil
	default:
		return nil, fmt.Errorf("unknown code store type %q", cfg.Type)
	}
}

func runServer(cfg *config.Config, db *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("code_store", cfg.CodeStore.Type),
	)

	codes, err := newCodeStore(cfg.CodeStore)
	if err != nil {
		return err
	}
	userRepo := repo.NewUserRepo(db)
	mailSender := service.NewEmailSender(cfg.Mail)
	issuer := jwt.NewIssuer([]byte(cfg.JWTSecret), time.Minute*time.Duration(cfg.JWTTTLMinutes))
	authService := service.NewAuthService(userRepo, codes, mailSender, issuer)
	authHandler := handler.NewAuthHandler(authService)

	deps := handler.RouterDeps{
		Auth:   authHandler,
		Issuer: issuer,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
