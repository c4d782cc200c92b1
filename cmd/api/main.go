package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/uknf/communication-platform-backend/internal/config"
	"github.com/uknf/communication-platform-backend/internal/handler"
	"github.com/uknf/communication-platform-backend/internal/middleware"
	"github.com/uknf/communication-platform-backend/internal/migration"
	"github.com/uknf/communication-platform-backend/internal/repository"
	"github.com/uknf/communication-platform-backend/internal/routes"
	"github.com/uknf/communication-platform-backend/internal/service"
	pkgcache "github.com/uknf/communication-platform-backend/pkg/cache"
	"github.com/uknf/communication-platform-backend/pkg/i18n"
	"github.com/uknf/communication-platform-backend/pkg/jwt"
	pkglogger "github.com/uknf/communication-platform-backend/pkg/logger"
	pkgredis "github.com/uknf/communication-platform-backend/pkg/redis"
)

// @title           UKNF Communication Platform API
// @version         1.0
// @description     Regulatory communication back office: messages, announcements, users.
//
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	zlog := pkglogger.GetLogger()
	zlog.Info().Str("env", env).Strs("dotenv", dotenvFiles).Msg("starting")

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	zlog.Info().Str("host", cfg.Database.Host).Msg("connected to PostgreSQL")

	if err := migration.Run(db); err != nil {
		zlog.Warn().Err(err).Msg("migration warning")
	}

	// Redis is optional: the service degrades to uncached reads without it
	var cacheService pkgcache.Service
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		zlog.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
	} else {
		cacheService = pkgcache.NewService(redisClient)
		zlog.Info().Msg("connected to Redis")
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:4200"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Accept-Language", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:           86400,
	}))

	// i18n bundle: built-in Polish/English labels, overridable from ./i18n
	i18nBundle := i18n.NewBundle(i18n.LocalePl)
	for locale, msgs := range i18n.DefaultMessages() {
		i18nBundle.LoadMessages(locale, msgs)
	}
	if _, err := os.Stat("i18n"); err == nil {
		if err := i18nBundle.LoadDir("i18n"); err != nil {
			zlog.Warn().Err(err).Msg("i18n LoadDir failed")
		}
	}

	router.Use(middleware.I18n(i18nBundle))
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "uknf-communication-platform",
			"time":    time.Now().Unix(),
		})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Repositories
	messageRepo := repository.NewMessageRepository(db)
	userRepo := repository.NewUserRepository(db)
	entityRepo := repository.NewEntityRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)

	// Services
	messageService := service.NewMessageService(messageRepo, userRepo, entityRepo, cacheService)
	announcementService := service.NewAnnouncementService(announcementRepo, userRepo, cacheService)

	// Handlers + routes
	routes.Setup(
		router,
		handler.NewMessageHandler(messageService),
		handler.NewAnnouncementHandler(announcementService),
		handler.NewUserHandler(userRepo),
		handler.NewEntityHandler(entityRepo),
		jwtManager,
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zlog.Info().Str("addr", addr).Msg("listening")
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
