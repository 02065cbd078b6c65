package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/cache"
	"github.com/wyfcoding/pkg/config"
	"github.com/wyfcoding/pkg/database"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/messagequeue/kafka"
	"github.com/wyfcoding/pkg/metrics"
	adminapp "github.com/wyfcoding/tradersroom/internal/admin/application"
	adminmysql "github.com/wyfcoding/tradersroom/internal/admin/infrastructure/persistence/mysql"
	adminredis "github.com/wyfcoding/tradersroom/internal/admin/infrastructure/persistence/redis"
	adminhttp "github.com/wyfcoding/tradersroom/internal/admin/interfaces/http"
	authapp "github.com/wyfcoding/tradersroom/internal/auth/application"
	authdomain "github.com/wyfcoding/tradersroom/internal/auth/domain"
	authmysql "github.com/wyfcoding/tradersroom/internal/auth/infrastructure/persistence/mysql"
	authhttp "github.com/wyfcoding/tradersroom/internal/auth/interfaces/http"
	fundingapp "github.com/wyfcoding/tradersroom/internal/funding/application"
	fundingdomain "github.com/wyfcoding/tradersroom/internal/funding/domain"
	fundingmysql "github.com/wyfcoding/tradersroom/internal/funding/infrastructure/persistence/mysql"
	fundinghttp "github.com/wyfcoding/tradersroom/internal/funding/interfaces/http"
	kycapp "github.com/wyfcoding/tradersroom/internal/kyc/application"
	kycdomain "github.com/wyfcoding/tradersroom/internal/kyc/domain"
	kycmysql "github.com/wyfcoding/tradersroom/internal/kyc/infrastructure/persistence/mysql"
	kychttp "github.com/wyfcoding/tradersroom/internal/kyc/interfaces/http"
	notifapp "github.com/wyfcoding/tradersroom/internal/notification/application"
	notifdomain "github.com/wyfcoding/tradersroom/internal/notification/domain"
	notifmysql "github.com/wyfcoding/tradersroom/internal/notification/infrastructure/persistence/mysql"
	"github.com/wyfcoding/tradersroom/internal/notification/infrastructure/sender"
	notifconsumer "github.com/wyfcoding/tradersroom/internal/notification/interfaces/consumer"
	notifhttp "github.com/wyfcoding/tradersroom/internal/notification/interfaces/http"
	supportapp "github.com/wyfcoding/tradersroom/internal/support/application"
	supportdomain "github.com/wyfcoding/tradersroom/internal/support/domain"
	supportmysql "github.com/wyfcoding/tradersroom/internal/support/infrastructure/persistence/mysql"
	supporthttp "github.com/wyfcoding/tradersroom/internal/support/interfaces/http"
	userapp "github.com/wyfcoding/tradersroom/internal/user/application"
	userhttp "github.com/wyfcoding/tradersroom/internal/user/interfaces/http"
	walletapp "github.com/wyfcoding/tradersroom/internal/wallet/application"
	walletdomain "github.com/wyfcoding/tradersroom/internal/wallet/domain"
	walletmysql "github.com/wyfcoding/tradersroom/internal/wallet/infrastructure/persistence/mysql"
	wallethttp "github.com/wyfcoding/tradersroom/internal/wallet/interfaces/http"
	"github.com/wyfcoding/tradersroom/pkg/middleware"
	"github.com/wyfcoding/tradersroom/pkg/storage"
	"golang.org/x/sync/errgroup"
)

var configPath = flag.String("config", "configs/backoffice/config.toml", "config file path")

// notificationTopic 通知投递命令使用的 Kafka 主题
const notificationTopic = "backoffice.notification.delivery"

func main() {
	flag.Parse()

	// 1. 配置
	var cfg config.Config
	if err := config.Load(*configPath, &cfg); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		panic("JWT_SECRET environment variable is required")
	}
	baseURL := envOr("APP_BASE_URL", fmt.Sprintf("http://localhost:%d", cfg.Server.HTTP.Port))
	uploadDir := envOr("UPLOAD_DIR", "uploads")

	// 2. 日志
	logCfg := &logging.Config{Service: cfg.Server.Name, Level: cfg.Log.Level}
	logger := logging.NewFromConfig(logCfg)
	slog.SetDefault(logger.Logger)

	// 3. 指标
	metricsImpl := metrics.NewMetrics(cfg.Server.Name)
	if cfg.Metrics.Enabled {
		go metricsImpl.ExposeHTTP(cfg.Metrics.Port)
	}

	// 4. 数据库
	db, err := database.NewDB(cfg.Data.Database, cfg.CircuitBreaker, logger, metricsImpl)
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	if cfg.Server.Environment == "dev" {
		if err := db.RawDB().AutoMigrate(
			&authdomain.User{},
			&walletdomain.WalletTransaction{},
			&fundingdomain.DepositMethod{},
			&fundingdomain.DepositMethodBankDetail{},
			&fundingdomain.DepositMethodCryptoDetail{},
			&fundingdomain.DepositMethodOtherDetail{},
			&fundingdomain.DepositRequest{},
			&fundingdomain.WithdrawalMethod{},
			&fundingdomain.WithdrawalRequest{},
			&kycdomain.KycDocument{},
			&supportdomain.SupportTicket{},
			&supportdomain.SupportTicketMessage{},
			&notifdomain.Notification{},
		); err != nil {
			slog.Error("failed to migrate database", "error", err)
		}
	}

	// 5. Redis
	redisCache, err := cache.NewRedisCache(&cfg.Data.Redis, cfg.CircuitBreaker, logger, metricsImpl)
	if err != nil {
		slog.Error("failed to init redis", "error", err)
	}

	// 6. 文件存储
	files := storage.NewLocalStore(uploadDir)

	// 7. 通知投递链路：Dispatcher 发布投递命令到 Kafka，消费端经 SMTP 实际发送
	var deliverer notifdomain.Sender
	if host := os.Getenv("SMTP_HOST"); host != "" {
		deliverer = sender.NewSMTPSender(
			host,
			envOr("SMTP_PORT", "587"),
			os.Getenv("SMTP_USER"),
			os.Getenv("SMTP_PASS"),
			envOr("SMTP_FROM", "no-reply@tradersroom.local"),
		)
	} else {
		deliverer = sender.NewMockEmailSender()
	}

	kafkaProducer := kafka.NewProducer(&cfg.MessageQueue.Kafka, logger, metricsImpl)
	notifSender := sender.NewKafkaNotificationSender(kafkaProducer, notificationTopic)

	consumerCfg := cfg.MessageQueue.Kafka
	consumerCfg.GroupID = "backoffice-notification"
	consumerCfg.Topic = notificationTopic
	kafkaConsumer := kafka.NewConsumer(&consumerCfg, logger, metricsImpl)
	deliveryHandler := notifconsumer.NewDeliveryHandler(deliverer)
	deliveryHandler.Subscribe(context.Background(), kafkaConsumer)

	// 8. 仓储
	userRepo := authmysql.NewUserRepository(db.RawDB())
	ledgerRepo := walletmysql.NewLedgerRepository(db.RawDB())
	depositMethodRepo := fundingmysql.NewDepositMethodRepository(db.RawDB())
	depositRequestRepo := fundingmysql.NewDepositRequestRepository(db.RawDB())
	withdrawalMethodRepo := fundingmysql.NewWithdrawalMethodRepository(db.RawDB())
	withdrawalRequestRepo := fundingmysql.NewWithdrawalRequestRepository(db.RawDB())
	kycRepo := kycmysql.NewKycDocumentRepository(db.RawDB())
	ticketRepo := supportmysql.NewSupportTicketRepository(db.RawDB())
	notifRepo := notifmysql.NewNotificationRepository(db.RawDB())
	statsRepo := adminmysql.NewStatsRepository(db.RawDB())

	var statsCache adminapp.StatsCache
	if redisCache != nil {
		statsCache = adminredis.NewStatsCache(redisCache.GetClient())
	}

	// 9. 应用服务
	dispatcher := notifapp.NewDispatcher(notifRepo, notifSender, slog.Default())

	tokenIssuer := authapp.NewTokenIssuer([]byte(jwtSecret), 24*time.Hour)
	authCommandSvc := authapp.NewAuthCommandService(userRepo, tokenIssuer, dispatcher, baseURL)
	authQuerySvc := authapp.NewAuthQueryService(userRepo)

	walletSvc := walletapp.NewWalletService(ledgerRepo)

	fundingCommandSvc := fundingapp.NewFundingCommandService(
		depositRequestRepo, withdrawalRequestRepo,
		depositMethodRepo, withdrawalMethodRepo,
		ledgerRepo, userRepo, dispatcher,
	)
	fundingQuerySvc := fundingapp.NewFundingQueryService(
		depositRequestRepo, withdrawalRequestRepo,
		depositMethodRepo, withdrawalMethodRepo,
	)
	methodCommandSvc := fundingapp.NewMethodCommandService(depositMethodRepo)

	kycSvc := kycapp.NewKycService(kycRepo, userRepo, dispatcher)
	eligibilityChecker := fundingapp.NewEligibilityChecker(kycSvc, withdrawalMethodRepo, ledgerRepo)

	supportSvc := supportapp.NewSupportService(ticketRepo, userRepo, dispatcher)
	userAdminSvc := userapp.NewUserAdminService(userRepo, kycRepo, depositRequestRepo, ledgerRepo, withdrawalMethodRepo)
	dashboardSvc := adminapp.NewDashboardService(statsRepo, statsCache)

	// 10. 接口层
	gin.SetMode(gin.ReleaseMode)
	if cfg.Server.Environment == "dev" {
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogging())

	api := r.Group("/api/v1")

	authHandler := authhttp.NewAuthHandler(authCommandSvc, authQuerySvc)
	authHandler.RegisterAuthRoutes(api)

	client := api.Group("/client", middleware.Authenticate([]byte(jwtSecret)), middleware.RequireRole("client"))
	authHandler.RegisterProfileRoutes(client)
	wallethttp.NewWalletHandler(walletSvc).RegisterRoutes(client)
	fundinghttp.NewClientFundingHandler(fundingCommandSvc, fundingQuerySvc, eligibilityChecker, files).RegisterRoutes(client)
	kycHandler := kychttp.NewKycHandler(kycSvc, files)
	kycHandler.RegisterClientRoutes(client)
	supportHandler := supporthttp.NewSupportHandler(supportSvc, files)
	supportHandler.RegisterClientRoutes(client)
	notifhttp.NewNotificationHandler(dispatcher).RegisterRoutes(client)

	admin := api.Group("/admin", middleware.Authenticate([]byte(jwtSecret)), middleware.RequireRole("admin"))
	adminhttp.NewDashboardHandler(dashboardSvc).RegisterRoutes(admin)
	userhttp.NewUserAdminHandler(userAdminSvc).RegisterRoutes(admin)
	fundinghttp.NewAdminFundingHandler(fundingCommandSvc, methodCommandSvc, fundingQuerySvc, files).RegisterRoutes(admin)
	kycHandler.RegisterAdminRoutes(admin)
	supportHandler.RegisterAdminRoutes(admin)

	// 11. 启动
	addr := fmt.Sprintf(":%d", cfg.Server.HTTP.Port)
	server := &http.Server{Addr: addr, Handler: r}

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("shutting down server...")
		case <-ctx.Done():
			slog.Info("context cancelled, shutting down...")
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", "error", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
