package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	harukiApi "hallin-site/api"
	"hallin-site/api/blog"
	harukiConfig "hallin-site/config"
	harukiAPIHelper "hallin-site/utils/api"
	"hallin-site/utils/cloudflare"
	"hallin-site/utils/content"
	harukiDatabaseManager "hallin-site/utils/database"
	harukiMongo "hallin-site/utils/database/mongo"
	harukiRedis "hallin-site/utils/database/redis"
	harukiLogger "hallin-site/utils/logger"
	"hallin-site/utils/mailer"
	"hallin-site/utils/resend"
	harukiVersion "hallin-site/version"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "hallin-site",
	Short:         "Form actions and content API for the Hallin Media site",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := harukiConfig.Load(configPath)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", harukiConfig.DefaultConfigPath, "path to the YAML config file")
	rootCmd.AddCommand(serveCmd, statsCmd, submissionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		harukiLogger.Errorf("%v", err)
		os.Exit(1)
	}
}

func openLogWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	return io.MultiWriter(os.Stdout, f), func() { _ = f.Close() }, nil
}

func cspMiddleware(c *fiber.Ctx) error {
	nonceBytes := make([]byte, 16)
	if _, err := rand.Read(nonceBytes); err != nil {
		return err
	}
	nonce := base64.StdEncoding.EncodeToString(nonceBytes)
	c.Set("Content-Security-Policy",
		"default-src 'self'; "+
			"script-src 'self' https://challenges.cloudflare.com 'nonce-"+nonce+"'; "+
			"frame-src https://challenges.cloudflare.com; "+
			"style-src 'self' 'unsafe-inline'; "+
			"img-src 'self' data: https:; "+
			"connect-src 'self' https://challenges.cloudflare.com; "+
			"object-src 'none'; "+
			"base-uri 'self'; "+
			"form-action 'self';",
	)
	c.Locals("cspNonce", nonce)
	return c.Next()
}

func openStores(ctx context.Context, cfg harukiConfig.Config, mainLogger *harukiLogger.Logger) (*harukiDatabaseManager.HallinDBManager, error) {
	var redisClient *harukiRedis.HallinRedisManager
	if cfg.Redis.Host != "" {
		redisClient = harukiRedis.NewRedisClient(cfg.Redis)
	} else {
		mainLogger.Warnf("redis not configured: token replay guard, submit limiter and stats cache are off")
	}
	var mongoClient *harukiMongo.MongoDBManager
	if cfg.MongoDB.URL != "" {
		var err error
		mongoClient, err = harukiMongo.NewMongoDBManager(ctx, cfg.MongoDB.URL, cfg.MongoDB.DB, cfg.MongoDB.Submissions)
		if err != nil {
			return nil, fmt.Errorf("init MongoDB: %w", err)
		}
		if err := mongoClient.EnsureIndexes(ctx); err != nil {
			mainLogger.Warnf("failed to ensure submission indexes: %v", err)
		}
	}
	return harukiDatabaseManager.NewHallinDBManager(redisClient, mongoClient), nil
}

func serve(ctx context.Context, cfg harukiConfig.Config) error {
	loggerWriter, closeLog, err := openLogWriter(cfg.Backend.MainLogFile)
	if err != nil {
		return fmt.Errorf("open main log file: %w", err)
	}
	defer closeLog()
	mainLogger := harukiLogger.NewLogger("Main", cfg.Backend.LogLevel, loggerWriter)
	harukiLogger.SetDefault(mainLogger)
	defer func() { _ = mainLogger.Sync() }()
	mainLogger.Infof("========================= Hallin Site %s =========================", harukiVersion.Version)

	dbMgr, err := openStores(ctx, cfg, mainLogger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := dbMgr.Close(closeCtx); err != nil {
			mainLogger.Warnf("closing stores: %v", err)
		}
	}()

	var resendClient *resend.Client
	if cfg.Resend.APIKey != "" {
		resendClient = resend.NewClient(cfg.Resend, harukiLogger.NewLogger("Resend", cfg.Backend.LogLevel, loggerWriter))
	}
	mail, audience, err := mailer.New(cfg, resendClient)
	if err != nil {
		return err
	}
	verifier := cloudflare.NewVerifier(cfg.Turnstile, harukiLogger.NewLogger("Turnstile", cfg.Backend.LogLevel, loggerWriter))

	contentStore := content.NewStore(cfg.Content.Dir)
	if err := contentStore.Reload(); err != nil {
		return fmt.Errorf("load content from %s: %w", cfg.Content.Dir, err)
	}

	app := fiber.New(fiber.Config{
		AppName:                 "hallin-site " + harukiVersion.Version,
		DisableStartupMessage:   true,
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ProxyHeader:             cfg.Backend.ProxyHeader,
		EnableTrustedProxyCheck: len(cfg.Backend.TrustedProxies) > 0,
		TrustedProxies:          cfg.Backend.TrustedProxies,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cspMiddleware)
	allowedOrigins := make(map[string]struct{})
	for _, origin := range cfg.Backend.AllowCORS {
		allowedOrigins[origin] = struct{}{}
	}
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			_, ok := allowedOrigins[origin]
			return ok
		},
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	if cfg.Backend.AccessLog != "" {
		loggerConfig := logger.Config{Format: cfg.Backend.AccessLog}
		if cfg.Backend.AccessLogPath != "" {
			accessLogFile, err := os.OpenFile(cfg.Backend.AccessLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				return fmt.Errorf("open access log file: %w", err)
			}
			defer func() { _ = accessLogFile.Close() }()
			loggerConfig.Output = accessLogFile
		}
		app.Use(logger.New(loggerConfig))
	}

	apiHelper := harukiAPIHelper.NewHallinRouterHelpers(
		app,
		cfg,
		dbMgr,
		verifier,
		mail,
		audience,
		contentStore,
		harukiLogger.NewLogger("Actions", cfg.Backend.LogLevel, loggerWriter),
	)
	harukiApi.RegisterRoutes(apiHelper)

	if cfg.Content.Watch {
		contentLogger := harukiLogger.NewLogger("Content", cfg.Backend.LogLevel, loggerWriter)
		go func() {
			onReload := func() { blog.InvalidateStats(ctx, apiHelper) }
			if err := contentStore.Watch(ctx, contentLogger, 0, onReload); err != nil {
				contentLogger.Errorf("content watcher stopped: %v", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		mainLogger.Infof("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			mainLogger.Errorf("shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Backend.Host, cfg.Backend.Port)
	if cfg.Backend.SSL {
		mainLogger.Infof("SSL enabled, starting HTTPS server at %s", addr)
		if err := app.ListenTLS(addr, cfg.Backend.SSLCert, cfg.Backend.SSLKey); err != nil {
			return fmt.Errorf("start HTTPS server: %w", err)
		}
		return nil
	}
	mainLogger.Infof("Starting HTTP server at %s", addr)
	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("start HTTP server: %w", err)
	}
	return nil
}
