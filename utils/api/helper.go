package api

import (
	"context"
	"time"

	"hallin-site/config"
	"hallin-site/utils/cloudflare"
	"hallin-site/utils/content"
	"hallin-site/utils/database"
	mongoManager "hallin-site/utils/database/mongo"
	harukiLogger "hallin-site/utils/logger"
	"hallin-site/utils/mailer"

	"github.com/gofiber/fiber/v2"
)

type TurnstileVerifier interface {
	ValidateTurnstile(ctx context.Context, token, remoteIP string) *cloudflare.TurnstileResponse
}

// SubmissionGuard enforces single-use proof tokens and per-IP submit limits.
type SubmissionGuard interface {
	ClaimToken(ctx context.Context, token string, ttl time.Duration) (bool, error)
	AllowSubmit(ctx context.Context, action, ip string, limit int, window time.Duration) (bool, error)
}

type SubmissionArchive interface {
	ArchiveSubmission(ctx context.Context, s mongoManager.Submission) error
}

type StatsCache interface {
	SetCache(ctx context.Context, key string, value any, ttl time.Duration) error
	GetCache(ctx context.Context, key string, out any) (bool, error)
	DeleteCache(ctx context.Context, key string) error
}

// HallinRouterHelpers carries everything a route group needs. Guard, Archive
// and Cache are optional and stay nil when their backend is not configured.
type HallinRouterHelpers struct {
	Router    fiber.Router
	Config    config.Config
	DBManager *database.HallinDBManager
	Verifier  TurnstileVerifier
	Mailer    mailer.Mailer
	Audience  mailer.Audience
	Guard     SubmissionGuard
	Archive   SubmissionArchive
	Cache     StatsCache
	Content   *content.Store
	Logger    *harukiLogger.Logger
}

func NewHallinRouterHelpers(
	router fiber.Router,
	cfg config.Config,
	dbManager *database.HallinDBManager,
	verifier TurnstileVerifier,
	mail mailer.Mailer,
	audience mailer.Audience,
	contentStore *content.Store,
	logger *harukiLogger.Logger,
) *HallinRouterHelpers {
	h := &HallinRouterHelpers{
		Router:    router,
		Config:    cfg,
		DBManager: dbManager,
		Verifier:  verifier,
		Mailer:    mail,
		Audience:  audience,
		Content:   contentStore,
		Logger:    logger,
	}
	// Assign only non-nil stores so the interfaces never hold typed nils.
	if dbManager != nil && dbManager.Redis != nil {
		h.Guard = dbManager.Redis
		h.Cache = dbManager.Redis
	}
	if dbManager != nil && dbManager.Mongo != nil {
		h.Archive = dbManager.Mongo
	}
	return h
}
