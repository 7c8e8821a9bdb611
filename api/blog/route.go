package blog

import (
	"context"
	"time"

	harukiAPIHelper "hallin-site/utils/api"
	siteContent "hallin-site/utils/content"
	redisManager "hallin-site/utils/database/redis"

	"github.com/gofiber/fiber/v2"
)

type PostSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Author        []string  `json:"author"`
	PublishedDate time.Time `json:"publishedDate"`
	ReadTime      int       `json:"readTime"`
}

func summarize(p siteContent.Post) PostSummary {
	return PostSummary{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Author:        p.Author,
		PublishedDate: p.PublishedDate,
		ReadTime:      siteContent.CalculateReadTime(p.Body),
	}
}

// cached serves compute through the stats cache when one is configured.
func cached[T any](ctx context.Context, apiHelper *harukiAPIHelper.HallinRouterHelpers, name string, compute func() T) T {
	if apiHelper.Cache == nil {
		return compute()
	}
	key := redisManager.BuildContentStatsKey(name)
	var out T
	found, err := apiHelper.Cache.GetCache(ctx, key, &out)
	if err != nil {
		apiHelper.Logger.Warnf("stats cache read %s failed: %v", key, err)
	} else if found {
		return out
	}
	out = compute()
	if err := apiHelper.Cache.SetCache(ctx, key, out, apiHelper.Config.Content.CacheTTL); err != nil {
		apiHelper.Logger.Warnf("stats cache write %s failed: %v", key, err)
	}
	return out
}

func handleBlogStats(apiHelper *harukiAPIHelper.HallinRouterHelpers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats := cached(c.UserContext(), apiHelper, "blog", func() siteContent.BlogStats {
			return siteContent.CalculateBlogStats(apiHelper.Content.Posts())
		})
		return harukiAPIHelper.UpdatedDataResponse(c, fiber.StatusOK, "ok", &stats)
	}
}

func handleAuthorStats(apiHelper *harukiAPIHelper.HallinRouterHelpers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats := cached(c.UserContext(), apiHelper, "authors", func() siteContent.AuthorStats {
			return siteContent.CalculateAuthorStats(apiHelper.Content.Authors(), apiHelper.Content.Posts())
		})
		return harukiAPIHelper.UpdatedDataResponse(c, fiber.StatusOK, "ok", &stats)
	}
}

func handleRecentPosts(apiHelper *harukiAPIHelper.HallinRouterHelpers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		posts := siteContent.RecentPosts(apiHelper.Content.Posts(), c.QueryInt("limit", siteContent.DefaultRecentLimit))
		out := make([]PostSummary, 0, len(posts))
		for _, p := range posts {
			out = append(out, summarize(p))
		}
		return harukiAPIHelper.UpdatedDataResponse(c, fiber.StatusOK, "ok", &out)
	}
}

func handleFeaturedPost(apiHelper *harukiAPIHelper.HallinRouterHelpers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		post := siteContent.FeaturedPost(apiHelper.Content.Posts())
		if post == nil {
			return harukiAPIHelper.UpdatedDataResponse[PostSummary](c, fiber.StatusNotFound, "no featured post", nil)
		}
		summary := summarize(*post)
		return harukiAPIHelper.UpdatedDataResponse(c, fiber.StatusOK, "ok", &summary)
	}
}

// InvalidateStats drops cached stats so the next request recomputes them.
func InvalidateStats(ctx context.Context, apiHelper *harukiAPIHelper.HallinRouterHelpers) {
	if apiHelper.Cache == nil {
		return
	}
	for _, name := range []string{"blog", "authors"} {
		if err := apiHelper.Cache.DeleteCache(ctx, redisManager.BuildContentStatsKey(name)); err != nil {
			apiHelper.Logger.Warnf("failed to invalidate %s stats: %v", name, err)
		}
	}
}

func RegisterBlogRoutes(apiHelper *harukiAPIHelper.HallinRouterHelpers) {
	if apiHelper.Content == nil {
		return
	}
	api := apiHelper.Router.Group("/api")
	api.Get("/blog/stats", handleBlogStats(apiHelper))
	api.Get("/blog/recent", handleRecentPosts(apiHelper))
	api.Get("/blog/featured", handleFeaturedPost(apiHelper))
	api.Get("/authors/stats", handleAuthorStats(apiHelper))
}
