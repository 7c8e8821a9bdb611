package blog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"hallin-site/config"
	harukiAPIHelper "hallin-site/utils/api"
	siteContent "hallin-site/utils/content"
	harukiLogger "hallin-site/utils/logger"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
	sets int
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mapCache) SetCache(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	m.ttls[key] = ttl
	m.sets++
	return nil
}

func (m *mapCache) GetCache(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	raw, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, sonic.Unmarshal(raw, out)
}

func (m *mapCache) DeleteCache(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func newContent(t *testing.T) *siteContent.Store {
	t.Helper()
	dir := t.TempDir()
	post := func(title, author, date string, featured bool, words int) string {
		return fmt.Sprintf("---\ntitle: %s\nauthor: [%s]\npublishedDate: %s\nfeatured: %t\n---\n%s\n",
			title, author, date, featured, strings.TrimSpace(strings.Repeat("word ", words)))
	}
	writeFile(t, filepath.Join(dir, "blog", "a.mdx"), post("A", "william", "2025-01-01T00:00:00Z", true, 700))
	writeFile(t, filepath.Join(dir, "blog", "b.mdx"), post("B", "william", "2025-02-01T00:00:00Z", false, 500))
	writeFile(t, filepath.Join(dir, "blog", "c.mdx"), post("C", "ada", "2025-03-01T00:00:00Z", false, 10))
	writeFile(t, filepath.Join(dir, "authors", "william.json"), `{"name":"William Hallin"}`)
	writeFile(t, filepath.Join(dir, "authors", "ada.json"), `{"name":"Ada"}`)
	s := siteContent.NewStore(dir)
	require.NoError(t, s.Reload())
	return s
}

func newApp(t *testing.T, cache harukiAPIHelper.StatsCache) (*fiber.App, *harukiAPIHelper.HallinRouterHelpers) {
	app := fiber.New(fiber.Config{JSONEncoder: sonic.Marshal, JSONDecoder: sonic.Unmarshal})
	helper := &harukiAPIHelper.HallinRouterHelpers{
		Router:  app,
		Config:  config.Default(),
		Content: newContent(t),
		Cache:   cache,
		Logger:  harukiLogger.NewLogger("Blog", "ERROR", io.Discard),
	}
	RegisterBlogRoutes(helper)
	return app, helper
}

func get[T any](t *testing.T, app *fiber.App, path string) (int, harukiAPIHelper.GenericResponse[T]) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out harukiAPIHelper.GenericResponse[T]
	require.NoError(t, sonic.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func TestStatsEndpoints(t *testing.T) {
	app, _ := newApp(t, nil)

	status, blog := get[siteContent.BlogStats](t, app, "/api/blog/stats")
	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, blog.UpdatedData)
	assert.Equal(t, siteContent.BlogStats{TotalPosts: 3, TotalWords: "2k", TotalReadTime: "8m"}, *blog.UpdatedData)

	status, authors := get[siteContent.AuthorStats](t, app, "/api/authors/stats")
	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, authors.UpdatedData)
	assert.Equal(t, siteContent.AuthorStats{TotalAuthors: 2, TopContributor: "William Hallin"}, *authors.UpdatedData)
}

func TestStatsAreCached(t *testing.T) {
	cache := newMapCache()
	app, helper := newApp(t, cache)

	get[siteContent.BlogStats](t, app, "/api/blog/stats")
	get[siteContent.BlogStats](t, app, "/api/blog/stats")
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 10*time.Minute, cache.ttls["hallin:content:stats:blog"])

	InvalidateStats(context.Background(), helper)
	get[siteContent.BlogStats](t, app, "/api/blog/stats")
	assert.Equal(t, 2, cache.sets)
}

func TestRecentAndFeatured(t *testing.T) {
	app, _ := newApp(t, nil)

	_, recent := get[[]PostSummary](t, app, "/api/blog/recent?limit=2")
	require.NotNil(t, recent.UpdatedData)
	require.Len(t, *recent.UpdatedData, 2)
	assert.Equal(t, "C", (*recent.UpdatedData)[0].Title)
	assert.Equal(t, "B", (*recent.UpdatedData)[1].Title)
	assert.Equal(t, 3, (*recent.UpdatedData)[1].ReadTime)

	status, featured := get[PostSummary](t, app, "/api/blog/featured")
	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, featured.UpdatedData)
	assert.Equal(t, "a", featured.UpdatedData.ID)
}
