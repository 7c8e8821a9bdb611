package api

import (
	"runtime"
	"runtime/debug"

	harukiAPIHelper "hallin-site/utils/api"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
)

func RegisterDebugRoutes(apiHelper *harukiAPIHelper.HallinRouterHelpers) {
	apiHelper.Router.Get("/api/debug/memstats", func(c *fiber.Ctx) error {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		return c.JSON(fiber.Map{
			"alloc":           humanize.IBytes(m.Alloc),
			"total_alloc":     humanize.IBytes(m.TotalAlloc),
			"sys":             humanize.IBytes(m.Sys),
			"heap_alloc":      humanize.IBytes(m.HeapAlloc),
			"heap_inuse":      humanize.IBytes(m.HeapInuse),
			"heap_released":   humanize.IBytes(m.HeapReleased),
			"heap_objects":    humanize.Comma(int64(m.HeapObjects)),
			"goroutines":      runtime.NumGoroutine(),
			"num_gc":          m.NumGC,
			"gc_cpu_fraction": humanize.FtoaWithDigits(m.GCCPUFraction, 4),
		})
	})

	apiHelper.Router.Post("/api/debug/freemem", func(c *fiber.Ctx) error {
		var before runtime.MemStats
		runtime.ReadMemStats(&before)

		runtime.GC()
		debug.FreeOSMemory()

		var after runtime.MemStats
		runtime.ReadMemStats(&after)

		var freed uint64
		if before.HeapAlloc > after.HeapAlloc {
			freed = before.HeapAlloc - after.HeapAlloc
		}
		return c.JSON(fiber.Map{
			"before_heap":   humanize.IBytes(before.HeapAlloc),
			"after_heap":    humanize.IBytes(after.HeapAlloc),
			"freed":         humanize.IBytes(freed),
			"heap_released": humanize.IBytes(after.HeapReleased),
		})
	})
}
