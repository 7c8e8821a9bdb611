package api

import (
	"hallin-site/api/actions"
	"hallin-site/api/blog"
	"hallin-site/api/misc"
	harukiAPIHelper "hallin-site/utils/api"
)

func RegisterRoutes(apiHelper *harukiAPIHelper.HallinRouterHelpers) {
	misc.RegisterMiscRoutes(apiHelper)
	actions.RegisterActionRoutes(apiHelper)
	blog.RegisterBlogRoutes(apiHelper)
	if apiHelper.Config.Backend.Debug {
		RegisterDebugRoutes(apiHelper)
	}
}
