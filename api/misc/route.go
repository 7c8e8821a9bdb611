package misc

import harukiAPIHelper "hallin-site/utils/api"

func RegisterMiscRoutes(apiHelper *harukiAPIHelper.HallinRouterHelpers) {
	registerHealthRoutes(apiHelper)
}
