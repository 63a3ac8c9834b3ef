package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dcbcollege/noticeboard/internal/app/controllers"
	"github.com/dcbcollege/noticeboard/internal/middleware"
	"github.com/dcbcollege/noticeboard/internal/pkg/auth"
)

// Controllers holds the handler instances the router wires up.
type Controllers struct {
	Action   *controllers.ActionController
	Download *controllers.DownloadController
	Public   *controllers.PublicController
}

// Setup registers all routes on the engine.
func Setup(router *gin.Engine, ctrl Controllers, jwtService *auth.JWTService) {
	v1 := router.Group("/api/v1")

	// Admin panel action endpoint. Authentication is optional at the route
	// level; the dispatcher rejects protected actions itself so login can
	// share the endpoint.
	action := v1.Group("/action", middleware.OptionalAuth(jwtService))
	{
		action.GET("", ctrl.Action.HandleGet)
		action.POST("", ctrl.Action.HandlePost)
	}

	// Public college website endpoints.
	v1.GET("/notices", ctrl.Public.ListNotices)
	v1.GET("/notices/latest", ctrl.Public.LatestNotices)
	v1.GET("/notices/:id", ctrl.Public.NoticeDetail)
	v1.GET("/faculty", ctrl.Public.ListFaculty)
	v1.GET("/download", ctrl.Download.Download)
}
