package app

import (
	"patch_backend/docs"
	"patch_backend/internal/config"
	"patch_backend/internal/middleware"
	"patch_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.user.GetProfile)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)
		authGroup.PATCH("/user/location", c.user.UpdateLocation)
		authGroup.PUT("/user/radius", c.user.UpdateRadius)
		authGroup.GET("/users/search", c.user.SearchUsers)
		authGroup.GET("/users/:id", c.user.GetUser)
		authGroup.POST("/contacts/check", c.user.CheckContacts)

		// 好友关系
		authGroup.GET("/friends", c.friend.GetFriends)
		authGroup.DELETE("/friends/:friendId", c.friend.RemoveFriend)
		authGroup.POST("/friends/requests", c.friend.SendRequest)
		authGroup.GET("/friends/requests", c.friend.GetRequests)
		authGroup.PUT("/friends/requests/:id", c.friend.RespondRequest)

		// 附近好友发现
		authGroup.POST("/discovery/nearby", c.discovery.NearbyMutuals)
	}
}
