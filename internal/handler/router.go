package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/middleware"
	"github.com/SKT-TRTR/zyrok-mobile-app/pkg/jwt"
	pkglog "github.com/SKT-TRTR/zyrok-mobile-app/pkg/log"
	"github.com/SKT-TRTR/zyrok-mobile-app/pkg/response"
)

// Router bundles the HTTP surface.
type Router struct {
	WS         *WSHandler
	Videos     *VideoHandler
	Engagement *EngagementHandler
	Social     *SocialHandler
	JWT        *jwt.Manager
	RateLimit  *middleware.RateLimiter

	// MediaDir, when set, is served statically under /media. Only the
	// local storage backend needs it; S3 URLs resolve on their own.
	MediaDir string
}

// Setup registers every route on a fresh gin engine.
func (r *Router) Setup() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(pkglog.GinMiddleware(pkglog.L()))
	if r.RateLimit != nil {
		engine.Use(r.RateLimit.Middleware())
	}

	engine.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})

	engine.GET("/ws", r.WS.HandleWebSocket)

	if r.MediaDir != "" {
		engine.Static("/media", r.MediaDir)
	}

	api := engine.Group("/api")
	{
		api.GET("/videos", middleware.OptionalAuth(r.JWT), r.Videos.Feed)
		api.GET("/videos/:id", r.Videos.Get)
		api.POST("/videos", middleware.RequireAuth(r.JWT), r.Videos.Upload)
		api.POST("/videos/upload", middleware.RequireAuth(r.JWT), r.Videos.Upload)
		api.DELETE("/videos/:id", middleware.RequireAuth(r.JWT), r.Videos.Delete)

		api.GET("/videos/:id/comments", r.Engagement.Comments)
		api.POST("/videos/:id/comments", middleware.RequireAuth(r.JWT), r.Engagement.CreateComment)
		api.GET("/videos/:id/likes", r.Engagement.VideoLikes)
		api.POST("/videos/:id/like", middleware.RequireAuth(r.JWT), r.Engagement.ToggleVideoLike)
		api.POST("/comments/:id/like", middleware.RequireAuth(r.JWT), r.Engagement.ToggleCommentLike)

		api.GET("/users/:id", r.Social.Profile)
		api.GET("/users/:id/videos", r.Videos.ByUser)
		api.GET("/users/:id/followers", r.Social.Followers)
		api.GET("/users/:id/following", r.Social.Following)
		api.GET("/users/:id/followers/count", r.Social.FollowersCount)
		api.POST("/users/:id/follow", middleware.RequireAuth(r.JWT), r.Social.ToggleFollow)

		api.GET("/search", r.Social.Search)
		api.GET("/search/users", r.Social.SearchUsers)
		api.GET("/search/videos", r.Social.SearchVideos)
		api.GET("/music", r.Videos.Music)
	}

	return engine
}
