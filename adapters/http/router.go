package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codevaulthq/codevault/pkg/auth"
	"github.com/codevaulthq/codevault/pkg/logger"
)

// RouterDeps bundles everything the route table needs. The server binary and
// the end-to-end tests build the same router from it.
type RouterDeps struct {
	AuthHandler    *AuthHandler
	SessionHandler *SessionHandler
	ProfileHandler *ProfileHandler
	ProjectHandler *ProjectHandler
	CommentHandler *CommentHandler
	AIHandler      *AIHandler
	JWTService     *auth.JWTService
	Logger         logger.Logger
}

// optionalSession resolves the viewer on public routes when a session cookie
// is present, without requiring one.
func optionalSession(jwtSvc *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookieName)
		if err == nil && tokenString != "" {
			if claims, err := jwtSvc.ValidateToken(tokenString); err == nil {
				c.Set(GinContextKeyUserID, claims.UserID)
			}
		}
		c.Next()
	}
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ErrorMiddleware(deps.Logger))

	sessionRequired := SessionMiddleware(deps.JWTService)
	sessionOptional := optionalSession(deps.JWTService)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", deps.AuthHandler.Signup)
			authGroup.POST("/login", deps.AuthHandler.Login)
			authGroup.GET("/google", deps.AuthHandler.GoogleLogin)
			authGroup.GET("/google/callback", deps.AuthHandler.GoogleCallback)
		}

		api.POST("/session", deps.SessionHandler.Establish)

		public := api.Group("/")
		public.Use(sessionOptional)
		{
			public.GET("/projects", deps.ProjectHandler.ListProjects)
			public.GET("/projects/:id", deps.ProjectHandler.GetProject)
			public.GET("/projects/:id/comments", deps.CommentHandler.ListComments)
			public.GET("/profiles/:userId", deps.ProfileHandler.GetProfile)
		}

		private := api.Group("/")
		private.Use(sessionRequired)
		{
			private.GET("/profile", deps.ProfileHandler.GetMyProfile)
			private.PUT("/profile", deps.ProfileHandler.UpsertProfile)
			private.POST("/profile/avatar", deps.ProfileHandler.UploadAvatar)

			private.POST("/projects", deps.ProjectHandler.CreateProject)
			private.GET("/my/projects", deps.ProjectHandler.ListMyProjects)
			private.PUT("/projects/:id", deps.ProjectHandler.UpdateProject)
			private.DELETE("/projects/:id", deps.ProjectHandler.DeleteProject)
			private.POST("/projects/:id/upvote", deps.ProjectHandler.UpvoteProject)

			private.POST("/projects/:id/comments", deps.CommentHandler.AddComment)

			ai := private.Group("/ai")
			{
				ai.POST("/summarize", deps.AIHandler.SummarizeDescription)
				ai.POST("/repo-summary", deps.AIHandler.SummarizeRepo)
			}
		}
	}

	return router
}
