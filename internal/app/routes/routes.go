package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/acodelab/backend/internal/app/controllers"
	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	questionController *controllers.QuestionController,
	voteController *controllers.VoteController,
	articleController *controllers.ArticleController,
	jobController *controllers.JobController,
	storeController *controllers.StoreController,
	connectController *controllers.ConnectController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.RegisterUser)
		auth.POST("/register/company", authController.RegisterCompany)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/logout", authController.Logout)
	}

	// --- Public browse routes ---
	v1.GET("/users", userController.Leaderboard)
	v1.GET("/users/:username", userController.GetProfile)

	questions := v1.Group("/questions")
	{
		questions.GET("", questionController.List)
		questions.GET("/:id", questionController.Get)
	}

	// Article detail uses optional auth so authors can read their own drafts
	articles := v1.Group("/articles")
	{
		articles.GET("", articleController.List)
		articles.GET("/:id", authMiddleware.OptionalAuth(), articleController.Get)
	}

	jobs := v1.Group("/jobs")
	{
		jobs.GET("", jobController.List)
		jobs.GET("/:id", jobController.Get)
	}

	store := v1.Group("/store")
	{
		store.GET("/items", storeController.ListItems)
		store.GET("/items/:id", storeController.GetItem)
	}

	connect := v1.Group("/connect")
	{
		connect.GET("/posts/:id", connectController.GetPost)
		connect.GET("/portfolio", connectController.WeeklyShowcase)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout/all", authController.LogoutAll)
		authenticated.GET("/me", userController.Me)
		authenticated.PUT("/me", userController.UpdateMe)
		authenticated.GET("/me/articles", articleController.ListOwn)
		authenticated.GET("/me/jobs", jobController.ListOwn)
		authenticated.POST("/users/:id/follow", userController.Follow)
		authenticated.DELETE("/users/:id/follow", userController.Unfollow)

		questionsProtected := authenticated.Group("/questions")
		{
			questionsProtected.POST("", questionController.Create)
			questionsProtected.PUT("/:id", questionController.Update)
			questionsProtected.DELETE("/:id", questionController.Delete)
			questionsProtected.POST("/:id/answers", questionController.Answer)
		}
		authenticated.POST("/answers/:id/accept", questionController.AcceptAnswer)

		authenticated.POST("/votes", voteController.Vote)

		articlesProtected := authenticated.Group("/articles")
		{
			articlesProtected.POST("", articleController.Create)
			articlesProtected.PUT("/:id", articleController.Update)
			articlesProtected.DELETE("/:id", articleController.Delete)
			articlesProtected.POST("/:id/publish", articleController.Publish)
			articlesProtected.DELETE("/:id/publish", articleController.Unpublish)
		}

		jobsProtected := authenticated.Group("/jobs")
		{
			jobsProtected.POST("", jobController.Create)
			jobsProtected.PUT("/:id", jobController.Update)
			jobsProtected.DELETE("/:id", jobController.Delete)
			jobsProtected.POST("/:id/apply", jobController.Apply)
			jobsProtected.GET("/:id/applications", jobController.ListApplications)
		}
		authenticated.GET("/applications", jobController.MyApplications)
		authenticated.DELETE("/applications/:id", jobController.Withdraw)
		authenticated.POST("/applications/:id/review", jobController.Review)

		storeProtected := authenticated.Group("/store")
		{
			storeProtected.POST("/purchase", storeController.Purchase)
			storeProtected.GET("/purchases", storeController.PurchaseHistory)
			storeProtected.GET("/inventory", storeController.Inventory)
		}

		connectProtected := authenticated.Group("/connect")
		{
			connectProtected.GET("/feed", connectController.Feed)
			connectProtected.POST("/posts", connectController.CreatePost)
			connectProtected.DELETE("/posts/:id", connectController.DeletePost)
			connectProtected.POST("/posts/:id/comments", connectController.Comment)
			connectProtected.POST("/posts/:id/like", connectController.ToggleLike)
			connectProtected.POST("/portfolio", connectController.SubmitPortfolio)
		}

		// --- Admin routes ---
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.AdminRequired())
		{
			admin.GET("/answers/pending", adminController.PendingAnswers)
			admin.POST("/answers/:id/validate", adminController.ValidateAnswer)
			admin.POST("/answers/:id/reject", adminController.RejectAnswer)
			admin.POST("/questions/:id/feature", adminController.FeatureQuestion)
			admin.POST("/portfolio/:id/feature", adminController.FeatureSubmission)
			admin.POST("/users/:id/ban", adminController.BanUser)
			admin.DELETE("/users/:id/ban", adminController.UnbanUser)
			admin.POST("/users/:id/points", adminController.AdjustPoints)
			admin.POST("/store/items", adminController.CreateStoreItem)
			admin.PUT("/store/items/:id/active", adminController.SetStoreItemActive)
			admin.GET("/stats", adminController.PlatformStats)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Success: true,
			Data:    gin.H{"status": "ok"},
		})
	})
}
