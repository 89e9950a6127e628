package handler

import (
	"net/http"

	"exchange_back/models"
	"exchange_back/pkg/middleware"
	"exchange_back/pkg/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Config struct {
	AllowOrigins      []string
	CookieDomain      string
	CookieSecure      bool
	UploadDir         string
	MaxUploadBytes    int64
	AuthRatePerMinute int
	AuthRateBurst     int
	// TrustedProxies may set X-Forwarded-For. Empty means the peer address is
	// the client.
	TrustedProxies []string
}

type Handler struct {
	service *service.Service
	tokens  middleware.TokenParser
	cfg     Config
	metrics *middleware.Metrics
	limiter *middleware.RateLimiter
}

func NewHandler(service *service.Service, tokens middleware.TokenParser, cfg Config) *Handler {
	setupValidator()
	if cfg.MaxUploadBytes == 0 {
		cfg.MaxUploadBytes = 5 << 20
	}
	if cfg.AuthRatePerMinute == 0 {
		cfg.AuthRatePerMinute = 20
	}
	if cfg.AuthRateBurst == 0 {
		cfg.AuthRateBurst = 5
	}
	return &Handler{
		service: service,
		tokens:  tokens,
		cfg:     cfg,
		metrics: middleware.NewMetrics(),
		limiter: middleware.NewRateLimiter(cfg.AuthRatePerMinute, cfg.AuthRateBurst),
	}
}

func (h *Handler) InitRoute() *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(h.cfg.TrustedProxies); err != nil {
		logrus.WithError(err).Error("invalid trusted proxies, forwarded headers ignored")
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(), h.metrics.Middleware())

	if len(h.cfg.AllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     h.cfg.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
		}))
	}

	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	api := router.Group("/api")
	{
		auth := api.Group("/auth", h.limiter.Middleware())
		{
			auth.POST("/register", h.Register)
			auth.POST("/verify-otp", h.VerifyOTP)
			auth.POST("/resend-otp", h.ResendOTP)
			auth.POST("/login", h.Login)
			auth.POST("/logout", h.Logout)
		}

		api.GET("/coins", h.ListVisibleCoins)
		api.GET("/plans", h.ListPlans)
		api.GET("/signals", h.ListSignals)
		api.GET("/stakes", h.ListEnabledStakes)
		api.GET("/copy-traders", h.ListEnabledCopyTraders)

		user := api.Group("/user", middleware.AuthMiddleware(h.tokens))
		{
			user.GET("/me", h.GetMe)
			user.PUT("/profile", h.UpdateProfile)
			user.PUT("/password", h.ChangePassword)
			user.POST("/kyc", h.SubmitKyc)
			user.GET("/balances", h.GetBalances)
			user.GET("/transactions", h.GetTransactions)
			user.POST("/deposit", h.Deposit)
			user.POST("/withdraw", h.Withdraw)
			user.POST("/swap", h.Swap)
		}
	}

	admin := router.Group("/admin_api", middleware.AuthMiddleware(h.tokens), middleware.RequireRole(models.RoleAdmin))
	{
		coins := admin.Group("/coins")
		{
			coins.GET("", h.ListAllCoins)
			coins.GET("/:id", h.GetCoin)
			coins.POST("", h.CreateCoin)
			coins.PUT("/:id", h.UpdateCoin)
			coins.DELETE("/:id", h.DeleteCoin)
			coins.POST("/:id/sync-rate", h.SyncRate)
		}

		plans := admin.Group("/plans")
		{
			plans.GET("", h.ListPlans)
			plans.GET("/:id", h.GetPlan)
			plans.POST("", h.CreatePlan)
			plans.PUT("/:id", h.UpdatePlan)
			plans.DELETE("/:id", h.DeletePlan)
		}

		signals := admin.Group("/signals")
		{
			signals.GET("", h.ListSignals)
			signals.GET("/:id", h.GetSignal)
			signals.POST("", h.CreateSignal)
			signals.PUT("/:id", h.UpdateSignal)
			signals.DELETE("/:id", h.DeleteSignal)
		}

		stakes := admin.Group("/stakes")
		{
			stakes.GET("", h.ListAllStakes)
			stakes.GET("/:id", h.GetStake)
			stakes.POST("", h.CreateStake)
			stakes.PUT("/:id", h.UpdateStake)
			stakes.DELETE("/:id", h.DeleteStake)
		}

		traders := admin.Group("/copy-traders")
		{
			traders.GET("", h.ListAllCopyTraders)
			traders.GET("/:id", h.GetCopyTrader)
			traders.POST("", h.CreateCopyTrader)
			traders.PUT("/:id", h.UpdateCopyTrader)
			traders.DELETE("/:id", h.DeleteCopyTrader)
		}

		users := admin.Group("/users")
		{
			users.GET("", h.ListUsers)
			users.PUT("/:id/kyc", h.SetKycStatus)
			users.GET("/:id/kyc/document", h.GetKycDocument)
			users.POST("/:id/balance", h.AdjustBalance)
		}

		txs := admin.Group("/transactions")
		{
			txs.GET("", h.ListAllTransactions)
			txs.POST("/:id/approve", h.ApproveTransaction)
			txs.POST("/:id/reject", h.RejectTransaction)
		}
	}
	return router
}
