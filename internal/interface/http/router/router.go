package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/xiebiao/bookstore-api/docs" // swagger文档
	"github.com/xiebiao/bookstore-api/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-api/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-api/internal/interface/http/middleware"
)

// Handlers 全部HTTP处理器
type Handlers struct {
	Health    *handler.HealthHandler
	User      *handler.UserHandler
	Book      *handler.BookHandler
	Edition   *handler.EditionHandler
	Author    *handler.AuthorHandler
	Publisher *handler.PublisherHandler
	Series    *handler.SeriesHandler
	Award     *handler.AwardHandler
	Rating    *handler.RatingHandler
	Checkout  *handler.CheckoutHandler
	Order     *handler.OrderHandler
}

// New 创建Gin引擎并注册路由
// 全局中间件顺序：Recovery → 请求日志 → 追踪 → 指标 → CORS → 限流
func New(cfg *config.Config, h Handlers, auth *middleware.AuthMiddleware, logger *zap.Logger) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode:
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	handler.RegisterValidation()

	r := gin.New()
	r.Use(
		middleware.Recovery(logger),
		middleware.RequestLogger(logger),
		middleware.Tracing(),
		middleware.Metrics(),
		middleware.CORS(cfg.Server.CORSOrigins),
	)
	if cfg.Server.RateLimit > 0 {
		r.Use(middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst).Middleware())
	}

	r.GET("/ping", h.Health.Ping)
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	// 生产环境不暴露文档
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	registerAuth(v1, h.User, auth)
	registerCatalog(v1, h, auth)
	registerOrders(v1, h.Order, auth)
	return r
}

func registerAuth(v1 *gin.RouterGroup, h *handler.UserHandler, auth *middleware.AuthMiddleware) {
	g := v1.Group("/auth")
	g.POST("/login", h.Login)
	g.POST("/register", h.Register)
	g.POST("/logout", auth.RequireAuth(), h.Logout)
	g.GET("/me", auth.RequireAuth(), h.Me)
	g.GET("/users", auth.RequireAuth(), auth.RequireAdmin(), h.Users)
}

// registerCatalog 目录数据：读公开，写需要管理员（评分只需登录）
func registerCatalog(v1 *gin.RouterGroup, h Handlers, auth *middleware.AuthMiddleware) {
	admin := []gin.HandlerFunc{auth.RequireAuth(), auth.RequireAdmin()}
	with := func(chain []gin.HandlerFunc, fn gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, chain...), fn)
	}

	books := v1.Group("/books")
	books.GET("", h.Book.List)
	books.GET("/search", h.Book.Search)
	books.GET("/bestsellers", h.Book.Bestsellers)
	books.GET("/series/:series_id", h.Book.BySeries)
	books.GET("/:id", h.Book.Get)
	books.POST("", with(admin, h.Book.Create)...)
	books.PUT("/:id", with(admin, h.Book.Update)...)
	books.DELETE("/:id", with(admin, h.Book.Delete)...)

	editions := v1.Group("/editions")
	editions.GET("", h.Edition.List)
	editions.GET("/:isbn", h.Edition.Get)
	editions.POST("", with(admin, h.Edition.Create)...)
	editions.PUT("/:isbn", with(admin, h.Edition.Update)...)
	editions.DELETE("/:isbn", with(admin, h.Edition.Delete)...)

	authors := v1.Group("/authors")
	authors.GET("", h.Author.List)
	authors.GET("/search", h.Author.Search)
	authors.GET("/prolific", h.Author.Prolific)
	authors.GET("/:id", h.Author.Get)
	authors.POST("", with(admin, h.Author.Create)...)
	authors.PUT("/:id", with(admin, h.Author.Update)...)
	authors.DELETE("/:id", with(admin, h.Author.Delete)...)

	publishers := v1.Group("/publishers")
	publishers.GET("", h.Publisher.List)
	publishers.GET("/:id", h.Publisher.Get)
	publishers.POST("", with(admin, h.Publisher.Create)...)
	publishers.PUT("/:id", with(admin, h.Publisher.Update)...)
	publishers.DELETE("/:id", with(admin, h.Publisher.Delete)...)

	series := v1.Group("/series")
	series.GET("", h.Series.List)
	series.GET("/:id", h.Series.Get)
	series.POST("", with(admin, h.Series.Create)...)
	series.PUT("/:id", with(admin, h.Series.Update)...)
	series.DELETE("/:id", with(admin, h.Series.Delete)...)

	awards := v1.Group("/awards")
	awards.GET("", h.Award.List)
	awards.GET("/:id", h.Award.Get)
	awards.POST("", with(admin, h.Award.Create)...)
	awards.PUT("/:id", with(admin, h.Award.Update)...)
	awards.DELETE("/:id", with(admin, h.Award.Delete)...)

	ratings := v1.Group("/ratings")
	ratings.GET("", h.Rating.List)
	ratings.GET("/summary/:book_id", h.Rating.Summary)
	ratings.GET("/:id", h.Rating.Get)
	ratings.POST("", auth.RequireAuth(), h.Rating.Create)
	ratings.PUT("/:id", with(admin, h.Rating.Update)...)
	ratings.DELETE("/:id", with(admin, h.Rating.Delete)...)

	checkouts := v1.Group("/checkouts")
	checkouts.GET("", h.Checkout.List)
	checkouts.GET("/:book_id/:month", h.Checkout.Get)
	checkouts.POST("", with(admin, h.Checkout.Create)...)
	checkouts.PUT("/:book_id/:month", with(admin, h.Checkout.Update)...)
	checkouts.DELETE("/:book_id/:month", with(admin, h.Checkout.Delete)...)
}

// registerOrders 订单全部需要登录，修改和删除需要管理员
func registerOrders(v1 *gin.RouterGroup, h *handler.OrderHandler, auth *middleware.AuthMiddleware) {
	orders := v1.Group("/orders", auth.RequireAuth())
	orders.GET("", h.List)
	orders.GET("/search", h.Search)
	orders.GET("/summary", h.Summary)
	orders.GET("/by-isbn/:isbn", h.ByISBN)
	orders.GET("/books-sold/:book_id", h.BooksSold)
	orders.GET("/:id", h.Get)
	orders.POST("", h.Create)
	orders.PUT("/:id", auth.RequireAdmin(), h.Update)
	orders.DELETE("/:id", auth.RequireAdmin(), h.Delete)
}
