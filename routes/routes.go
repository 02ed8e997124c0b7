package routes

import (
	"net/http"

	"broilers/auth"
	"broilers/content"
	"broilers/filemgr"
	"broilers/livefeed"
	"broilers/middleware"
	"broilers/orders"
	"broilers/ratelim"

	"github.com/julienschmidt/httprouter"
)

// Handlers bundles everything the route table hands requests to.
type Handlers struct {
	Orders  *orders.Handler
	Content *content.Handler
	Auth    *auth.Handler
	Live    *livefeed.Handler
	Uploads *filemgr.Store

	Gate         *middleware.Auth
	OrderLimiter *ratelim.RateLimiter
	LoginLimiter *ratelim.RateLimiter
}

func AddStaticRoutes(router *httprouter.Router, uploadDir string) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir(uploadDir))
}

func AddOrderRoutes(router *httprouter.Router, h Handlers) {
	router.GET("/health", h.Orders.Health)

	router.POST("/api/orders", h.OrderLimiter.Limit(h.Orders.CreateOrder))
	router.GET("/api/orders", h.Gate.Authenticate(h.Orders.ListOrders))
	router.GET("/api/orders/:id", h.Orders.GetOrder)
	router.GET("/api/orders/:id/qr", h.Orders.OrderQR)
	router.GET("/api/orders/:id/receipt", h.Gate.Authenticate(h.Orders.OrderReceipt))
	router.GET("/api/orders/:id/notify", h.Gate.Authenticate(h.Orders.NotifyCustomer))
	router.PUT("/api/orders/:id", h.Gate.Authenticate(h.Orders.UpdateOrderStatus))
	router.DELETE("/api/orders/:id", h.Gate.Authenticate(h.Orders.DeleteOrder))
}

func AddLiveRoutes(router *httprouter.Router, h Handlers) {
	router.GET("/api/live/orders", h.Live.AdminFeed)
	router.GET("/api/live/orders/:id", h.Live.OrderFeed)
}

func AddContentRoutes(router *httprouter.Router, h Handlers) {
	router.GET("/api/content", h.Content.GetContent)
	router.GET("/api/content/:key", h.Content.GetContentKey)
	router.PUT("/api/content/:key", h.Gate.Authenticate(h.Content.UpdateContent))
}

func AddUploadRoutes(router *httprouter.Router, h Handlers) {
	router.POST("/api/uploads/:kind", h.Gate.Authenticate(h.Uploads.Upload))
}

func AddAuthRoutes(router *httprouter.Router, h Handlers) {
	router.POST("/api/auth/login", h.LoginLimiter.Limit(h.Auth.Login))
}

// Setup builds the full route table.
func Setup(h Handlers, uploadDir string) *httprouter.Router {
	router := httprouter.New()

	AddOrderRoutes(router, h)
	AddLiveRoutes(router, h)
	AddContentRoutes(router, h)
	AddUploadRoutes(router, h)
	AddAuthRoutes(router, h)
	AddStaticRoutes(router, uploadDir)

	return router
}
