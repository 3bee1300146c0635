package router

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"

	"github.com/mnasmart/onlinemart/app/controllers"
	"github.com/mnasmart/onlinemart/internal/pkg/env"
	"github.com/mnasmart/onlinemart/internal/pkg/middleware"
	"github.com/mnasmart/onlinemart/internal/pkg/ratelimit"
)

// Per-endpoint budgets for the fixed-window limiters. The chat and records
// proxies guard costly upstream calls; newsletter guards outbound mail.
const (
	chatLimitPerMinute       = 10
	recordsLimitPerMinute    = 30
	newsletterLimitPerMinute = 5
)

type ApiRouter struct {
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, x-paystack-signature",
		AllowMethods: "GET, POST, PATCH, OPTIONS",
	}), globalLimiter())

	api.Get("/health", controllers.HandleHealth)

	// Catalog (public)
	api.Get("/products", controllers.HandleListProducts)
	api.Get("/products/:slug", controllers.HandleGetProduct)

	// Payment provider callbacks. No auth middleware; authenticity comes from
	// the HMAC signature over the raw body.
	api.Post("/webhooks/paystack", controllers.HandlePaystackWebhook)

	// Authenticated buyer/seller surface
	auth := middleware.BearerAuthMiddleware()
	api.Post("/orders", auth, controllers.HandleCreateOrder)
	api.Get("/orders/:orderNumber/tracking", auth, controllers.HandleGetOrderTracking)
	api.Get("/notifications", auth, controllers.HandleListNotifications)
	api.Patch("/notifications/:id/read", auth, controllers.HandleMarkNotificationRead)
	api.Post("/payments/initialize", auth, controllers.HandleInitializePayment)
	api.Post("/bank/resolve", auth, controllers.HandleResolveBankAccount)

	// Rate-limited public proxies. Each endpoint gets its own limiter
	// instance; counters are per process unless SHARED_RATE_LIMITS is set.
	api.Post("/chat",
		ratelimit.Middleware(newEndpointLimiter("chat", chatLimitPerMinute), nil),
		controllers.HandleChat)
	api.Post("/records",
		ratelimit.Middleware(newEndpointLimiter("records", recordsLimitPerMinute), nil),
		controllers.HandleFetchRecords)
	api.Post("/newsletter/subscribe",
		ratelimit.Middleware(newEndpointLimiter("newsletter", newsletterLimitPerMinute), nil),
		controllers.HandleNewsletterSubscribe)
}

func newEndpointLimiter(name string, limit int) ratelimit.Limiter {
	if env.GetEnv("SHARED_RATE_LIMITS", "false") == "true" {
		return ratelimit.NewRedisFixedWindow(limit, ratelimit.DefaultWindow, "rl:"+name)
	}
	return ratelimit.NewFixedWindow(limit, ratelimit.DefaultWindow)
}

// globalLimiter is a coarse request cap over the whole API group, backed by
// the shared cache so every replica draws from the same budget.
func globalLimiter() fiber.Handler {
	port, err := strconv.Atoi(env.GetEnv("CACHE_PORT", "6379"))
	if err != nil {
		port = 6379
	}
	storage := redis.New(redis.Config{
		Host: env.GetEnv("CACHE_HOST", "localhost"),
		Port: port,
	})
	return limiter.New(limiter.Config{
		Max:     300,
		Storage: storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return fmt.Sprintf("api:%s", ratelimit.ClientKey(c))
		},
	})
}
