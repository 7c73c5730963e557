package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Karatsuyu/delicious-food-app/internal/auth"
	"github.com/Karatsuyu/delicious-food-app/internal/service"
	"github.com/Karatsuyu/delicious-food-app/internal/store"
	"github.com/Karatsuyu/delicious-food-app/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	catalog       *service.CatalogService
	carts         *service.CartService
	orders        *service.OrderService
	notifications *service.NotificationService
	reviews       *service.ReviewService
	users         *service.UserService
	tokens        *auth.Manager
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *service.CatalogService,
	carts *service.CartService,
	orders *service.OrderService,
	notifications *service.NotificationService,
	reviews *service.ReviewService,
	users *service.UserService,
	tokens *auth.Manager,
) *Handler {
	return &Handler{
		catalog:       catalog,
		carts:         carts,
		orders:        orders,
		notifications: notifications,
		reviews:       reviews,
		users:         users,
		tokens:        tokens,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	// Catalog reads and review reads are open to anonymous callers.
	api.GET("/productos", h.listProducts)
	api.GET("/productos/:id", h.getProduct)
	api.GET("/ingredientes", h.listIngredients)
	api.GET("/ingredientes/:id", h.getIngredient)
	api.GET("/combos", h.listCombos)
	api.GET("/combos/:id", h.getCombo)
	api.GET("/reviews", h.listReviews)
	api.GET("/reviews/estadisticas_producto", h.reviewProductStats)

	api.POST("/register", h.register)
	api.POST("/login", h.login)

	authed := api.Group("")
	authed.Use(AuthMiddleware(h.tokens))
	{
		authed.POST("/productos", h.createProduct)
		authed.PATCH("/productos/:id", h.updateProduct)
		authed.POST("/ingredientes", h.createIngredient)

		authed.POST("/combos-personalizados", h.createCustomCombo)
		authed.GET("/combos-personalizados", h.listCustomCombos)

		authed.POST("/add-to-cart", h.addToCart)
		authed.GET("/cart", h.viewCart)

		authed.POST("/pedidos", h.placeOrder)
		authed.GET("/pedidos", h.listOrders)
		authed.GET("/pedidos/estadisticas", h.orderStats)
		authed.GET("/pedidos/:id", h.getOrder)
		authed.PATCH("/pedidos/:id/actualizar_estado", h.updateOrderState)
		authed.GET("/estados", h.listStates)

		authed.GET("/notificaciones", h.listNotifications)
		authed.GET("/notificaciones/no_leidas", h.unreadNotifications)
		authed.PATCH("/notificaciones/:id/marcar_leida", h.markNotificationRead)
		authed.PATCH("/notificaciones/marcar_todas_leidas", h.markAllNotificationsRead)
		authed.DELETE("/notificaciones/limpiar_leidas", h.deleteReadNotifications)

		authed.POST("/reviews", h.createReview)
		authed.GET("/reviews/mis_reviews", h.myReviews)
		authed.PATCH("/reviews/:id", h.updateReview)
		authed.DELETE("/reviews/:id", h.deleteReview)

		authed.GET("/profile", h.getProfile)
		authed.PATCH("/profile", h.updateProfile)
		authed.DELETE("/profile", h.deactivateAccount)
		authed.PATCH("/change-password", h.changePassword)
		authed.GET("/users", h.listUsers)
		authed.GET("/users/me", h.me)
		authed.DELETE("/users/delete_me", h.deactivateAccount)
		authed.PATCH("/users/:id/reactivate", h.reactivateUser)
		authed.GET("/users/estadisticas", h.userStats)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// respondError translates the service error taxonomy into status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		util.GetLogger().Error("Internal error: " + err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// pathID parses the numeric :id path parameter.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
