package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dwikikusuma/gomarketplace/internal/cart/app"
	"github.com/dwikikusuma/gomarketplace/internal/cart/domain"
	"github.com/dwikikusuma/gomarketplace/internal/cart/provider"
)

const requestIDHeader = "X-Request-ID"

type Options struct {
	Cart  provider.Cart
	Ready app.Pinger
	Log   *slog.Logger
}

// NewRouter wires the cart routes. Cart may be nil, in which case every
// cart route reports a missing provider.
func NewRouter(opts Options) *gin.Engine {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(log))

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/readyz", func(c *gin.Context) {
		if opts.Ready != nil {
			if err := opts.Ready.Ping(c.Request.Context()); err != nil {
				log.Warn("readiness check failed", slog.Any("err", err))
				c.Status(http.StatusServiceUnavailable)
				return
			}
		}
		c.Status(http.StatusOK)
	})

	g := r.Group("/cart")
	if opts.Cart != nil {
		g.Use(Provide(opts.Cart))
	}
	h := &handler{log: log}
	g.GET("", h.get)
	g.POST("/items", h.add)
	g.POST("/items/:id/increment", h.increment)
	g.POST("/items/:id/decrement", h.decrement)

	return r
}

// Provide scopes cart to every request passing through.
func Provide(cart provider.Cart) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(provider.NewContext(c.Request.Context(), cart))
		c.Next()
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("took", time.Since(start)),
			slog.String("request_id", c.GetString("request_id")),
		)
	}
}

type handler struct {
	log *slog.Logger
}

type addItemRequest struct {
	ID       string  `json:"id" binding:"required"`
	Title    string  `json:"title"`
	ImageURL string  `json:"image_url"`
	Price    float64 `json:"price" binding:"gte=0"`
}

type cartResponse struct {
	Products []domain.LineItem `json:"products"`
	Summary  domain.Summary    `json:"summary"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *handler) get(c *gin.Context) {
	cart, err := provider.From(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, cart)
}

func (h *handler) add(c *gin.Context) {
	cart, err := provider.From(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Code: "INVALID_ARGUMENT", Message: err.Error()})
		return
	}

	err = cart.AddToCart(c.Request.Context(), domain.Product{
		ID:       req.ID,
		Title:    req.Title,
		ImageURL: req.ImageURL,
		Price:    req.Price,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, cart)
}

func (h *handler) increment(c *gin.Context) {
	cart, err := provider.From(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := cart.Increment(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, cart)
}

func (h *handler) decrement(c *gin.Context) {
	cart, err := provider.From(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := cart.Decrement(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, cart)
}

func (h *handler) render(c *gin.Context, cart provider.Cart) {
	c.JSON(http.StatusOK, cartResponse{
		Products: cart.Products(),
		Summary:  cart.Summary(),
	})
}

func (h *handler) fail(c *gin.Context, err error) {
	code, name, msg := httpStatusFromGRPC(toStatus(err))
	if code >= http.StatusInternalServerError {
		h.log.Error("cart request failed", slog.String("path", c.FullPath()), slog.Any("err", err))
	}
	c.JSON(code, errorResponse{Code: name, Message: msg})
}
