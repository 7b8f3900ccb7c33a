// Package api contains all endpoints available
package api

import (
	"context"
	"fmt"
	"time"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"merchly/shop-api/config"
	"merchly/shop-api/db"
	"merchly/shop-api/internal/identity"
	"merchly/shop-api/internal/mail"
	"merchly/shop-api/internal/store"
	"merchly/shop-api/pkg/middleware"
	"merchly/shop-api/pkg/security"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	Router   *gin.Engine
	Users    store.UserStore
	Products store.ProductStore
	Identity *identity.Service
}

// NewRouter builds the fully wired API: config-driven Mongo stores, SMTP
// mailer, token signer and the credential manager on top of them.
func NewRouter(ctx context.Context) (*API, error) {
	makeLogger()

	database, err := db.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MongoDB database, %w", err)
	}

	users, err := store.NewMongoUserStore(ctx, database)
	if err != nil {
		return nil, err
	}
	products := store.NewMongoProductStore(database)

	mailer := mail.NewSMTPMailer(
		viper.GetString("mail.host"),
		viper.GetInt("mail.port"),
		viper.GetString("mail.sender"),
		viper.GetString("mail.password"),
	)

	signer := identity.NewTokenSigner(
		viper.GetString("jwt.secret"),
		time.Duration(viper.GetInt("jwt.expiry_hours"))*time.Hour,
	)

	ident := identity.NewService(users, security.NewArgonHasher(), signer, mailer, config.BaseURL())

	return New(users, products, ident), nil
}

// New assembles the router around already-constructed collaborators. Tests
// use it directly with in-memory stores and a fake mailer.
func New(users store.UserStore, products store.ProductStore, ident *identity.Service) *API {
	a := &API{
		Users:    users,
		Products: products,
		Identity: ident,
	}

	router := gin.New()
	a.Router = router

	origins := viper.GetStringSlice("host.cors_origins")
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true

	auth := middleware.NewAuthMiddleware(a.Identity)

	rps := viper.GetInt("auth.rate_limit_rps")
	if rps <= 0 {
		rps = 5
	}
	burst := viper.GetInt("auth.rate_limit_burst")
	if burst <= 0 {
		burst = 10
	}
	authLimit := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: rps,
		Burst:             burst,
	})

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)
	}

	user := main.Group("/user", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/user/register 			-> Registers a new account
		user.POST("/register", authLimit, a.UserRegister)

		// GET /api/user/confirm-email/:token 		-> Confirms an account's email
		user.GET("/confirm-email/:token", a.UserConfirmEmail)

		// POST /api/user/login 			-> Logs in and returns a session token
		user.POST("/login", authLimit, a.UserLogin)

		// POST /api/user/logout 			-> Removes the presented session
		user.POST("/logout", auth, a.UserLogout)

		// POST /api/user/forgotpassword		-> Mails a password reset link
		user.POST("/forgotpassword", authLimit, a.UserForgotPassword)

		// PUT /api/user/resetpassword/:token		-> Sets a new password
		user.PUT("/resetpassword/:token", a.UserResetPassword)

		// DELETE /api/user/delete-profile		-> Hard-deletes the account
		user.DELETE("/delete-profile", auth, a.UserDelete)

		// PATCH /api/user/update-user			-> Updates email and/or username
		user.PATCH("/update-user", auth, a.UserUpdate)

		// GET /api/user/me				-> Returns the account's own profile
		user.GET("/me", auth, a.UserFetch)
	}

	catalog := main.Group("/products")
	{
		// GET /api/products				-> Lists the catalog
		catalog.GET("", a.ProductFetchBulk)

		// GET /api/products/:productId			-> Returns a single product
		catalog.GET("/:productId", a.ProductFetch)
	}

	cart := main.Group("/cart", auth)
	{
		// GET /api/cart				-> Returns the cart
		cart.GET("", a.CartFetch)

		// POST /api/cart/clear				-> Empties the cart
		cart.POST("/clear", a.CartClear)

		// POST /api/cart/:productId			-> Adds a product to the cart
		cart.POST("/:productId", a.CartAdd)

		// PATCH /api/cart/:productId			-> Sets a cart line's quantity
		cart.PATCH("/:productId", a.CartUpdate)

		// DELETE /api/cart/:productId			-> Removes a cart line
		cart.DELETE("/:productId", a.CartRemove)
	}

	wishlist := main.Group("/wishlist", auth)
	{
		// POST /api/wishlist				-> Creates a named wishlist
		wishlist.POST("", a.WishlistCreate)

		// GET /api/wishlist				-> Returns all wishlists
		wishlist.GET("", a.WishlistFetch)

		// PATCH /api/wishlist/:wishlistName		-> Renames a wishlist
		wishlist.PATCH("/:wishlistName", a.WishlistRename)

		// DELETE /api/wishlist/:wishlistName		-> Deletes a wishlist
		wishlist.DELETE("/:wishlistName", a.WishlistDelete)

		// POST /api/wishlist/:wishlistName/clear	-> Empties a wishlist
		wishlist.POST("/:wishlistName/clear", a.WishlistClear)

		// POST /api/wishlist/:wishlistName/:productId	-> Adds a product
		wishlist.POST("/:wishlistName/:productId", a.WishlistAdd)

		// DELETE /api/wishlist/:wishlistName/:productId -> Removes a product
		wishlist.DELETE("/:wishlistName/:productId", a.WishlistRemove)
	}

	return a
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
