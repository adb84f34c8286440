package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"reppup/internal/auth"
	"reppup/internal/config"
	"reppup/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userHandler *handler.UserHandler,
	uploadHandler *handler.UploadHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderContentType, "x-auth-token", echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "It is Working !!! Api Running")
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Session gate: a signed, unexpired token in x-auth-token. The session
	// is not bound to the target account id; any authenticated caller may
	// fetch, update, or delete any account.
	sessionGate := echojwt.WithConfig(echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.SessionClaims)
		},
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:x-auth-token",
	})

	// The user routes are exposed under both historical mounts.
	for _, g := range []*echo.Group{e.Group("/api/users"), e.Group("/auth")} {
		g.POST("/signup", userHandler.Signup)

		secured := g.Group("", sessionGate)
		secured.GET("/:id", userHandler.GetUser)
		secured.PUT("/:id", userHandler.UpdateUser)
		secured.DELETE("/:id", userHandler.DeleteUser)
		secured.POST("/upload/:id", uploadHandler.Upload)
	}

	// Second upload mount, same handler.
	e.POST("/api/uploads/:id", uploadHandler.Upload, sessionGate)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
