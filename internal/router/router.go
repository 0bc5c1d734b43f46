package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"tasktrack/internal/auth"
	"tasktrack/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	taskHandler *handler.TaskHandler,
	profileHandler *handler.ProfileHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes (require a valid bearer token)
	secured := api.Group("", auth.Middleware(jwtService))

	secured.GET("/tasks", taskHandler.ListTasks)
	secured.POST("/tasks", taskHandler.CreateTask)
	secured.PUT("/tasks/:id", taskHandler.UpdateTask)
	secured.DELETE("/tasks/:id", taskHandler.DeleteTask)

	secured.GET("/profile", profileHandler.GetProfile)
	secured.PUT("/profile", profileHandler.UpdateProfile)
	secured.PUT("/profile/password", profileHandler.UpdatePassword)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
