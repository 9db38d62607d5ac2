package delivery

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter builds the HTTP engine: request id, request logging, stack-trace
// policy and panic recovery, then the category routes, /health and a JSON 404
// for everything else. Paths with a trailing slash are served directly
// instead of redirected.
func NewRouter(categoryHandler *CategoryHandler, logger *logrus.Logger, development bool) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(
		RequestID(),
		RequestLogger(logger),
		StackTraces(development),
		Recovery(logger),
	)

	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound, "Not Found", debug.Stack())
	})

	router.GET("/health", func(c *gin.Context) {
		SuccessResponse(c, http.StatusOK, gin.H{"status": "ok"})
	})

	categoryHandler.RegisterRoutes(router)
	return router
}
