package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func JSONRecovery(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.WithField("panic", err).Error("Recovered from panic")

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// JSONErrorHandler renders errors attached with c.Error when the handler did not write a response.
func JSONErrorHandler(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		for _, err := range c.Errors {
			logger.WithError(err.Err).Error("Request failed")
		}

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
	}
}

// LoggingMiddleware logs each request's URI and method.
func LoggingMiddleware(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			total := time.Since(start)
			logger.WithFields(logrus.Fields{
				"method":   c.Request.Method,
				"path":     c.Request.URL.Path,
				"duration": total,
				"status":   c.Writer.Status(),
			}).Infof("%s %s", c.Request.Method, c.Request.URL.Path)
		}()

		c.Next()
	}
}

func NewRouter(logger logrus.FieldLogger) *gin.Engine {
	router := gin.New()

	router.Use(JSONRecovery(logger))
	router.Use(LoggingMiddleware(logger))
	router.Use(JSONErrorHandler(logger))

	return router
}
