package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter creates and configures the Gin router. allowedOrigins empty
// allows all origins.
func SetupRouter(builder TableBuilder, allowedOrigins []string) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	handler := NewHandler(builder)

	v1 := router.Group("/v1")
	v1.GET("/forecast", handler.GetForecast)
	v1.GET("/windows", handler.GetWindows)

	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
