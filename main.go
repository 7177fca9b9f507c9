package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"git.sr.ht/~jkovac/booking-api/endpoints"
	"git.sr.ht/~jkovac/booking-api/kernel"
	"git.sr.ht/~jkovac/booking-api/middleware"
)

func main() {
	art := kernel.LoadConfig()
	art.Context = context.Background()

	if art.DeploymentEnvironment == "production" {
		log.Printf(" === RUNNING IN PRODUCTION MODE ===")
		gin.SetMode(gin.ReleaseMode)
	}

	cleanupFunc, err := art.SetupOtel()
	if err != nil {
		log.Fatal(err)
	}
	defer cleanupFunc()

	span, _ := art.Diagnostic.BeginTracing(art.Context, "main")
	defer span.End()

	if err := art.PrepareDatabase(); err != nil {
		span.RecordError(err)
		log.Fatal(err)
	}
	art.Seed()

	r := gin.Default()
	err = r.SetTrustedProxies([]string{})
	if err != nil {
		span.RecordError(err)
		log.Fatal(err)
	}

	if art.DeploymentEnvironment == "production" {
		r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message": "a panic occurred, request aborted",
			})
		}))

		corsOrigin := art.CorsOrigin
		if corsOrigin == "" {
			corsOrigin = "http://localhost:3000"
		}
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{corsOrigin},
			AllowMethods:     []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
			AllowHeaders:     []string{"Content-Type"},
			ExposeHeaders:    []string{"Content-Length", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           7 * time.Hour * 24,
		}))
	}

	r.Use(otelgin.Middleware(art.ServiceName))
	r.Use(middleware.LimitMiddleware())
	r.Use(middleware.TracerMiddleware(art))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "route not found"})
	})

	endpoints.RegisterRoutes(r, art)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Backend is working")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	err = r.Run(art.Host)
	if err != nil {
		span.RecordError(err)
		log.Fatal(err)
	}
}
