package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/billingfox/ozonator/internal/api/handlers"
	"github.com/billingfox/ozonator/internal/api/middleware"
	"github.com/billingfox/ozonator/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	CatalogService *service.CatalogService
	DemandService  *service.DemandService
	UpdateService  *service.UpdateService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.CatalogService != nil {
			catalogHandler := handlers.NewCatalogHandler(services.CatalogService)
			apiGroup.GET("/products", catalogHandler.GetProducts)
			apiGroup.GET("/stocks", catalogHandler.GetStocks)
			apiGroup.GET("/transit", catalogHandler.GetTransit)
			apiGroup.GET("/sales", catalogHandler.GetSales)
			apiGroup.GET("/last_update", catalogHandler.GetLastUpdate)
		}

		if services.DemandService != nil {
			demandHandler := handlers.NewDemandHandler(services.DemandService)
			apiGroup.GET("/demand", demandHandler.GetDemand)
		}

		if services.UpdateService != nil {
			updateHandler := handlers.NewUpdateHandler(services.UpdateService)
			apiGroup.POST("/update", updateHandler.RunUpdate)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
