package main

import (
	"campadmin/auth"
	"campadmin/client"
	"campadmin/config"
	"campadmin/controller"
	"campadmin/service"
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
)

func main() {
	t := time.Now()

	cfg := config.Env()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	baseURL, err := url.Parse(cfg.AdminAPIURL)
	if err != nil {
		log.Fatalf("Invalid ADMIN_API_URL: %v", err)
	}

	tokens := auth.NewTokenStore(cfg.AdminTokenFile, cfg.AdminToken)
	tokens.WarnIfExpired()
	adminClient := client.NewAdminClient(baseURL, tokens, &http.Client{})

	publisher := newChangePublisher(cfg)
	defer publisher.Close()

	notifier := service.NewNotifier(cfg.BannerDuration)
	manager := service.NewConfigManager(adminClient, notifier, publisher, service.ManagerOptions{
		LoadTimeout:   cfg.LoadTimeout,
		SuccessWindow: cfg.BannerDuration,
	})
	go func() {
		if err := manager.LoadAll(context.Background()); err != nil {
			log.Printf("Initial load failed: %v", err)
		}
	}()

	r := gin.New()
	r.Use(gin.Recovery())
	err = r.SetTrustedProxies(nil)
	if err != nil {
		fmt.Println("Failed to set trusted proxies:", err)
		return
	}
	addLogger(r)
	addMetrics(r)
	setCors(r, cfg.AllowedOrigins)
	stopBanners := controller.SetRoutes(r, manager, notifier, tokens)
	defer stopBanners()
	fmt.Println("Console started in", time.Since(t))
	err = r.Run(":" + cfg.ConsolePort)
	if err != nil {
		fmt.Println("Failed to start console:", err)
	}
}

func newChangePublisher(cfg *config.Config) service.ChangePublisher {
	if cfg.KafkaBroker == "" {
		log.Println("KAFKA_BROKER not set, configuration change notifications are disabled")
		return service.NoopChangePublisher{}
	}
	writer, err := config.GetWriter(cfg.KafkaBroker, cfg.KafkaTopic)
	if err != nil {
		log.Printf("Failed to create kafka writer, notifications are disabled: %v", err)
		return service.NoopChangePublisher{}
	}
	return service.NewKafkaChangePublisher(writer)
}

func addLogger(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/metrics", "/api/status", "/api/unsaved"},
	}))
}

func addMetrics(r *gin.Engine) {
	p := ginprometheus.NewPrometheus("gin")
	uuidRe := regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	indexRe := regexp.MustCompile(`/\d+(/|$)`)
	seasonRe := regexp.MustCompile(`season-events/[^/]+$`)
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		url := strings.Split(c.Request.URL.String(), "?")[0]
		url = uuidRe.ReplaceAllString(url, "?")
		url = indexRe.ReplaceAllString(url, "/?$1")
		url = seasonRe.ReplaceAllString(url, "season-events/?")
		return strings.TrimPrefix(url, "/api")
	}
	p.MetricsPath = "/api/metrics"
	p.Use(r)
}

func setCors(r *gin.Engine, allowedOrigins []string) {
	corsConfigGetOptions := cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	corsConfigOtherMethods := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	getOptions := cors.New(corsConfigGetOptions)
	otherMethods := cors.New(corsConfigOtherMethods)

	r.Use(func(c *gin.Context) {
		if c.Request.Method == "OPTIONS" {
			requestedMethod := c.GetHeader("Access-Control-Request-Method")
			if requestedMethod == "GET" || requestedMethod == "OPTIONS" {
				getOptions(c)
			} else {
				otherMethods(c)
			}
			c.AbortWithStatus(204)
			return
		}

		if c.Request.Method == "GET" {
			getOptions(c)
		} else {
			otherMethods(c)
		}
	})
}
