package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ManuelReschke/ConnectX/app/repository"
	"github.com/ManuelReschke/ConnectX/internal/pkg/cache"
	"github.com/ManuelReschke/ConnectX/internal/pkg/database"
	"github.com/ManuelReschke/ConnectX/internal/pkg/env"
	"github.com/ManuelReschke/ConnectX/internal/pkg/metrics"
	"github.com/ManuelReschke/ConnectX/internal/pkg/router"
	"github.com/ManuelReschke/ConnectX/internal/pkg/security"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	tokens, err := security.NewTokenCipherFromBase64(env.GetEnv("TOKEN_ENCRYPTION_KEY", ""))
	if err != nil {
		log.Fatalf("TOKEN_ENCRYPTION_KEY: %v", err)
	}
	repository.InitializeFactory(database.GetDB(), tokens)

	// Define possible base paths
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/connectx to project root
		"../../../", // Fallback
	}

	basePath := ""
	for _, path := range basePaths {
		if _, err := os.Stat(path + "public/docs"); !os.IsNotExist(err) {
			basePath = path
			break
		}
	}

	if basePath == "" {
		panic("Could not find project root directory")
	}

	app := fiber.New()

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// prometheus metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "test"),
		},
	}), metrics.Handler())

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: basePath + "public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app)

	return app
}
