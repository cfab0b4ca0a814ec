package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"logistics/cmd"
	"logistics/internal/adapters/out/postgres/jobrepo"
	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/adapters/out/postgres/roadrepo"
	"logistics/internal/adapters/out/rediscache"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := openDatabase(configs)
	routeCache := openRouteCache(configs)

	root := cmd.NewCompositionRoot(configs, gormDB, routeCache, logger)
	defer root.Close()

	restoreState(root)

	backgroundJobs := root.CreateBackgroundJobs()
	if err := backgroundJobs.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer backgroundJobs.StopAll()

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading .env file")
	}

	return cmd.Config{
		HTTPPort:        envString("HTTP_PORT", "8080"),
		DBDriver:        envString("DB_DRIVER", "postgres"),
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          os.Getenv("DB_PORT"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBSslMode:       envString("DB_SSLMODE", "disable"),
		SqlitePath:      envString("SQLITE_PATH", "logistics.db"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisTTLSeconds: envInt("REDIS_TTL_SECONDS", 600),
		GridWidth:       envInt("GRID_WIDTH", 256),
		GridHeight:      envInt("GRID_HEIGHT", 256),
		TileSize:        envFloat("TILE_SIZE", 1.0),
		SearchRadius:    envInt("SEARCH_RADIUS", 64),
		UseSpatialIndex: envBool("USE_SPATIAL_INDEX", true),
		IndexCapacity:   envInt("INDEX_CAPACITY", 8),
		IndexMaxDepth:   envInt("INDEX_MAX_DEPTH", 8),
		CostPerTileUnit: envFloat("COST_PER_TILE_UNIT", 0.1),
		FixedCost:       envFloat("FIXED_COST", 1.0),
		MaxPerTrip:      envInt("MAX_PER_TRIP", 100),
		MarketNode:      int64(envInt("MARKET_NODE", 1)),
		StartingBalance: envFloat("STARTING_BALANCE", 10000),
	}
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid integer for %s: %q", key, raw)
	}
	return value
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid number for %s: %q", key, raw)
	}
	return value
}

func envBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Fatalf("Invalid boolean for %s: %q", key, raw)
	}
	return value
}

func openDatabase(configs cmd.Config) *gorm.DB {
	var dialector gorm.Dialector
	switch configs.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(configs.SqlitePath)
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			configs.DBHost, configs.DBPort, configs.DBUser,
			configs.DBPassword, configs.DBName, configs.DBSslMode,
		)
		dialector = gormpostgres.Open(dsn)
	default:
		log.Fatalf("Unknown DB_DRIVER: %q", configs.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	err = db.AutoMigrate(&jobrepo.JobDTO{}, &orderrepo.OrderDTO{}, &roadrepo.RoadCellDTO{})
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func openRouteCache(configs cmd.Config) services.RouteCache {
	if configs.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
	return rediscache.NewRouteCache(client, time.Duration(configs.RedisTTLSeconds)*time.Second)
}

func restoreState(root *cmd.CompositionRoot) {
	handler := root.CreateRestoreStateCommandHandler()

	root.WorldMutex().Lock()
	defer root.WorldMutex().Unlock()

	err := handler.Handle(context.Background(), commands.NewRestoreStateCommand())
	if err != nil {
		log.Fatalf("Failed to restore snapshot: %v", err)
	}
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	root.CreateHTTPServer().RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil {
			e.Logger.Info("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	saveState(root)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}

func saveState(root *cmd.CompositionRoot) {
	handler := root.CreateSaveStateCommandHandler()

	root.WorldMutex().Lock()
	defer root.WorldMutex().Unlock()

	err := handler.Handle(context.Background(), commands.NewSaveStateCommand())
	if err != nil {
		log.Errorf("Failed to save snapshot: %v", err)
	}
}
