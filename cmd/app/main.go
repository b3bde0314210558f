package main

import (
	"fmt"
	"os"

	"ordering/cmd"
	"ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/postgres/catalogrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/userrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustOpenDatabase(configs)
	mustMigrate(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		OpenAPIPath:      goDotEnvVariable("OPENAPI_PATH"),
		StaleOrderTTLMin: goDotEnvVariable("STALE_ORDER_TTL_MINUTES"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&catalogrepo.ProductDTO{},
		&userrepo.UserDTO{},
	)
	if err != nil {
		log.Fatalf("failed to migrate database schema: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	server, err := http.NewServer(
		app.CreateComposeOrderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateAddOrderItemCommandHandler(),
		app.CreateRemoveOrderItemCommandHandler(),
		app.CreateUpdateItemQuantityCommandHandler(),
		app.CreateUpdateOrderDiscountCommandHandler(),
		app.CreateGetOrdersByUserQueryHandler(),
		app.CreateGetUndeliveredOrdersQueryHandler(),
		configs.OpenAPIPath,
	)
	if err != nil {
		log.Fatalf("failed to create HTTP server: %v", err)
	}

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
