package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"agromarket/cmd"
	api "agromarket/internal/adapters/in/http"
	"agromarket/internal/adapters/out/amqp"
	"agromarket/internal/adapters/out/postgres/agreementrepo"
	"agromarket/internal/adapters/out/postgres/listingrepo"
	"agromarket/internal/adapters/out/postgres/orderrepo"
	"agromarket/internal/adapters/out/postgres/proposalrepo"
	"agromarket/internal/adapters/out/postgres/shipmentrepo"
	"agromarket/internal/core/ports"
	"agromarket/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := mustOpenDB(configs)

	var publisher ports.EventPublisher
	if configs.AmqpURL != "" {
		p, err := amqp.NewEventPublisher(configs.AmqpURL)
		if err != nil {
			log.Fatalf("Error connecting to broker: %v", err)
		}
		defer func() { _ = p.Close() }()
		publisher = p
	}

	app := cmd.NewCompositionRoot(configs, db, publisher, logger)

	jobManager := jobs.NewJobManager(app.CreateExpireProposalsCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
		AmqpURL:    goDotEnvVariable("AMQP_URL"),
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

func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = db.AutoMigrate(
		&listingrepo.ListingDTO{},
		&orderrepo.OrderDTO{},
		&proposalrepo.ProposalDTO{},
		&agreementrepo.AgreementDTO{},
		&shipmentrepo.ShipmentDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return db
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := api.NewServer(
		app.CreateCreateListingCommandHandler(),
		app.CreateCreateOrderCommandHandler(),
		app.CreateAcceptOrderCommandHandler(),
		app.CreateRejectOrderCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateMarkOrderReadyCommandHandler(),
		app.CreateSubmitProposalCommandHandler(),
		app.CreateAcceptProposalCommandHandler(),
		app.CreateRejectProposalCommandHandler(),
		app.CreateWithdrawProposalCommandHandler(),
		app.CreateSignAgreementAsSellerCommandHandler(),
		app.CreateSignAgreementAsBuyerCommandHandler(),
		app.CreateCancelAgreementCommandHandler(),
		app.CreateClaimShipmentCommandHandler(),
		app.CreateAdvanceShipmentCommandHandler(),
		app.CreateGetAvailableListingsQueryHandler(),
		app.CreateGetParticipantOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
