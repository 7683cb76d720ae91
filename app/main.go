package main

import (
	"os"
	"os/signal"
	"registration/config"
	"registration/domain"
	"registration/services/registration/delivery"
	"registration/services/registration/repository"
	"registration/services/registration/usecase"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var log *logrus.Logger
var wg sync.WaitGroup

func main() {
	log = config.GetLogrusInstance()

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file loaded, using process environment")
	}

	startHTTP()
}

func startHTTP() {
	log.Info("Starting HTTP")
	app := fiber.New(config.GetFiberConfig())
	app.Use(recover.New())

	registrationRepo, err := bootRegistrationRepo()
	if err != nil {
		log.Fatalf("Failed to boot registration store: %v", err)
		return
	}
	rosterRepo := repository.NewCSVRosterRepository(config.GetRosterFile())

	timeout := config.GetContextTimeout()
	registrationUC := usecase.NewRegistrationUseCase(registrationRepo, rosterRepo, timeout, time.Now)
	summaryUC := usecase.NewSummaryUseCase(registrationRepo, timeout)

	delivery.NewPageDelivery(app, registrationUC, summaryUC, config.GetPageSettings())
	delivery.NewAPIDelivery(app, registrationUC, summaryUC)
	delivery.NewQRDelivery(app, config.GetPublicURL())

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("Starting HTTP server on port %s", config.GetFiberHttpPort())
		if err := app.Listen(config.GetFiberListenAddress()); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	<-signalChan

	log.Info("Shutting down the server...")

	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	}

	wg.Wait()
	log.Info("Server shut down gracefully")
}

func bootRegistrationRepo() (domain.RegistrationRepo, error) {
	switch driver := config.GetStoreDriver(); driver {
	case config.StoreDriverPostgres:
		db, err := config.BootDB()
		if err != nil {
			return nil, err
		}
		log.Info("Using postgres registration store")
		return repository.NewPostgresRegistrationRepository(db), nil
	case config.StoreDriverMemory:
		log.Warn("Using in-memory registration store, data is lost on restart")
		return repository.NewMemoryRegistrationRepository(), nil
	default:
		log.Infof("Using spreadsheet registration store at %s", config.GetRegistrationFile())
		return repository.NewExcelRegistrationRepository(config.GetRegistrationFile()), nil
	}
}
