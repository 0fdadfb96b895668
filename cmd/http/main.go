package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ptmd-service/internal/app/config"
	"ptmd-service/internal/app/delivery/http/controllers"
	"ptmd-service/internal/app/delivery/http/middlewares"
	"ptmd-service/internal/app/delivery/http/routers"
	"ptmd-service/internal/app/drivers/database"
	"ptmd-service/internal/app/drivers/logger"
	"ptmd-service/internal/app/drivers/messaging"
	"ptmd-service/internal/app/drivers/storage"
	"ptmd-service/internal/app/services/classifier"
	"ptmd-service/internal/app/services/core/admin"
	"ptmd-service/internal/app/services/core/auth"
	"ptmd-service/internal/app/services/core/consultations"
	"ptmd-service/internal/app/services/core/patients"
	"ptmd-service/internal/app/services/core/users"
	"ptmd-service/internal/app/services/shared/events"
	"ptmd-service/internal/app/services/shared/session"
	sharedStorage "ptmd-service/internal/app/services/shared/storage"
	"ptmd-service/internal/app/services/shared/transactor"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	setupCtx, cancelSetup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelSetup()

	if err := database.EnsureIndexes(setupCtx, mongoDB, driverConfig.MongoDB.DbName); err != nil {
		logrus.Fatalf("Failed to create mongo indexes: %v", err)
	}
	if err := storage.EnsureBucket(setupCtx, minioClient, driverConfig.Minio.BucketName); err != nil {
		logrus.Fatalf("Failed to create minio bucket: %v", err)
	}

	bootstrapTheApp(setupCtx, config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Minio:          minioClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	})

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: http.MaxBytesHandler(chiRouter, internalConfig.App.RequestBodyLimitInMegabyte<<20),
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()
	logrus.Printf("Server listening on %s", internalConfig.App.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logrus.Println("Waiting for pending requests already received by the server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapTheApp(ctx context.Context, bootstrap config.Bootstrap) {
	dbName := bootstrap.DriverConfig.MongoDB.DbName

	// Shared services
	sessionService := session.NewRedisSessionService(bootstrap.Redis)
	objectStorage := sharedStorage.NewMinioStorage(bootstrap.Minio, bootstrap.DriverConfig.Minio.BucketName)
	mongoTransactor := transactor.NewMongoTransactor(bootstrap.MongoDB)

	eventPublisher, err := events.NewRabbitMQPublisher(bootstrap.RabbitMQ, bootstrap.InternalConfig.App.EventQueue)
	if err != nil {
		logrus.Fatalf("Failed to set up rabbitMQ publisher: %v", err)
	}

	classifierClient := classifier.NewHTTPClassifierClient(bootstrap.InternalConfig)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(sessionService, bootstrap.InternalConfig, bootstrap.Logger)

	// Repositories
	userMongoRepository := users.NewUserMongoRepository(bootstrap.MongoDB, dbName)
	patientMongoRepository := patients.NewPatientMongoRepository(bootstrap.MongoDB, dbName)
	consultationMongoRepository := consultations.NewConsultationMongoRepository(bootstrap.MongoDB, dbName)
	imageMongoRepository := consultations.NewImageMongoRepository(bootstrap.MongoDB, dbName)

	// Auth
	authUsecase := auth.NewAuthUsecase(userMongoRepository, sessionService, bootstrap.InternalConfig, bootstrap.Logger)
	authController := controllers.NewAuthController(bootstrap.Logger, authUsecase)

	if err := authUsecase.EnsureAdminUser(ctx); err != nil {
		logrus.Fatalf("Failed to seed admin user: %v", err)
	}

	// Consultations
	patientRegistry := patients.NewPatientRegistry(patientMongoRepository, bootstrap.Logger)
	consultationUsecase := consultations.NewConsultationUsecase(
		consultationMongoRepository,
		imageMongoRepository,
		patientRegistry,
		patientMongoRepository,
		objectStorage,
		classifierClient,
		eventPublisher,
		mongoTransactor,
		bootstrap.Logger,
	)
	consultationController := controllers.NewConsultationController(bootstrap.Logger, consultationUsecase, bootstrap.InternalConfig)

	// Admin
	adminUsecase := admin.NewAdminUsecase(
		consultationMongoRepository,
		imageMongoRepository,
		patientMongoRepository,
		objectStorage,
		bootstrap.Logger,
	)
	adminController := controllers.NewAdminController(bootstrap.Logger, adminUsecase)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, authController, consultationController, adminController)
}
