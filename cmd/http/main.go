package main

import (
	"context"
	"log"
	"mawaid-service/internal/app/config"
	"mawaid-service/internal/app/delivery/http/middlewares"
	"mawaid-service/internal/app/delivery/http/routers"
	"mawaid-service/internal/app/drivers/database"
	"mawaid-service/internal/app/drivers/logger"
	"mawaid-service/internal/app/drivers/storage"
	"mawaid-service/internal/app/services/core/appointments"
	"mawaid-service/internal/app/services/core/auth"
	"mawaid-service/internal/app/services/core/groups"
	"mawaid-service/internal/app/services/core/session"
	"mawaid-service/internal/app/services/core/users"
	"mawaid-service/internal/app/services/shared/locker"
	redisrepo "mawaid-service/internal/app/services/shared/redis"
	miniostorage "mawaid-service/internal/app/services/shared/storage"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to the environment")
	}

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	requestLogger := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		zapLogger.Fatal("invalid APP_TIMEZONE: " + err.Error())
	}

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	// Shared services
	redisRepository := redisrepo.NewRedisRepository(redisClient)
	lockerService := locker.NewLockService(redisRepository, zapLogger)
	objectStorage := miniostorage.NewMinioStorage(minioClient, internalConfig)
	sessionService := session.NewSessionService(redisRepository, internalConfig)

	// Repositories
	userRepository := users.NewUserMongoRepository(mongoDB, driverConfig.MongoDB.DbName)
	groupRepository := groups.NewGroupMongoRepository(mongoDB, driverConfig.MongoDB.DbName)
	appointmentRepository := appointments.NewAppointmentMongoRepository(mongoDB, driverConfig.MongoDB.DbName)

	// Usecases and controllers
	authUsecase := auth.NewAuthUsecase(userRepository, sessionService, internalConfig, zapLogger)
	authController := auth.NewAuthController(zapLogger, authUsecase)

	userUsecase := users.NewUserUsecase(userRepository, objectStorage, zapLogger)
	userController := users.NewUserController(zapLogger, userUsecase, internalConfig)

	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentRepository, groupRepository, userRepository,
		lockerService, internalConfig, zapLogger, location,
	)
	appointmentController := appointments.NewAppointmentController(zapLogger, appointmentUsecase)

	groupUsecase := groups.NewGroupUsecase(groupRepository, userRepository, appointmentRepository, zapLogger, location)
	groupController := groups.NewGroupController(zapLogger, groupUsecase)

	// HTTP surface
	httpMiddlewares := middlewares.NewMiddlewares(sessionService, internalConfig, zapLogger)
	chiRouter.Use(httpMiddlewares.RequestLogger(internalConfig.App, requestLogger))
	chiRouter.Use(httpMiddlewares.Logging(zapLogger))

	routers.SetupRoutes(chiRouter, internalConfig, httpMiddlewares,
		authController, userController, appointmentController, groupController)

	// Background status sweep
	sweeper := appointments.NewStatusSweeper(appointmentRepository, lockerService, zapLogger, location)
	workerStop, err := sweeper.Start(internalConfig.App.StatusSweepCronSpec)
	if err != nil {
		zapLogger.Fatal("invalid STATUS_SWEEP_CRON_SPEC: " + err.Error())
	}
	bootstrap.WorkerStop = workerStop

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server failed to start: " + err.Error())
		}
	}()
	zapLogger.Info("server started on " + internalConfig.App.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Error during shutdown: %v", err)
	}

	log.Println("Server exiting")
}
