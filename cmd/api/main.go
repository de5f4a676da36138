package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hospital-service/internal/api/http"
	"github.com/spec-kit/hospital-service/internal/api/http/handlers"
	"github.com/spec-kit/hospital-service/internal/auth"
	"github.com/spec-kit/hospital-service/internal/config"
	"github.com/spec-kit/hospital-service/internal/events"
	"github.com/spec-kit/hospital-service/internal/observability"
	"github.com/spec-kit/hospital-service/internal/persistence"
	"github.com/spec-kit/hospital-service/internal/repository"
	"github.com/spec-kit/hospital-service/internal/service"
	"github.com/spec-kit/hospital-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongodb", zap.Error(err))
	}
	defer mongo.Close(context.Background())

	if cfg.Mongo.EnsureIndexes {
		if err := persistence.EnsureIndexes(ctx, mongo, logger); err != nil {
			logger.Fatal("failed to ensure indexes", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	db := mongo.Database()
	userRepo := repository.NewUserRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	nurseRepo := repository.NewNurseRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	recordRepo := repository.NewMedicalRecordRepository(db)
	insuranceRepo := repository.NewInsuranceRepository(db)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:    userRepo,
		PatientRepo: patientRepo,
		DoctorRepo:  doctorRepo,
		NurseRepo:   nurseRepo,
		TxRunner:    mongo,
		Dispatcher:  dispatcher,
	})
	patientService := service.NewPatientService(patientRepo, recordRepo, insuranceRepo)
	doctorService := service.NewDoctorService(doctorRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, patientRepo, doctorRepo, dispatcher)
	departmentService := service.NewDepartmentService(departmentRepo, redis, metrics, logger)
	userService := service.NewUserService(userRepo)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService, logger)

	cookies := auth.CookieWriter{
		Secure: cfg.App.IsProduction(),
		Domain: cfg.Auth.CookieDomain,
	}
	gate := auth.NewGate(authService.TokenManager(), auth.DefaultRouteConfig(), cookies, logger)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(mongo, redis),
		Pages:        handlers.NewPagesHandler(),
		Auth:         handlers.NewAuthHandler(authService, cookies),
		Patients:     handlers.NewPatientsHandler(authService, patientService, appointmentService),
		Staff:        handlers.NewStaffHandler(authService, doctorService),
		Appointments: handlers.NewAppointmentsHandler(appointmentService, patientService),
		Departments:  handlers.NewDepartmentsHandler(departmentService),
		Admin:        handlers.NewAdminHandler(userService),
		Gate:         gate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
