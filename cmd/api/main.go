package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/expense-tracker-api/internal/config"
	"github.com/vasapolrittideah/expense-tracker-api/internal/handler"
	"github.com/vasapolrittideah/expense-tracker-api/internal/repository"
	"github.com/vasapolrittideah/expense-tracker-api/internal/usecase"
	"github.com/vasapolrittideah/expense-tracker-api/shared/auth"
	"github.com/vasapolrittideah/expense-tracker-api/shared/mailer"
	"github.com/vasapolrittideah/expense-tracker-api/shared/mongodb"
	"github.com/vasapolrittideah/expense-tracker-api/shared/provider"
	"github.com/vasapolrittideah/expense-tracker-api/shared/storage"
	"github.com/vasapolrittideah/expense-tracker-api/shared/validation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	db := mongoClient.Database(cfg.MongoDatabase)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	incomeRepo := repository.NewIncomeMongoRepository(db)
	expenseRepo := repository.NewExpenseMongoRepository(db)
	resetTokenRepo := repository.NewPasswordResetTokenMongoRepository(ctx, &logger, db)

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)
	googleProvider := provider.NewGoogleOAuthProvider(cfg.GoogleClientID)
	smtpMailer := mailer.NewMailer(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	uploader, err := storage.NewCloudinaryUploader(storage.Config{
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
		Folder:    cfg.Cloudinary.Folder,
	}, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize cloudinary uploader")
	}

	validator, err := validation.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize validator")
	}

	authUsecase := usecase.NewAuthUsecase(userRepo, jwtAuth, googleProvider, cfg.Token)
	userUsecase := usecase.NewUserUsecase(userRepo)
	incomeUsecase := usecase.NewIncomeUsecase(incomeRepo)
	expenseUsecase := usecase.NewExpenseUsecase(expenseRepo)
	dashboardUsecase := usecase.NewDashboardUsecase(incomeRepo, expenseRepo)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(
		userRepo,
		resetTokenRepo,
		jwtAuth,
		smtpMailer,
		cfg.Token,
		cfg.AppPasswordResetURL,
	)

	router := handler.NewRouter(handler.RouterParams{
		AuthHandler:      handler.NewAuthHandler(authUsecase, passwordResetUsecase, validator, &logger),
		UserHandler:      handler.NewUserHandler(userUsecase, validator, &logger),
		UploadHandler:    handler.NewUploadHandler(uploader, &logger),
		IncomeHandler:    handler.NewIncomeHandler(incomeUsecase, validator, &logger),
		ExpenseHandler:   handler.NewExpenseHandler(expenseUsecase, validator, &logger),
		DashboardHandler: handler.NewDashboardHandler(dashboardUsecase, &logger),

		JWTAuth:           jwtAuth,
		AccessTokenSecret: cfg.Token.AccessTokenSecret,
		Logger:            &logger,
	})

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("starting http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
