package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/archoffice/bff-admin/config"
	"github.com/archoffice/bff-admin/internal/app"
	"github.com/archoffice/bff-admin/internal/infrastructure/mail"
	"github.com/archoffice/bff-admin/internal/infrastructure/message-queue/kafka"
	"github.com/archoffice/bff-admin/internal/infrastructure/registrationdata"
	"github.com/archoffice/bff-admin/internal/infrastructure/tracing"
	"github.com/archoffice/bff-admin/internal/infrastructure/vault"
	"github.com/archoffice/bff-admin/internal/repository"
	"github.com/archoffice/bff-admin/internal/service"
	"github.com/archoffice/bff-admin/pkg/httpclient"
	"github.com/rs/zerolog"

	postgresDriver "github.com/archoffice/bff-admin/internal/infrastructure/database/postgres"
)

const secretsTimeout = 10 * time.Second

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", app.ServiceName).Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Str("component", "main").Msg("")
	}
}

func run(logger zerolog.Logger) error {
	conf, err := config.CreateNewConfig()
	if err != nil {
		return err
	}

	vaultClient, err := vault.CreateVaultClient(conf.VaultConfig)
	if err != nil {
		return err
	}

	secretsCtx, cancel := context.WithTimeout(context.Background(), secretsTimeout)
	secrets, err := vault.LoadSecrets(secretsCtx, vaultClient, conf.VaultConfig)
	cancel()
	if err != nil {
		return err
	}
	conf.ApplySecrets(secrets)

	traceProvider, err := tracing.InitTracing(conf.TracingConfig.CollectorHost, app.ServiceName)
	if err != nil {
		return err
	}
	defer func() {
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Str("component", "main").Msg("Failed to shutdown tracing")
		}
	}()

	infraDB, err := postgresDriver.GetDBInstance(conf.InfrastructureDBConfig)
	if err != nil {
		return err
	}
	defer infraDB.Close()

	salesDB, err := postgresDriver.GetDBInstance(conf.SalesDBConfig)
	if err != nil {
		return err
	}
	defer salesDB.Close()

	var dispatcher service.NotificationDispatcher
	switch conf.NotificationDriver {
	case config.NotificationDriverSMTP:
		dispatcher = mail.CreateMailer(mail.CreateDialer(conf), conf.SMTPConfig.Sender, conf.FrontendURL, logger)
	default:
		producer := kafka.CreateEmailProducer(kafka.CreateKafkaWriter(conf), logger)
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Error().Err(err).Str("component", "main").Msg("Failed to close kafka writer")
			}
		}()
		dispatcher = producer
	}

	server := app.App{
		Config:     conf,
		Logger:     logger,
		Gateway:    registrationdata.CreateGateway(conf.RegistrationDataConfig.URL, httpclient.New(conf.RegistrationDataConfig.Timeout)),
		Invites:    repository.CreateInviteRepository(infraDB, conf.InviteTTL, logger),
		Dispatcher: dispatcher,
		HealthChecks: map[string]app.Pinger{
			"infrastructure": infraDB,
			"sales":          salesDB,
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx)
}
