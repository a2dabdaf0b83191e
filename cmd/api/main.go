package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/export"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/integrator/meta"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/integrator/sheets"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/integrator/sheets/sheetsclient"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/repository"
	"github.com/vfg2006/campaign-tracker-api/internal/api"
	"github.com/vfg2006/campaign-tracker-api/internal/config"
	"github.com/vfg2006/campaign-tracker-api/internal/scheduler"
	"github.com/vfg2006/campaign-tracker-api/internal/usecases/alerting"
	"github.com/vfg2006/campaign-tracker-api/internal/usecases/processing"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	snapshotRepo := repository.NewSnapshotRepository(pgConn)
	syncStateRepo := repository.NewSyncStateRepository(pgConn)

	metaClient := metaclient.NewClient(cfg)
	metaIntegrator := meta.New(cfg, metaClient)

	sheetsClient := sheetsclient.NewClient(cfg)
	synchronizer := sheets.NewService(cfg, sheetsClient, syncStateRepo)

	processor := processing.NewService(cfg)
	alertSink := alerting.NewMemorySink(alerting.NewLogSink())
	alerter := alerting.NewService(cfg, alertSink)
	exporter := export.NewService(cfg)

	pipelineSyncService := scheduler.NewPipelineSyncService(
		metaIntegrator,
		processor,
		alerter,
		synchronizer,
		exporter,
		snapshotRepo,
		cfg,
	)

	weeklySummaryService := scheduler.NewWeeklySummaryService(
		processor,
		synchronizer,
		snapshotRepo,
		cfg,
	)

	if err := pipelineSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o orquestrador da pipeline")
	} else {
		logrus.Info("Orquestrador da pipeline iniciado com sucesso")
	}

	if err := weeklySummaryService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de resumo semanal")
	} else {
		logrus.Info("Agendador de resumo semanal iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		pipelineSyncService,
		weeklySummaryService,
		alertSink,
		snapshotRepo,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
