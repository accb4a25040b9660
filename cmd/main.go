package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Artexxx/hr-onboarding/internal/api"
	"github.com/Artexxx/hr-onboarding/internal/config"
	"github.com/Artexxx/hr-onboarding/internal/exchange/consumer"
	"github.com/Artexxx/hr-onboarding/internal/exchange/producer"
	"github.com/Artexxx/hr-onboarding/internal/onboarding"
	"github.com/Artexxx/hr-onboarding/internal/repository/events"
	"github.com/Artexxx/hr-onboarding/internal/repository/submission"
	"github.com/Artexxx/hr-onboarding/library/pg"
	"github.com/Artexxx/hr-onboarding/library/yamlreader"

	"github.com/IBM/sarama"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(rootCtx)
	defer cancel()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimeFieldFormat = time.RFC3339

	cfg := MustNewConfig(parseFlags())

	log.Info().Msgf("kafka=%+v", cfg.Kafka.Bootstrap.Value)

	catalog := mustLoadCatalog(cfg.Reference)
	rules := onboarding.NewValidator(catalog)

	pgClient, err := pg.NewPGWithConfig(rootCtx, cfg.Postgres, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres init failed")
	}
	defer pgClient.Close()

	eventsRepo := events.NewRepository(pgClient.Pool())
	submissionRepo := submission.NewRepository(pgClient.Pool())

	onboardingProducer, err := initOnboardingProducer(cfg.Kafka)
	if err != nil {
		log.Fatal().Err(err).Msg("kafka producer init failed")
	}
	defer func() { _ = onboardingProducer.Close() }()

	apiService := api.NewService(api.ServiceDeps{
		Port:           cfg.OnboardingAPI.Port.Value,
		SessionTTL:     sessionTTL(cfg.OnboardingAPI),
		EventsRepo:     eventsRepo,
		SubmissionRepo: submissionRepo,
		Sink:           onboardingProducer,
		Rules:          rules,
	})

	groupID := "consumer_onboarding"
	if cfg.Kafka.ConsumerGroup != nil && cfg.Kafka.ConsumerGroup.Value != "" {
		groupID = cfg.Kafka.ConsumerGroup.Value
	}

	consumerOnboarding := consumer.NewOnboardingRunner(
		cfg.Kafka.Bootstrap.Value,
		cfg.Kafka.Topics.Onboarding.Value,
		groupID,
		eventsRepo,
		submissionRepo,
		rules,
		log.Logger,
	)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info().Msg("запуск HTTP API")
		if err := apiService.Start(gctx); err != nil {
			log.Error().Err(err).Msg("HTTP API завершился с ошибкой")

			return err
		}

		log.Info().Msg("HTTP API остановлен")

		return nil
	})

	group.Go(func() error {
		log.Info().Msg("запуск consumer_onboarding")
		if err := consumerOnboarding.Start(gctx); err != nil {
			log.Error().Err(err).Msg("consumer_onboarding завершился с ошибкой")

			return err
		}

		log.Info().Msg("consumer_onboarding остановлен")

		return nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = group.Wait()
	}()

	select {
	case <-rootCtx.Done():
		log.Info().Msg("signal received, graceful shutdown...")
		waitWithTimeout(done, 15*time.Second)
		log.Info().Msg("all services stopped")
	case <-done:
		log.Info().Msg("all services stopped")
	}
}

func initOnboardingProducer(kafkaConfig config.KafkaConfig) (*producer.OnboardingProducer, error) {
	sCfg := sarama.NewConfig()
	sCfg.Version = sarama.V3_3_2_0
	sCfg.Producer.Return.Successes = true
	sCfg.Producer.RequiredAcks = sarama.WaitForAll
	sCfg.Producer.Idempotent = true
	sCfg.Net.MaxOpenRequests = 1
	sCfg.Producer.Retry.Max = 5
	sCfg.Producer.Retry.Backoff = 200 * time.Millisecond

	source := "hr-onboarding-api"
	if kafkaConfig.ProducerClientID != nil && kafkaConfig.ProducerClientID.Value != "" {
		source = kafkaConfig.ProducerClientID.Value
	}
	sCfg.ClientID = source

	sp, err := sarama.NewSyncProducer(consumer.SplitBrokers(kafkaConfig.Bootstrap.Value), sCfg)
	if err != nil {
		return nil, err
	}

	return producer.NewOnboardingProducer(
		sp,
		producer.Config{
			Topic:  kafkaConfig.Topics.Onboarding.Value,
			Source: source,
		},
		log.Logger,
	), nil
}

func mustLoadCatalog(ref config.ReferenceConfig) *onboarding.Catalog {
	if ref.Path == nil || ref.Path.Value == "" {
		log.Info().Msg("reference path not set, using built-in catalog")
		return onboarding.DefaultCatalog()
	}

	catalog, err := onboarding.LoadCatalog(ref.Path.Value)
	if err != nil {
		log.Fatal().Str("path", ref.Path.Value).Err(err).Msg("ошибка чтения справочников")
		return nil
	}

	log.Info().
		Str("path", ref.Path.Value).
		Int("managers", len(catalog.Managers)).
		Int("departments", len(catalog.SkillsByDepartment)).
		Msg("reference catalog loaded")

	return catalog
}

func sessionTTL(cfg config.ApiConfig) time.Duration {
	if cfg.SessionTTL == nil || cfg.SessionTTL.Value == "" {
		return 24 * time.Hour
	}

	ttl, err := time.ParseDuration(cfg.SessionTTL.Value)
	if err != nil {
		log.Warn().Str("session_ttl", cfg.SessionTTL.Value).Err(err).Msg("invalid session ttl, sessions never expire")
		return 0
	}

	return ttl
}

func waitWithTimeout(done <-chan struct{}, timeout time.Duration) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return
	case <-timer.C:
		log.Warn().Dur("timeout", timeout).Msg("graceful shutdown")
	}
}

func MustNewConfig(path string) *config.Config {
	cfg, err := yamlreader.NewConfig[config.Config](path)

	if err != nil {
		log.Fatal().Str("path", path).Err(err).Msg("ошибка чтения конфигурации приложения")
		return nil
	}

	return cfg
}

func parseFlags() string {
	var configPath string

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	// .env must be loaded before the YAML is parsed: yamlenv resolves ${VAR} at decode time
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("failed to load .env")
	}

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	if configPath == "" {
		configPath = "config/application-local.yaml"
	}
	return configPath
}
