package di

import (
	"fmt"

	"streampulse/internal/domain/repository"
	"streampulse/internal/handler/api"
	mid "streampulse/internal/middleware"
	internalrepo "streampulse/internal/repository"
	icache "streampulse/internal/service/cache"
	"streampulse/internal/service/overlay"
	"streampulse/internal/service/statsapi"
	"streampulse/internal/services/derive"
	"streampulse/internal/usecase"
	pkgcache "streampulse/pkg/cache"
	"streampulse/pkg/config"
	pkgkafka "streampulse/pkg/kafka"
	applogger "streampulse/pkg/logger"
	"streampulse/pkg/metrics"
	"streampulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := cfg.Logging.Level
	if level == "" {
		level = "info"
	}
	output := cfg.Logging.Output
	if output == "" {
		output = "stdout"
	}
	return applogger.New(&applogger.Config{
		Level:  level,
		Format: cfg.Logging.Format,
		Output: output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideStatsSource selects the upstream stats source by mode.
func ProvideStatsSource(cfg *config.Config) (repository.StatsSource, error) {
	switch cfg.Upstream.Mode {
	case "http":
		return statsapi.New(cfg.Upstream.BaseURL, cfg.Upstream.AuthToken, cfg.Upstream.Timeout), nil
	case "fixture":
		return statsapi.NewFixture(nil), nil
	default:
		return nil, fmt.Errorf("unknown upstream mode: %s", cfg.Upstream.Mode)
	}
}

// ProvideKafkaProducer creates a Kafka producer. Returns nil when fanout is
// disabled so the processor skips publishing.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Overlay.Fanout.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideEventPublisher creates the Kafka fanout publisher, or nil when
// fanout is disabled.
func ProvideEventPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Overlay.Fanout.Topic)
}

// ProvideKafkaConsumer creates a Kafka consumer when the push channel is
// brokered; nil otherwise.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if cfg.Overlay.Source != "kafka" {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideEventStream creates the push-event websocket stream, or nil when
// the source is kafka or none.
func ProvideEventStream(cfg *config.Config) repository.EventStream {
	if cfg.Overlay.Source != "websocket" {
		return nil
	}
	return overlay.NewWSClient(
		cfg.Overlay.WebSocket.URL,
		cfg.Upstream.AuthToken,
		cfg.Overlay.WebSocket.Channels,
		cfg.Overlay.WebSocket.ReconnectDelay,
		cfg.Overlay.WebSocket.PingInterval,
	)
}

// ProvideOverlayState creates the overlay-local state.
func ProvideOverlayState(cfg *config.Config) *usecase.OverlayState {
	channel := ""
	if len(cfg.Overlay.WebSocket.Channels) > 0 {
		channel = cfg.Overlay.WebSocket.Channels[0]
	}
	return usecase.NewOverlayState(channel, cfg.Overlay.TickerSize)
}

// ProvideEventProcessor creates the event processor use case.
func ProvideEventProcessor(
	state *usecase.OverlayState,
	src repository.StatsSource,
	pub repository.Publisher,
	metrics repository.Metrics,
	cfg *config.Config,
) *usecase.EventProcessor {
	channel := ""
	if len(cfg.Overlay.WebSocket.Channels) > 0 {
		channel = cfg.Overlay.WebSocket.Channels[0]
	}
	return usecase.NewEventProcessor(state, src, pub, metrics, channel)
}

// ProvideEventPipeline builds the middleware pipeline between the feed and
// the processor.
func ProvideEventPipeline(proc *usecase.EventProcessor, metrics repository.Metrics, cfg *config.Config) *mid.EventPipeline {
	opts := []mid.PipelineOption{}
	if cfg.Overlay.Pipeline.MaxEPS > 0 {
		opts = append(opts, mid.WithMaxEPS(cfg.Overlay.Pipeline.MaxEPS))
	}
	if cfg.Overlay.Pipeline.BufferSize > 0 {
		opts = append(opts, mid.WithBufferSize(cfg.Overlay.Pipeline.BufferSize))
	}
	return mid.NewEventPipeline(proc, metrics, opts...)
}

// ProvideOverlayCollector creates the collector, or nil when no websocket
// feed is configured.
func ProvideOverlayCollector(
	stream repository.EventStream,
	proc *usecase.EventProcessor,
	state *usecase.OverlayState,
	metrics repository.Metrics,
	pipe *mid.EventPipeline,
) *usecase.OverlayCollector {
	if stream == nil {
		return nil
	}
	return usecase.NewOverlayCollector(stream, proc, state, metrics, pipe)
}

// ProvideKafkaEventsHandler registers the handler for the events topic.
func ProvideKafkaEventsHandler(pipe *mid.EventPipeline, metrics repository.Metrics, cfg *config.Config) *usecase.KafkaEventsHandler {
	return usecase.NewKafkaEventsHandler(cfg.Kafka.Topic, pipe, metrics)
}

// ProvideRadarDivisors maps configured divisors onto the derive defaults.
func ProvideRadarDivisors(cfg *config.Config) derive.RadarDivisors {
	d := derive.DefaultRadarDivisors()
	for axis, div := range cfg.Dashboard.RadarDivisors {
		d[axis] = div
	}
	return d
}

// ProvideDashboardHandler builds the dashboard Echo handler with its
// assemblers and handler-edge cache.
func ProvideDashboardHandler(
	logger *applogger.Logger,
	src repository.StatsSource,
	metrics repository.Metrics,
	divisors derive.RadarDivisors,
	cfg *config.Config,
) (*api.DashboardHandler, error) {
	h := api.NewDashboardHandler(
		logger,
		usecase.NewOverviewUseCase(src, metrics),
		usecase.NewStreamerListUseCase(src, metrics),
		usecase.NewStreamerDetailUseCase(src, metrics, divisors),
		usecase.NewCampaignReportUseCase(src, metrics),
		usecase.NewPlatformCompareUseCase(src, metrics, divisors),
		api.CacheTTLs{
			Overview:  cfg.Dashboard.CacheTTL.Overview,
			Streamers: cfg.Dashboard.CacheTTL.Streamers,
			Detail:    cfg.Dashboard.CacheTTL.Detail,
			Campaigns: cfg.Dashboard.CacheTTL.Campaigns,
			Platforms: cfg.Dashboard.CacheTTL.Platforms,
		},
	)

	if cfg.Dashboard.Redis.Enabled {
		redisCache, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(cfg.Dashboard.Redis.Host),
			pkgcache.WithRedisPort(cfg.Dashboard.Redis.Port),
			pkgcache.WithRedisPassword(cfg.Dashboard.Redis.Password),
			pkgcache.WithRedisDB(cfg.Dashboard.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		h.SetCache(icache.NewServiceBytes(pkgcache.NewLayeredCache(redisCache)))
	} else {
		h.SetCache(icache.NewTTLCache())
	}
	return h, nil
}

// ProvideOverlayHandler builds the overlay status handler.
func ProvideOverlayHandler(logger *applogger.Logger, state *usecase.OverlayState, src repository.StatsSource, collector *usecase.OverlayCollector) *api.OverlayHandler {
	return api.NewOverlayHandler(logger, state, src, collector)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	collector *usecase.OverlayCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaEventsHandler,
	dashboard *api.DashboardHandler,
	overlayHandler *api.OverlayHandler,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	return server.New(cfg, logger, collector, consumer, kh, dashboard, overlayHandler)
}
