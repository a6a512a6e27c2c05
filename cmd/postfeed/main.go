package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"go.uber.org/zap"

	"github.com/postfeed/postfeed/api"
	"github.com/postfeed/postfeed/commands"
	"github.com/postfeed/postfeed/config"
	"github.com/postfeed/postfeed/dispatch"
	"github.com/postfeed/postfeed/eventsourcing"
	"github.com/postfeed/postfeed/eventstore"
	"github.com/postfeed/postfeed/post"
	"github.com/postfeed/postfeed/producer"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("could not load configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		log.Fatal("could not load AWS configuration", zap.Error(err))
	}

	storage := eventstore.GetDynamoDBStorage(cfg.EventsTable, dynamodb.NewFromConfig(awsCfg))

	var prod producer.Producer
	switch cfg.Producer {
	case "kafka":
		kafkaProducer := producer.NewKafkaProducer(cfg.KafkaBrokers)
		defer kafkaProducer.Close()
		prod = kafkaProducer
	case "kinesis":
		prod = producer.NewKinesisProducer(kinesis.NewFromConfig(awsCfg))
	default:
		log.Fatal("unknown producer backend", zap.String("producer", cfg.Producer))
	}

	store := eventstore.NewStore(
		storage,
		prod,
		eventstore.NewJSONSerializer(post.Events()...),
		eventstore.Config{Topic: cfg.EventsTopic, AggregateType: post.AggregateType},
		log,
	)
	repo := eventstore.NewRepository(store, func() eventsourcing.EventSourced { return post.New() }, log)

	dispatcher := dispatch.New()
	commands.NewCommandHandler(repo).Register(dispatcher)

	mux := http.NewServeMux()
	api.NewServer(dispatcher, log).Routes(mux)

	httpServer := &http.Server{Addr: cfg.HTTPAddr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	log.Info("postfeed listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("producer", cfg.Producer),
		zap.String("topic", cfg.EventsTopic))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server failed", zap.Error(err))
	}
}

func loadAWSConfig(ctx context.Context, cfg config.Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessID, cfg.SecretKey, ""),
		))
	}
	if cfg.DynamoDBEndpoint != "" {
		opts = append(opts, awsconfig.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: cfg.DynamoDBEndpoint}, nil
			}),
		))
	}
	return awsconfig.LoadDefaultConfig(ctx, opts...)
}
