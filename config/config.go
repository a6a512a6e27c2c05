package config

import "github.com/kelseyhightower/envconfig"

// Config is the service configuration, filled from POSTFEED_* environment
// variables.
type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	Region           string `envconfig:"AWS_REGION" default:"us-east-1"`
	DynamoDBEndpoint string `envconfig:"DYNAMODB_ENDPOINT"`
	AccessID         string `envconfig:"ACCESS_KEY_ID"`
	SecretKey        string `envconfig:"SECRET_ACCESS_KEY"`
	EventsTable      string `envconfig:"EVENTS_TABLE" default:"post_events"`

	// Producer selects the event stream backend: "kafka" or "kinesis".
	Producer     string   `envconfig:"PRODUCER" default:"kafka"`
	EventsTopic  string   `envconfig:"EVENTS_TOPIC" default:"SocialMediaPostEvents"`
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var c Config
	err := envconfig.Process("POSTFEED", &c)
	return c, err
}
