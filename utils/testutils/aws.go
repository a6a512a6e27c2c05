package testutils

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/kelseyhightower/envconfig"
)

// AWSConfig is an object that we fill from .env.
type AWSConfig struct {
	Region    string `default:"us-east-1"`
	Endpoint  string `envconfig:"DYNAMODB_ENDPOINT"`
	AccessID  string `envconfig:"ACCESS_KEY_ID" default:"local"`
	SecretKey string `envconfig:"SECRET_ACCESS_KEY" default:"local"`
}

var (
	cfg     aws.Config
	cfgOnce sync.Once
)

// GetAWSCfg is a quick way to retrieve an AWS config for tests. Uses
// environment variables with the AWSCONFIG prefix. Safe for concurrent use
// across test packages.
func GetAWSCfg() aws.Config {
	cfgOnce.Do(func() {
		var conf AWSConfig
		envconfig.MustProcess("AWSCONFIG", &conf)

		opts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(conf.Region),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(conf.AccessID, conf.SecretKey, ""),
			),
		}
		if conf.Endpoint != "" {
			opts = append(opts, awsconfig.WithEndpointResolverWithOptions(
				aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
					return aws.Endpoint{URL: conf.Endpoint}, nil
				}),
			))
		}

		var err error
		cfg, err = awsconfig.LoadDefaultConfig(context.TODO(), opts...)
		if err != nil {
			panic(err)
		}
	})
	return cfg
}
