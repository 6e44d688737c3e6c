package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port             string `envconfig:"PORT" default:"8080"`
	StorageBackend   string `envconfig:"STORAGE_BACKEND" default:"memory"` // memory | dynamodb
	AWSRegion        string `envconfig:"AWS_REGION" default:"af-south-1"`
	ProductTableName string `envconfig:"PRODUCT_TABLE_NAME" default:"talex-products"`
	OrderTableName   string `envconfig:"ORDER_TABLE_NAME" default:"talex-orders"`
	CartTableName    string `envconfig:"CART_TABLE_NAME" default:"talex-carts"`
	KafkaBrokers     string `envconfig:"KAFKA_BROKERS" default:""`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	SeedDemoData     bool   `envconfig:"SEED_DEMO_DATA" default:"true"`
	DynamoDBEndpoint string `envconfig:"DYNAMODB_ENDPOINT" default:""` // DynamoDB Local
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
