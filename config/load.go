package config

import (
	// Go Internal Packages
	"os"
	"strings"

	// External Packages
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
)

// LoadConfig loads the default configuration and overrides it with the config
// file at configPath. A missing file is not an error, the defaults apply.
func LoadConfig(configPath string) *koanf.Koanf {
	k := koanf.New(".")
	_ = k.Load(rawbytes.Provider(DefaultConfig), yaml.Parser())
	if configPath != "" {
		_ = k.Load(file.Provider(configPath), yaml.Parser())
	}
	return k
}

// Build unmarshals k into a Config, applies the secrets from the environment
// and validates the result.
func Build(k *koanf.Koanf) (Config, error) {
	appKonf := Config{}
	if err := k.Unmarshal("", &appKonf); err != nil {
		return Config{}, err
	}

	appKonf = LoadSecrets(appKonf)
	if err := appKonf.Validate(); err != nil {
		return Config{}, err
	}
	return appKonf, nil
}

// LoadSecrets Loads the secret variables and overrides the config
func LoadSecrets(k Config) Config {
	if uri := os.Getenv("POSTGRES_URI"); uri != "" {
		k.Postgres.URI = uri
	}
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		k.Mongo.URI = uri
	}
	if uri := os.Getenv("REDIS_URI"); uri != "" {
		k.Redis.URI = uri
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		k.Redis.Password = password
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		k.Kafka.Brokers = strings.Split(brokers, ",")
	}
	if prod := os.Getenv("IS_PROD_MODE"); prod != "" {
		k.IsProdMode = prod == "true"
	}
	return k
}
