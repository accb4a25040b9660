package config

import (
	"github.com/Artexxx/hr-onboarding/library/pg"
	"github.com/Artexxx/hr-onboarding/library/yamlenv"
)

type Config struct {
	Postgres      pg.PostgresConfig `yaml:"postgres"`
	Kafka         KafkaConfig       `yaml:"kafka"`
	OnboardingAPI ApiConfig         `yaml:"onboardingAPI"`
	Reference     ReferenceConfig   `yaml:"reference"`
}

type KafkaConfig struct {
	Bootstrap        *yamlenv.Env[string] `yaml:"bootstrap"`
	ProducerClientID *yamlenv.Env[string] `yaml:"producer_client_id"`
	ConsumerGroup    *yamlenv.Env[string] `yaml:"consumer_group"`
	Topics           struct {
		Onboarding *yamlenv.Env[string] `yaml:"onboarding"`
	} `yaml:"topics"`
}

type ApiConfig struct {
	Port *yamlenv.Env[int] `yaml:"port"`
	// SessionTTL drops wizard sessions untouched for this long, e.g. "24h".
	SessionTTL *yamlenv.Env[string] `yaml:"session_ttl"`
}

// ReferenceConfig points at the YAML catalog of managers, skills and
// relationships. An empty path means the built-in catalog.
type ReferenceConfig struct {
	Path *yamlenv.Env[string] `yaml:"path"`
}
