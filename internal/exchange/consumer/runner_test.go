package consumer

import (
	"testing"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, SplitBrokers(" kafka-1:9092, kafka-2:9092,"))
	assert.Equal(t, []string{"localhost:9092"}, SplitBrokers("localhost:9092"))
	assert.Empty(t, SplitBrokers(""))
}

func TestNewOnboardingRunner(t *testing.T) {
	r := NewOnboardingRunner("kafka-1:9092,kafka-2:9092", "hr.onboarding", "consumer_onboarding",
		&fakeEvents{}, &fakeSubmissions{}, nil, zerolog.Nop())

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, r.brokers)
	assert.Equal(t, "hr.onboarding", r.topic)
	require.NotNil(t, r.handler)
	assert.True(t, r.handler.commitOnDLQ)

	cfg := r.createCfg()
	assert.Equal(t, sarama.OffsetOldest, cfg.Consumer.Offsets.Initial)
	assert.True(t, cfg.Consumer.Return.Errors)
	assert.NoError(t, cfg.Validate())
}
