package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Artexxx/hr-onboarding/internal/dto"
	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OnboardingProducer publishes accepted onboarding forms. Delivery retries are
// configured on the sarama producer, the wizard only sees the final result.
type OnboardingProducer struct {
	sp     sarama.SyncProducer
	topic  string
	source string
	log    zerolog.Logger
	now    func() time.Time
}

type Config struct {
	Topic  string
	Source string
}

func NewOnboardingProducer(sp sarama.SyncProducer, cfg Config, log zerolog.Logger) *OnboardingProducer {
	return &OnboardingProducer{
		sp:     sp,
		topic:  cfg.Topic,
		source: cfg.Source,
		log:    log.With().Str("component", "OnboardingProducer").Logger(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (p *OnboardingProducer) Close() error {
	if p == nil || p.sp == nil {
		return nil
	}
	return p.sp.Close()
}

// Submit sends the form keyed by the session id, so every retry of the same
// session lands in the same partition.
func (p *OnboardingProducer) Submit(ctx context.Context, submissionID uuid.UUID, form dto.OnboardingForm) error {
	if p == nil || p.sp == nil {
		return errors.New("sync producer is not initialized")
	}

	env := dto.Envelope[dto.OnboardingForm]{
		Kind:         dto.KindOnboarding,
		MessageID:    uuid.New(),
		SubmissionID: submissionID,
		Payload:      form,
		Timestamp:    p.now(),
		Source:       p.source,
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	return p.send(ctx, p.topic, submissionID.String(), body, []sarama.RecordHeader{
		{Key: []byte("event-kind"), Value: []byte(dto.KindOnboarding)},
		{Key: []byte("message-id"), Value: []byte(env.MessageID.String())},
		{Key: []byte("source"), Value: []byte(p.source)},
		{Key: []byte("content-type"), Value: []byte("application/json")},
	})
}

func (p *OnboardingProducer) send(ctx context.Context, topic, key string, value []byte, headers []sarama.RecordHeader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(value),
		Headers: headers,
	}

	part, off, err := p.sp.SendMessage(msg)
	if err != nil {
		p.log.Error().
			Err(err).
			Str("topic", topic).
			Str("key", key).
			Int("headers_count", len(headers)).
			Int("bytes", len(value)).
			Msg("failed to send kafka message")
		return fmt.Errorf("send kafka message: %w", err)
	}

	p.log.Info().
		Str("topic", topic).
		Str("key", key).
		Int32("partition", part).
		Int64("offset", off).
		Int("bytes", len(value)).
		Msg("kafka message sent")
	return nil
}
