package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Artexxx/hr-onboarding/internal/dto"
	"github.com/Artexxx/hr-onboarding/internal/metrics"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
)

type handler struct {
	events      EventsRepository
	submissions SubmissionRepository
	rules       FormValidator
	log         zerolog.Logger
	commitOnDLQ bool
}

func (h *handler) Setup(_ sarama.ConsumerGroupSession) error   { return nil }
func (h *handler) Cleanup(_ sarama.ConsumerGroupSession) error { return nil }

func (h *handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		if ok := h.handle(sess.Context(), msg); ok {
			sess.MarkMessage(msg, "")
		}
	}
	return nil
}

// handle reports whether the offset of msg may be committed.
func (h *handler) handle(ctx context.Context, msg *sarama.ConsumerMessage) bool {
	var env dto.Envelope[dto.OnboardingForm]
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		h.toDLQ(ctx, msg, fmt.Sprintf("invalid_json: %v", err))
		return h.commitOnDLQ
	}

	return h.processOnboarding(ctx, msg, env)
}

func (h *handler) toDLQ(ctx context.Context, msg *sarama.ConsumerMessage, reason string) {
	payload := append([]byte(nil), msg.Value...)
	if !json.Valid(payload) {
		// payload column is jsonb
		payload, _ = json.Marshal(string(msg.Value))
	}

	if err := h.events.InsertDLQ(ctx, dto.KafkaDLQ{
		Topic:   msg.Topic,
		Key:     string(msg.Key),
		Payload: payload,
		Error:   reason,
	}); err != nil {
		h.log.Error().Err(err).Str("reason", reason).Msg("events.InsertDLQ")
	}

	h.log.Warn().
		Str("topic", msg.Topic).
		Int32("partition", msg.Partition).
		Int64("offset", msg.Offset).
		Str("reason", reason).
		Msg("message sent to DLQ")
	metrics.ConsumedMessages.WithLabelValues("dlq").Inc()
}
