package consumer

import (
	"context"
	"errors"
	"fmt"

	"github.com/Artexxx/hr-onboarding/internal/dto"
	"github.com/Artexxx/hr-onboarding/internal/metrics"
	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
)

func NewOnboardingRunner(
	bootstrap string,
	topic string,
	groupID string,
	events EventsRepository,
	submissions SubmissionRepository,
	rules FormValidator,
	log zerolog.Logger,
) *Runner {
	h := &handler{
		events:      events,
		submissions: submissions,
		rules:       rules,
		log:         log.With().Str("consumer", "onboarding").Logger(),
		commitOnDLQ: true,
	}

	return newRunner(bootstrap, groupID, topic, h, log)
}

func (h *handler) processOnboarding(ctx context.Context, msg *sarama.ConsumerMessage, env dto.Envelope[dto.OnboardingForm]) bool {
	if reason := checkEnvelope(env); reason != "" {
		h.toDLQ(ctx, msg, reason)
		return h.commitOnDLQ
	}

	exists, err := h.events.ExistsMessage(ctx, env.MessageID)
	if err != nil {
		h.toDLQ(ctx, msg, fmt.Sprintf("events.ExistsMessage: %v", err))
		return h.commitOnDLQ
	}

	if exists {
		h.log.Info().
			Str("message_id", env.MessageID.String()).
			Str("submission_id", env.SubmissionID.String()).
			Msg("duplicate message, skip (idempotency)")
		metrics.ConsumedMessages.WithLabelValues("duplicate").Inc()
		return true
	}

	// age and calendar rules are evaluated as of the moment the form was sent
	if failures := h.rules.All(&env.Payload, env.Timestamp); !failures.Empty() {
		h.toDLQ(ctx, msg, formatFailures(failures))
		return h.commitOnDLQ
	}

	if err := h.events.InsertEvent(ctx, dto.KafkaEvent{
		MessageID: env.MessageID,
		Topic:     msg.Topic,
		Key:       string(msg.Key),
		Partition: int(msg.Partition),
		Offset:    msg.Offset,
		Payload:   append([]byte(nil), msg.Value...),
	}); err != nil {
		if errors.Is(err, dto.ErrAlreadyExists) {
			metrics.ConsumedMessages.WithLabelValues("duplicate").Inc()
			return true
		}

		h.toDLQ(ctx, msg, fmt.Sprintf("events.InsertEvent: %v", err))
		return h.commitOnDLQ
	}

	form := env.Payload
	submission := dto.Submission{
		SubmissionID: env.SubmissionID,
		FullName:     form.PersonalInfo.FullName,
		Email:        form.PersonalInfo.Email,
		Department:   form.JobDetails.Department,
		StartDate:    form.JobDetails.StartDate,
		Form:         form,
		SubmittedAt:  env.Timestamp,
	}

	if err := h.submissions.Upsert(ctx, submission); err != nil {
		h.toDLQ(ctx, msg, fmt.Sprintf("submissions.Upsert: %v", err))
		return h.commitOnDLQ
	}

	h.log.Info().
		Str("message_id", env.MessageID.String()).
		Str("submission_id", env.SubmissionID.String()).
		Str("department", submission.Department).
		Msg("onboarding stored")
	metrics.ConsumedMessages.WithLabelValues("stored").Inc()

	return true
}
