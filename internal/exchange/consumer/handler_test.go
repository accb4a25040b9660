package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Artexxx/hr-onboarding/internal/dto"
	"github.com/Artexxx/hr-onboarding/internal/metrics"
	"github.com/Artexxx/hr-onboarding/internal/onboarding"
)

type fakeEvents struct {
	seen      map[uuid.UUID]bool
	existsErr error
	insertErr error

	inserted []dto.KafkaEvent
	dlq      []dto.KafkaDLQ
}

func (f *fakeEvents) ExistsMessage(_ context.Context, id uuid.UUID) (bool, error) {
	return f.seen[id], f.existsErr
}

func (f *fakeEvents) InsertEvent(_ context.Context, ev dto.KafkaEvent) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, ev)
	return nil
}

func (f *fakeEvents) InsertDLQ(_ context.Context, d dto.KafkaDLQ) error {
	f.dlq = append(f.dlq, d)
	return nil
}

type fakeSubmissions struct {
	err    error
	stored []dto.Submission
}

func (f *fakeSubmissions) Upsert(_ context.Context, s dto.Submission) error {
	if f.err != nil {
		return f.err
	}
	f.stored = append(f.stored, s)
	return nil
}

var sentAt = time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)

func validForm() dto.OnboardingForm {
	return dto.OnboardingForm{
		PersonalInfo: dto.PersonalInfo{
			FullName:    "Anna Ivanova",
			Email:       "anna@company.com",
			PhoneNumber: "+1-123-456-7890",
			DateOfBirth: "1994-06-12",
		},
		JobDetails: dto.JobDetails{
			Department:    "Engineering",
			PositionTitle: "Software Engineer",
			StartDate:     "2026-11-02",
			JobType:       dto.JobTypeFullTime,
			Salary:        120000,
			Manager:       "m1",
		},
		Skills: dto.Skills{
			PrimarySkills:        []string{"Go", "SQL", "Docker"},
			Experience:           map[string]float64{"Go": 5},
			PreferredHours:       dto.Hours{Start: "09:00", End: "17:00"},
			RemoteWorkPreference: 40,
		},
		EmergencyContact: dto.EmergencyContact{
			ContactName:  "Ivan Ivanov",
			Relationship: "Parent",
			PhoneNumber:  "+7-916-123-4567",
		},
		Review: dto.Review{Confirmation: true},
	}
}

func message(t *testing.T, env dto.Envelope[dto.OnboardingForm]) *sarama.ConsumerMessage {
	t.Helper()

	value, err := json.Marshal(env)
	require.NoError(t, err)

	return &sarama.ConsumerMessage{
		Topic:     "hr.onboarding",
		Key:       []byte(env.SubmissionID.String()),
		Value:     value,
		Partition: 1,
		Offset:    7,
	}
}

func envelope(form dto.OnboardingForm) dto.Envelope[dto.OnboardingForm] {
	return dto.Envelope[dto.OnboardingForm]{
		Kind:         dto.KindOnboarding,
		MessageID:    uuid.New(),
		SubmissionID: uuid.New(),
		Payload:      form,
		Timestamp:    sentAt,
		Source:       "test",
	}
}

func newTestHandler() (*handler, *fakeEvents, *fakeSubmissions) {
	events := &fakeEvents{seen: map[uuid.UUID]bool{}}
	subs := &fakeSubmissions{}

	return &handler{
		events:      events,
		submissions: subs,
		rules:       onboarding.NewValidator(onboarding.DefaultCatalog()),
		log:         zerolog.Nop(),
		commitOnDLQ: true,
	}, events, subs
}

func TestHandler_StoresValidSubmission(t *testing.T) {
	h, events, subs := newTestHandler()
	env := envelope(validForm())

	assert.True(t, h.handle(context.Background(), message(t, env)))

	require.Len(t, events.inserted, 1)
	assert.Equal(t, env.MessageID, events.inserted[0].MessageID)
	assert.Equal(t, env.SubmissionID.String(), events.inserted[0].Key)
	assert.Equal(t, int64(7), events.inserted[0].Offset)

	require.Len(t, subs.stored, 1)
	got := subs.stored[0]
	assert.Equal(t, env.SubmissionID, got.SubmissionID)
	assert.Equal(t, "Anna Ivanova", got.FullName)
	assert.Equal(t, "Engineering", got.Department)
	assert.Equal(t, sentAt, got.SubmittedAt)
	assert.Equal(t, env.Payload, got.Form)
	assert.Empty(t, events.dlq)
}

func TestHandler_Duplicate(t *testing.T) {
	h, events, subs := newTestHandler()
	env := envelope(validForm())
	events.seen[env.MessageID] = true

	assert.True(t, h.handle(context.Background(), message(t, env)))
	assert.Empty(t, events.inserted)
	assert.Empty(t, subs.stored)
	assert.Empty(t, events.dlq)
}

func TestHandler_EvaluatesAsOfTimestamp(t *testing.T) {
	h, events, subs := newTestHandler()

	// 18 on the day it was sent, 17 the day before
	form := validForm()
	form.PersonalInfo.DateOfBirth = "2008-10-18"
	form.EmergencyContact.GuardianName = "Olga Ivanova"
	form.EmergencyContact.GuardianPhone = "+1-555-123-4567"

	require.True(t, h.handle(context.Background(), message(t, envelope(form))))
	assert.Len(t, subs.stored, 1)

	env := envelope(form)
	env.Timestamp = sentAt.AddDate(0, 0, -1)
	env.Payload.JobDetails.StartDate = "2026-10-20"

	require.True(t, h.handle(context.Background(), message(t, env)))
	assert.Len(t, subs.stored, 1)
	require.Len(t, events.dlq, 1)
	assert.Contains(t, events.dlq[0].Error, "personalInfo.dateOfBirth: Must be at least 18 years old")
}

func TestHandler_ToDLQ(t *testing.T) {
	broken := validForm()
	broken.Review.Confirmation = false

	tests := []struct {
		name   string
		msg    func(t *testing.T) *sarama.ConsumerMessage
		reason string
	}{
		{
			name: "not json",
			msg: func(*testing.T) *sarama.ConsumerMessage {
				return &sarama.ConsumerMessage{Topic: "hr.onboarding", Value: []byte("{oops")}
			},
			reason: "invalid_json",
		},
		{
			name: "wrong kind",
			msg: func(t *testing.T) *sarama.ConsumerMessage {
				env := envelope(validForm())
				env.Kind = "personal"
				return message(t, env)
			},
			reason: "invalid enum value: kind",
		},
		{
			name: "no message id",
			msg: func(t *testing.T) *sarama.ConsumerMessage {
				env := envelope(validForm())
				env.MessageID = uuid.Nil
				return message(t, env)
			},
			reason: "missing required field message_id",
		},
		{
			name: "no timestamp",
			msg: func(t *testing.T) *sarama.ConsumerMessage {
				env := envelope(validForm())
				env.Timestamp = time.Time{}
				return message(t, env)
			},
			reason: "missing required field timestamp",
		},
		{
			name: "not confirmed",
			msg: func(t *testing.T) *sarama.ConsumerMessage {
				return message(t, envelope(broken))
			},
			reason: "validation failed: review.confirmation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, events, subs := newTestHandler()

			assert.True(t, h.handle(context.Background(), tt.msg(t)))
			assert.Empty(t, subs.stored)
			require.Len(t, events.dlq, 1)
			assert.Contains(t, events.dlq[0].Error, tt.reason)
			assert.True(t, json.Valid(events.dlq[0].Payload))
		})
	}
}

func TestHandler_StorageErrors(t *testing.T) {
	t.Run("events lookup", func(t *testing.T) {
		h, events, _ := newTestHandler()
		events.existsErr = errors.New("conn refused")

		assert.True(t, h.handle(context.Background(), message(t, envelope(validForm()))))
		require.Len(t, events.dlq, 1)
		assert.Contains(t, events.dlq[0].Error, "events.ExistsMessage")
	})

	t.Run("event raced by another consumer", func(t *testing.T) {
		h, events, subs := newTestHandler()
		events.insertErr = dto.ErrAlreadyExists

		assert.True(t, h.handle(context.Background(), message(t, envelope(validForm()))))
		assert.Empty(t, events.dlq)
		assert.Empty(t, subs.stored)
	})

	t.Run("submission upsert", func(t *testing.T) {
		h, events, subs := newTestHandler()
		subs.err = errors.New("deadlock detected")
		h.commitOnDLQ = false

		assert.False(t, h.handle(context.Background(), message(t, envelope(validForm()))))
		require.Len(t, events.dlq, 1)
		assert.Contains(t, events.dlq[0].Error, "submissions.Upsert")
	})
}

func TestHandler_CountsOutcomes(t *testing.T) {
	stored := metrics.ConsumedMessages.WithLabelValues("stored")
	duplicate := metrics.ConsumedMessages.WithLabelValues("duplicate")
	dlq := metrics.ConsumedMessages.WithLabelValues("dlq")
	before := [3]float64{testutil.ToFloat64(stored), testutil.ToFloat64(duplicate), testutil.ToFloat64(dlq)}

	h, events, _ := newTestHandler()
	env := envelope(validForm())
	msg := message(t, env)

	h.handle(context.Background(), msg)
	events.seen[env.MessageID] = true
	h.handle(context.Background(), msg)
	h.handle(context.Background(), &sarama.ConsumerMessage{Topic: "hr.onboarding", Value: []byte("nope")})

	assert.Equal(t, before[0]+1, testutil.ToFloat64(stored))
	assert.Equal(t, before[1]+1, testutil.ToFloat64(duplicate))
	assert.Equal(t, before[2]+1, testutil.ToFloat64(dlq))
}
