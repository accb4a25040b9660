package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// KafkaEvent — сырое событие
type KafkaEvent struct {
	ID         int64           `json:"id"`
	MessageID  uuid.UUID       `json:"message_id"`
	Topic      string          `json:"topic"`
	Key        string          `json:"key"`
	Partition  int             `json:"partition"`
	Offset     int64           `json:"offset"`
	Payload    json.RawMessage `json:"payload"`
	ReceivedAt string          `json:"received_at"`
}

// KafkaDLQ — сообщение в DLQ
type KafkaDLQ struct {
	ID         int64           `json:"id"`
	Topic      string          `json:"topic"`
	Key        string          `json:"key"`
	Payload    json.RawMessage `json:"payload"`
	Error      string          `json:"error"`
	ReceivedAt string          `json:"received_at"`
}

// KindOnboarding — значение Envelope.Kind для принятых анкет онбординга.
const KindOnboarding = "onboarding"

// Envelope — конверт события в Kafka.
type Envelope[T any] struct {
	Kind         string    `json:"kind"          example:"onboarding"`                           // Тип события
	MessageID    uuid.UUID `json:"message_id"    example:"c7e06db5-4b71-4c54-9334-3f9a6e6c5d0e"` // Идентификатор события (UUID v4), ключ идемпотентности
	SubmissionID uuid.UUID `json:"submission_id" example:"6b6f9c38-3e2a-4b3d-9a9a-9f1c0f8b2a10"` // Идентификатор сессии мастера
	Payload      T         `json:"payload"`                                                      // Полезная нагрузка
	Timestamp    time.Time `json:"timestamp"     example:"2025-10-19T12:34:56Z"`                 // Время отправки, от него считаются возрастные и календарные правила
	Source       string    `json:"source"        example:"hr-onboarding-api"`                    // Сервис-источник
}
