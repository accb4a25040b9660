package api

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Artexxx/hr-onboarding/internal/dto"
	"github.com/Artexxx/hr-onboarding/internal/onboarding"
	"github.com/Artexxx/hr-onboarding/internal/repository/events"

	"github.com/fasthttp/router"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// @title           HR Onboarding Wizard
// @version         1.0
// @description     Пошаговый мастер онбординга сотрудника: пять разделов, проверка полей и связей между ними, отправка принятой анкеты в Kafka и сохранение в Postgres.
//
// @BasePath  /
// @schemes   http
// @accept    json
// @produce   json

type EventsRepository interface {
	ListEvents(ctx context.Context, page events.Page) ([]dto.KafkaEvent, error)
	ListDLQ(ctx context.Context, page events.Page) ([]dto.KafkaDLQ, error)
	ResetAll(ctx context.Context) error
}

type SubmissionRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*dto.Submission, error)
	List(ctx context.Context, department string, limit, offset int) ([]dto.Submission, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ServiceDeps struct {
	Port       int
	SessionTTL time.Duration

	EventsRepo     EventsRepository
	SubmissionRepo SubmissionRepository

	// Sink receives confirmed forms; nil disables submit.
	Sink  onboarding.Sink
	Rules *onboarding.Validator
}

type Service struct {
	r      *router.Router
	server *fasthttp.Server
	port   int

	events      EventsRepository
	submissions SubmissionRepository
	sink        onboarding.Sink
	rules       *onboarding.Validator
	sessions    *sessionStore

	now func() time.Time
}

func NewService(d ServiceDeps) *Service {
	rt := router.New()

	rules := d.Rules
	if rules == nil {
		rules = onboarding.NewValidator(onboarding.DefaultCatalog())
	}

	s := &Service{
		r:           rt,
		port:        d.Port,
		events:      d.EventsRepo,
		submissions: d.SubmissionRepo,
		sink:        d.Sink,
		rules:       rules,
		sessions:    newSessionStore(d.SessionTTL),
		now:         func() time.Time { return time.Now().UTC() },
	}

	s.mountRoutes()

	s.server = &fasthttp.Server{
		Handler:            RecoveryMiddleware(LoggingMiddleware(CORS(s.r.Handler))),
		Name:               "hr-onboarding-api",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       15 * time.Second,
		MaxRequestBodySize: 4 << 20, // 4 MiB
	}

	return s
}

func (s *Service) Start(ctx context.Context) error {
	log.Info().Int("port", s.port).Msg("Starting onboarding API")

	go s.sweepSessions(ctx, time.Minute)

	emergencyShutdown := make(chan error, 1)
	go func() {
		err := s.server.ListenAndServe(fmt.Sprintf(":%d", s.port))
		emergencyShutdown <- err
	}()

	select {
	case <-ctx.Done():
		return s.server.Shutdown()
	case e := <-emergencyShutdown:
		return e
	}
}

func (s *Service) sweepSessions(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.sweep(s.now()); n > 0 {
				log.Info().Int("expired", n).Msg("onboarding sessions expired")
			}
		}
	}
}

func (s *Service) mountRoutes() {
	// Wizard sessions
	s.r.POST("/onboarding/sessions", s.createSession)
	s.r.GET("/onboarding/sessions/{id}", s.getSession)
	s.r.DELETE("/onboarding/sessions/{id}", s.deleteSession)
	s.r.PUT("/onboarding/sessions/{id}/{section}", s.putSection)
	s.r.POST("/onboarding/sessions/{id}/next", s.nextStep)
	s.r.POST("/onboarding/sessions/{id}/prev", s.prevStep)
	s.r.POST("/onboarding/sessions/{id}/submit", s.submitSession)

	s.r.GET("/reference", s.reference)

	// Submissions
	s.r.GET("/onboarding/submissions", s.listSubmissions)
	s.r.GET("/onboarding/submissions/{id}", s.getSubmission)
	s.r.DELETE("/onboarding/submissions/{id}", s.deleteSubmission)

	// Events/DLQ
	s.r.GET("/events", s.listEvents)
	s.r.GET("/dlq", s.listDLQ)

	// Admin & Health
	s.r.GET("/health", s.healthHandler)
	s.r.POST("/admin/reset", s.resetHandler)
	s.r.GET("/metrics", fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()))
}
