package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Artexxx/hr-onboarding/internal/dto"
	"github.com/Artexxx/hr-onboarding/internal/metrics"
	"github.com/Artexxx/hr-onboarding/internal/onboarding"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

type sessionResponse struct {
	SessionID uuid.UUID          `json:"session_id" example:"6b6f9c38-3e2a-4b3d-9a9a-9f1c0f8b2a10"`
	Form      dto.OnboardingForm `json:"form"`
	View      onboarding.View    `json:"view"`
}

type submitResponse struct {
	Status    string    `json:"status" example:"ok"`
	SessionID uuid.UUID `json:"session_id" example:"6b6f9c38-3e2a-4b3d-9a9a-9f1c0f8b2a10"`
}

type referenceResponse struct {
	Departments []string `json:"departments"`
	JobTypes    []string `json:"jobTypes"`
	*onboarding.Catalog
}

func (s *Service) render(sess *session) sessionResponse {
	w := sess.wizard
	return sessionResponse{
		SessionID: w.ID(),
		Form:      w.Form(),
		View:      w.View(s.now()),
	}
}

// lockSession resolves {id} and locks the session. The caller must unlock.
func (s *Service) lockSession(ctx *fasthttp.RequestCtx) (*session, bool) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, ErrSessionIDRequired)
		return nil, false
	}

	sess, found := s.sessions.get(id)
	if !found {
		notFound(ctx, ErrSessionNotFound)
		return nil, false
	}

	sess.mu.Lock()
	sess.touched = s.now()
	return sess, true
}

// @Summary Начать онбординг
// @Tags    Wizard
// @Produce json
// @Success 201 {object} sessionResponse
// @Router  /onboarding/sessions [post]
func (s *Service) createSession(ctx *fasthttp.RequestCtx) {
	sess := s.sessions.create(s.rules, s.now())

	sess.mu.Lock()
	defer sess.mu.Unlock()

	log.Info().Str("session_id", sess.wizard.ID().String()).Msg("onboarding session created")

	writeJSON(ctx, fasthttp.StatusCreated, s.render(sess))
}

// @Summary Состояние сессии: шаг, форма, видимость полей
// @Tags    Wizard
// @Produce json
// @Param   id path string true "Идентификатор сессии"
// @Success 200 {object} sessionResponse
// @Failure 404 {object} errorResponse
// @Router  /onboarding/sessions/{id} [get]
func (s *Service) getSession(ctx *fasthttp.RequestCtx) {
	sess, found := s.lockSession(ctx)
	if !found {
		return
	}
	defer sess.mu.Unlock()

	writeJSON(ctx, fasthttp.StatusOK, s.render(sess))
}

// @Summary Отменить онбординг (несохранённые данные теряются)
// @Tags    Wizard
// @Param   id path string true "Идентификатор сессии"
// @Success 200 {object} okResponse
// @Failure 404 {object} errorResponse
// @Router  /onboarding/sessions/{id} [delete]
func (s *Service) deleteSession(ctx *fasthttp.RequestCtx) {
	sess, found := s.lockSession(ctx)
	if !found {
		return
	}
	defer sess.mu.Unlock()

	s.sessions.remove(sess.wizard.ID())

	log.Info().
		Str("session_id", sess.wizard.ID().String()).
		Bool("dirty", sess.wizard.Dirty()).
		Msg("onboarding session discarded")

	ok(ctx, "Сессия удалена")
}

// @Summary Сохранить раздел формы без перехода
// @Tags    Wizard
// @Accept  json
// @Produce json
// @Param   id      path string true "Идентификатор сессии"
// @Param   section path string true "personal | job | skills | emergency | review"
// @Success 200 {object} sessionResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router  /onboarding/sessions/{id}/{section} [put]
func (s *Service) putSection(ctx *fasthttp.RequestCtx) {
	name, _ := ctx.UserValue("section").(string)
	section, known := onboarding.ParseSection(name)
	if !known {
		badRequest(ctx, "unknown_section", fmt.Sprintf("Неизвестный раздел %q", name))
		return
	}

	sess, found := s.lockSession(ctx)
	if !found {
		return
	}
	defer sess.mu.Unlock()

	if err := applySection(sess.wizard, section, ctx.PostBody()); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, onboarding.ErrAlreadySubmitted):
			conflict(ctx, err)
		case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
			badRequest(ctx, "invalid_json", "Некорректный JSON")
		default:
			serverError(ctx, err)
		}
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, s.render(sess))
}

func observeFailures(f onboarding.Failures) {
	for _, e := range f {
		metrics.ObserveFailure(e.Path, string(e.Kind))
	}
}

func applySection(w *onboarding.Wizard, section onboarding.Section, body []byte) error {
	switch section {
	case onboarding.SectionPersonal:
		var p dto.PersonalInfo
		if err := json.Unmarshal(body, &p); err != nil {
			return err
		}
		return w.SetPersonalInfo(p)
	case onboarding.SectionJob:
		var j dto.JobDetails
		if err := json.Unmarshal(body, &j); err != nil {
			return err
		}
		return w.SetJobDetails(j)
	case onboarding.SectionSkills:
		var sk dto.Skills
		if err := json.Unmarshal(body, &sk); err != nil {
			return err
		}
		return w.SetSkills(sk)
	case onboarding.SectionEmergency:
		var ec dto.EmergencyContact
		if err := json.Unmarshal(body, &ec); err != nil {
			return err
		}
		return w.SetEmergencyContact(ec)
	case onboarding.SectionReview:
		var r dto.Review
		if err := json.Unmarshal(body, &r); err != nil {
			return err
		}
		return w.SetReview(r)
	}
	return fmt.Errorf("unknown section %q", section)
}

// @Summary Проверить текущий шаг и перейти к следующему
// @Tags    Wizard
// @Produce json
// @Param   id path string true "Идентификатор сессии"
// @Success 200 {object} sessionResponse
// @Failure 422 {object} failuresResponse
// @Router  /onboarding/sessions/{id}/next [post]
func (s *Service) nextStep(ctx *fasthttp.RequestCtx) {
	sess, found := s.lockSession(ctx)
	if !found {
		return
	}
	defer sess.mu.Unlock()

	if sess.wizard.Submitted() {
		conflict(ctx, onboarding.ErrAlreadySubmitted)
		return
	}

	step := sess.wizard.Step()
	f := sess.wizard.Next(s.now())
	metrics.ObserveStep(int(step), f.Empty())
	if !f.Empty() {
		observeFailures(f)
		unprocessable(ctx, step, f)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, s.render(sess))
}

// @Summary Вернуться на предыдущий шаг
// @Tags    Wizard
// @Produce json
// @Param   id path string true "Идентификатор сессии"
// @Success 200 {object} sessionResponse
// @Router  /onboarding/sessions/{id}/prev [post]
func (s *Service) prevStep(ctx *fasthttp.RequestCtx) {
	sess, found := s.lockSession(ctx)
	if !found {
		return
	}
	defer sess.mu.Unlock()

	sess.wizard.Prev()

	writeJSON(ctx, fasthttp.StatusOK, s.render(sess))
}

// @Summary Отправить анкету (только с шага Review)
// @Tags    Wizard
// @Produce json
// @Param   id path string true "Идентификатор сессии"
// @Success 200 {object} submitResponse
// @Failure 409 {object} errorResponse
// @Failure 422 {object} failuresResponse
// @Failure 501 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router  /onboarding/sessions/{id}/submit [post]
func (s *Service) submitSession(ctx *fasthttp.RequestCtx) {
	if s.sink == nil {
		notImplemented(ctx, "sink_not_configured", "Отправка анкет не настроена. Обратитесь к администратору.")
		return
	}

	sess, found := s.lockSession(ctx)
	if !found {
		return
	}
	defer sess.mu.Unlock()

	w := sess.wizard
	failures, err := w.Submit(ctx, s.sink, s.now())
	switch {
	case errors.Is(err, onboarding.ErrNotOnReviewStep), errors.Is(err, onboarding.ErrAlreadySubmitted):
		conflict(ctx, err)
		return
	case err != nil:
		metrics.Submissions.WithLabelValues("sink_error").Inc()
		log.Error().Err(err).Str("session_id", w.ID().String()).Msg("onboarding submit failed")
		writeError(ctx, fasthttp.StatusServiceUnavailable, err)
		return
	case !failures.Empty():
		metrics.Submissions.WithLabelValues("rejected").Inc()
		observeFailures(failures)
		unprocessable(ctx, w.Step(), failures)
		return
	}

	metrics.Submissions.WithLabelValues("accepted").Inc()
	s.sessions.remove(w.ID())

	log.Info().Str("session_id", w.ID().String()).Msg("onboarding submitted")

	writeJSON(ctx, fasthttp.StatusOK, submitResponse{Status: "ok", SessionID: w.ID()})
}

// @Summary Справочники: отделы, типы занятости, руководители, навыки, степени родства
// @Tags    Wizard
// @Produce json
// @Success 200 {object} referenceResponse
// @Router  /reference [get]
func (s *Service) reference(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, referenceResponse{
		Departments: onboarding.Departments,
		JobTypes:    onboarding.JobTypes,
		Catalog:     s.rules.Catalog(),
	})
}
