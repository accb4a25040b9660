package api

import (
	"errors"
	"fmt"

	"github.com/Artexxx/hr-onboarding/internal/dto"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// @Summary Принятые анкеты
// @Tags    Submissions
// @Produce json
// @Param   department query string false "Фильтр по отделу"
// @Param   limit      query int    false "Лимит"    default(50)
// @Param   offset     query int    false "Смещение" default(0)
// @Success 200 {object} listResponse
// @Failure 500 {object} errorResponse
// @Router  /onboarding/submissions [get]
func (s *Service) listSubmissions(ctx *fasthttp.RequestCtx) {
	limit, offset := parseLO(ctx)
	department := string(ctx.QueryArgs().Peek("department"))

	rows, err := s.submissions.List(ctx, department, limit, offset)
	if err != nil {
		serverError(ctx, fmt.Errorf("submissionRepository.List: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, listResponse{Items: rows, Limit: limit, Offset: offset})
}

// @Summary Анкета по идентификатору сессии
// @Tags    Submissions
// @Produce json
// @Param   id path string true "Идентификатор анкеты"
// @Success 200 {object} dto.Submission
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /onboarding/submissions/{id} [get]
func (s *Service) getSubmission(ctx *fasthttp.RequestCtx) {
	id, valid := submissionID(ctx)
	if !valid {
		return
	}

	row, err := s.submissions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			notFound(ctx, ErrSubmissionNotFound)
			return
		}

		serverError(ctx, fmt.Errorf("submissionRepository.Get: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, row)
}

// @Summary Удалить анкету
// @Tags    Submissions
// @Param   id path string true "Идентификатор анкеты"
// @Success 200 {object} okResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /onboarding/submissions/{id} [delete]
func (s *Service) deleteSubmission(ctx *fasthttp.RequestCtx) {
	id, valid := submissionID(ctx)
	if !valid {
		return
	}

	if err := s.submissions.Delete(ctx, id); err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			notFound(ctx, ErrSubmissionNotFound)
			return
		}

		serverError(ctx, fmt.Errorf("submissionRepository.Delete: %w", err))
		return
	}

	ok(ctx, "Анкета удалена")
}

func submissionID(ctx *fasthttp.RequestCtx) (uuid.UUID, bool) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, ErrSubmissionIDRequired)
		return uuid.Nil, false
	}
	return id, true
}
