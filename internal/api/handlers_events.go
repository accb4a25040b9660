package api

import (
	"fmt"
	"strconv"

	"github.com/Artexxx/hr-onboarding/internal/repository/events"
	"github.com/valyala/fasthttp"
)

// @Summary Обработанные события топика онбординга (kafka_events)
// @Tags    Events
// @Produce json
// @Param   limit  query int false "Лимит"   default(50)
// @Param   offset query int false "Смещение" default(0)
// @Success 200 {object} listResponse
// @Failure 500 {object} errorResponse
// @Router  /events [get]
func (s *Service) listEvents(ctx *fasthttp.RequestCtx) {
	limit, offset := parseLO(ctx)
	rows, err := s.events.ListEvents(ctx, events.Page{Limit: limit, Offset: offset})
	if err != nil {
		serverError(ctx, fmt.Errorf("eventsRepository.ListEvents: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, listResponse{Items: rows, Limit: limit, Offset: offset})
}

// @Summary Сообщения DLQ: невалидный JSON, повторная проверка не пройдена, ошибки БД
// @Tags    Events
// @Produce json
// @Param   limit  query int false "Лимит"   default(50)
// @Param   offset query int false "Смещение" default(0)
// @Success 200 {object} listResponse
// @Failure 500 {object} errorResponse
// @Router  /dlq [get]
func (s *Service) listDLQ(ctx *fasthttp.RequestCtx) {
	limit, offset := parseLO(ctx)
	rows, err := s.events.ListDLQ(ctx, events.Page{Limit: limit, Offset: offset})
	if err != nil {
		serverError(ctx, fmt.Errorf("eventsRepository.ListDLQ: %w", err))
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, listResponse{Items: rows, Limit: limit, Offset: offset})
}

func parseLO(ctx *fasthttp.RequestCtx) (int, int) {
	q := ctx.URI().QueryArgs()
	limit := 50
	offset := 0

	if v := q.GetUfloatOrZero("limit"); v > 0 && v <= 500 {
		limit = int(v)
	}
	if s := string(q.Peek("offset")); s != "" {
		if x, err := strconv.Atoi(s); err == nil && x >= 0 {
			offset = x
		}
	}

	return limit, offset
}
