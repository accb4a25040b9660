package api

import (
	"encoding/json"
	"errors"

	"github.com/Artexxx/hr-onboarding/internal/onboarding"
	"github.com/valyala/fasthttp"
)

var (
	ErrSessionIDRequired = errors.New("идентификатор сессии не передан или некорректен")
	ErrSessionNotFound   = errors.New("сессия онбординга не найдена")

	ErrSubmissionIDRequired = errors.New("идентификатор анкеты не передан или некорректен")
	ErrSubmissionNotFound   = errors.New("анкета не найдена")
)

type okResponse struct {
	Status string `json:"status" example:"ok"`
	Msg    string `json:"msg" example:"Готово"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// failuresResponse — ответ 422: шаг, на котором остался мастер, и ошибки полей.
type failuresResponse struct {
	Step   onboarding.Step     `json:"step" example:"2"`
	Errors onboarding.Failures `json:"errors"`
}

type listResponse struct {
	Items  any `json:"items"`
	Limit  int `json:"limit" example:"50"`
	Offset int `json:"offset" example:"0"`
}

func writeJSON(ctx *fasthttp.RequestCtx, statusCode int, body any) {
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.SetStatusCode(statusCode)

	_ = json.NewEncoder(ctx).Encode(body)
}

func ok(ctx *fasthttp.RequestCtx, msg string) {
	writeJSON(ctx, fasthttp.StatusOK, okResponse{Status: "ok", Msg: msg})
}

func writeError(ctx *fasthttp.RequestCtx, httpStatus int, err error) {
	writeJSON(ctx, httpStatus, errorResponse{Code: fasthttp.StatusMessage(httpStatus), Message: err.Error()})
}

func badRequest(ctx *fasthttp.RequestCtx, code, msg string) {
	writeJSON(ctx, fasthttp.StatusBadRequest, errorResponse{Code: code, Message: msg})
}

func notFound(ctx *fasthttp.RequestCtx, err error) {
	writeError(ctx, fasthttp.StatusNotFound, err)
}

func conflict(ctx *fasthttp.RequestCtx, err error) {
	writeError(ctx, fasthttp.StatusConflict, err)
}

func serverError(ctx *fasthttp.RequestCtx, err error) {
	writeError(ctx, fasthttp.StatusInternalServerError, err)
}

func notImplemented(ctx *fasthttp.RequestCtx, code, msg string) {
	writeJSON(ctx, fasthttp.StatusNotImplemented, errorResponse{Code: code, Message: msg})
}

func unprocessable(ctx *fasthttp.RequestCtx, step onboarding.Step, f onboarding.Failures) {
	writeJSON(ctx, fasthttp.StatusUnprocessableEntity, failuresResponse{Step: step, Errors: f})
}
