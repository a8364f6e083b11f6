package httpadapter

import (
	"context"
	"errors"
	"log/slog"

	"hearthvale/internal/app/action"
	"hearthvale/internal/app/auth"
	"hearthvale/internal/app/feed"
	"hearthvale/internal/app/ports"
	"hearthvale/internal/app/status"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func writeError(c context.Context, ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingPlayerCredentials):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_player_credentials", err.Error())
	case errors.Is(err, ErrMissingPlayerIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_player_id", err.Error())
	case errors.Is(err, ErrMissingPlayerKeyHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_player_key", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_player_credentials", err.Error())
	case errors.Is(err, action.ErrInvalidRequest),
		errors.Is(err, auth.ErrInvalidRequest),
		errors.Is(err, feed.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		slog.ErrorContext(c, "request failed", "path", string(ctx.Path()), "err", err)
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// writeActionRejected answers a malformed action in the same envelope as a
// rejected one.
func writeActionRejected(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"result_code": string(action.ResultRejected),
		"result": map[string]any{
			"success":    false,
			"message":    message,
			"utbytte":    []any{},
			"xp":         []any{},
			"durability": []any{},
		},
		"error": map[string]any{
			"code":      code,
			"message":   message,
			"retryable": false,
		},
	})
}
