package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"hearthvale/internal/app/action"
	"hearthvale/internal/app/auth"
	"hearthvale/internal/app/feed"
	"hearthvale/internal/app/status"
	"hearthvale/internal/domain/economy"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const playerIDHeader = "X-Player-ID"
const playerKeyHeader = "X-Player-Key"

type Handler struct {
	RegisterUC auth.RegisterUseCase
	AuthUC     auth.VerifyUseCase
	ActionUC   action.UseCase
	StatusUC   status.UseCase
	FeedUC     feed.UseCase
	Catalog    *economy.Registry
	KPI        kpiSnapshotProvider
	RoomID     string
	CORSOrigin string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.CORSOrigin))

	player := s.Group("/api/player")
	player.POST("/register", h.register)
	player.POST("/action", h.action)
	player.POST("/status", h.status)

	s.GET("/api/feed", h.feed)
	s.GET("/api/catalog", h.catalog)
	s.GET("/ops/kpi", h.kpi)
}

type actionRequest struct {
	IdempotencyKey string          `json:"idempotency_key"`
	Action         economy.Payload `json:"action"`
}

func (h Handler) register(c context.Context, ctx *app.RequestContext) {
	var body auth.RegisterRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.RegisterUC.Execute(c, body)
	if err != nil {
		writeError(c, ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

// action answers 200 for both OK and REJECTED results; only malformed
// requests and store failures get an error status.
func (h Handler) action(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requireAuthenticatedPlayer(c, ctx)
	if err != nil {
		writeError(c, ctx, err)
		return
	}

	raw := ctx.Request.Body()
	if err := validateActionBody(raw); err != nil {
		var pe *payloadError
		if errors.As(err, &pe) {
			writeActionRejected(ctx, consts.StatusBadRequest, "invalid_action_payload", pe.Error())
			return
		}
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	var body actionRequest
	if err := json.Unmarshal(raw, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.ActionUC.Execute(c, action.Request{
		PlayerID:       playerID,
		IdempotencyKey: body.IdempotencyKey,
		Payload:        body.Action,
	})
	if err != nil {
		writeError(c, ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requireAuthenticatedPlayer(c, ctx)
	if err != nil {
		writeError(c, ctx, err)
		return
	}

	resp, err := h.StatusUC.Execute(c, status.Request{PlayerID: playerID})
	if err != nil {
		writeError(c, ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) feed(c context.Context, ctx *app.RequestContext) {
	roomID := strings.TrimSpace(string(ctx.Query("room_id")))
	if roomID == "" {
		roomID = h.roomID()
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	resp, err := h.FeedUC.Execute(c, feed.Request{
		RoomID:       roomID,
		PlayerID:     string(ctx.Query("player_id")),
		Limit:        limit,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(c, ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type catalogResponse struct {
	Resources map[string]string      `json:"resources"`
	Templates []economy.ItemTemplate `json:"templates"`
	Recipes   []economy.Recipe       `json:"recipes"`
	Crops     []economy.Crop         `json:"crops"`
	Foods     []economy.Food         `json:"foods"`
}

func (h Handler) catalog(_ context.Context, ctx *app.RequestContext) {
	if h.Catalog == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "catalog not configured")
		return
	}
	def := h.Catalog.Definition()
	ctx.JSON(consts.StatusOK, catalogResponse{
		Resources: def.Resources,
		Templates: def.Templates,
		Recipes:   def.Recipes,
		Crops:     def.Crops,
		Foods:     def.Foods,
	})
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func (h Handler) roomID() string {
	if h.RoomID != "" {
		return h.RoomID
	}
	return auth.DefaultRoomID
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

var ErrMissingPlayerIDHeader = errors.New("missing x-player-id header")
var ErrMissingPlayerKeyHeader = errors.New("missing x-player-key header")
var ErrMissingPlayerCredentials = errors.New("missing player credentials")

func (h Handler) requireAuthenticatedPlayer(c context.Context, ctx *app.RequestContext) (string, error) {
	playerID := strings.TrimSpace(string(ctx.GetHeader(playerIDHeader)))
	playerKey := strings.TrimSpace(string(ctx.GetHeader(playerKeyHeader)))
	if playerID == "" && playerKey == "" {
		return "", ErrMissingPlayerCredentials
	}
	if playerID == "" {
		return "", ErrMissingPlayerIDHeader
	}
	if playerKey == "" {
		return "", ErrMissingPlayerKeyHeader
	}
	if err := h.AuthUC.Execute(c, auth.VerifyRequest{
		PlayerID:  playerID,
		PlayerKey: playerKey,
	}); err != nil {
		return "", err
	}
	return playerID, nil
}
