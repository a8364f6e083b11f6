package action

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"hearthvale/internal/app/ports"
	"hearthvale/internal/app/txn"
	"hearthvale/internal/domain/economy"
)

var ErrInvalidRequest = errors.New("invalid action request")

type UseCase struct {
	TxManager   ports.TxManager
	Players     ports.PlayerRepository
	ActionRepo  ports.ActionExecutionRepository
	Feed        ports.FeedRepository
	Archive     ports.ArchiveLog
	Rooms       ports.RoomProvider
	Metrics     ports.ActionMetrics
	Catalog     *economy.Registry
	Logger      *slog.Logger
	Now         func() time.Time
	Rand        func() float64
	NewID       func() string
	NewFeedID   func() string
	MaxAttempts int
}

// Execute resolves one action for a player. Rejected actions come back as a
// REJECTED response with a nil error; only store failures are errors.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)
	if req.PlayerID == "" || strings.TrimSpace(req.Payload.Type) == "" || u.Catalog == nil {
		return Response{}, ErrInvalidRequest
	}
	now := u.now()

	act, err := economy.ParseAction(u.Catalog, req.Payload)
	if err != nil {
		var unknown *economy.UnknownActionError
		var invalid *economy.InvalidActionError
		if !errors.As(err, &unknown) && !errors.As(err, &invalid) {
			return Response{}, err
		}
		result := economy.NewActionResult()
		result.Fail(err.Error())
		u.afterReject(ctx, req, economy.ActionType(strings.ToUpper(req.Payload.Type)), result)
		return Response{ResultCode: ResultRejected, Result: result}, nil
	}

	var (
		result   economy.ActionResult
		replayed bool
		roomID   string
	)
	resolve := func(txCtx context.Context, current economy.Player, exists bool) (economy.Player, txn.Decision, error) {
		replayed = false
		if req.IdempotencyKey != "" && u.ActionRepo != nil {
			exec, err := u.ActionRepo.GetByIdempotencyKey(txCtx, req.PlayerID, req.IdempotencyKey)
			if err == nil && exec != nil {
				result = exec.Result
				replayed = true
				return current, txn.DecisionAbort, nil
			}
			if err != nil && !errors.Is(err, ports.ErrNotFound) {
				return current, txn.DecisionAbort, err
			}
		}
		if !exists {
			return current, txn.DecisionAbort, ports.ErrNotFound
		}
		roomID = current.RoomID
		world, err := u.Rooms.Snapshot(txCtx, current.RoomID)
		if err != nil {
			return current, txn.DecisionAbort, err
		}

		hc := u.newContext(current, world, act, now)
		runHandler(hc)
		result = hc.Result
		if !result.Success {
			return current, txn.DecisionAbort, nil
		}
		next := *hc.Player
		next.UpdatedAt = now
		return next, txn.DecisionCommit, nil
	}

	opts := []txn.Option{txn.WithTxManager(u.TxManager), txn.WithMaxAttempts(u.MaxAttempts)}
	if req.IdempotencyKey != "" && u.ActionRepo != nil {
		opts = append(opts, txn.OnCommit(func(txCtx context.Context) error {
			return u.ActionRepo.SaveExecution(txCtx, ports.ActionExecutionRecord{
				PlayerID:       req.PlayerID,
				IdempotencyKey: req.IdempotencyKey,
				ActionType:     string(act.Type()),
				Result:         result,
				AppliedAt:      now,
			})
		}))
	}

	outcome, err := txn.WithOptimisticTransaction(ctx, txn.Players(u.Players), req.PlayerID, resolve, opts...)
	u.recordRetries(outcome.Attempts)
	if err != nil {
		if u.Metrics != nil {
			if errors.Is(err, ports.ErrConflict) {
				u.Metrics.RecordConflict()
			} else {
				u.Metrics.RecordFailure()
			}
		}
		return Response{}, err
	}

	player := outcome.Value
	out := Response{
		Result:   result,
		Player:   &player,
		Replayed: replayed,
		Attempts: outcome.Attempts,
	}
	out.ResultCode = ResultRejected
	if result.Success {
		out.ResultCode = ResultOK
	}
	if replayed {
		return out, nil
	}
	if !result.Success {
		u.afterReject(ctx, req, act.Type(), result)
		return out, nil
	}
	u.afterCommit(ctx, req, roomID, act.Type(), result, outcome.Attempts, now)
	return out, nil
}

func (u UseCase) newContext(current economy.Player, world economy.WorldContext, act economy.Action, now time.Time) *HandlerContext {
	p := current.Clone()
	p.PruneBuffs(now)
	return &HandlerContext{
		Catalog: u.Catalog,
		Player:  &p,
		World:   world,
		Action:  act,
		Result:  economy.NewActionResult(),
		Now:     now,
		Rand:    u.rand(),
		NewID:   u.newID(),
	}
}

// runHandler prechecks and resolves hc. A failed result never carries deltas.
func runHandler(hc *HandlerContext) {
	spec, ok := actionRegistry()[hc.Action.Type()]
	switch {
	case !ok:
		hc.Fail("unsupported action " + string(hc.Action.Type()))
	case !hc.precheck(spec.Handler):
	default:
		spec.Handler.Resolve(hc)
	}
	if hc.Result.Success {
		return
	}
	reason := hc.Result.Message
	if reason == "" {
		reason = "nothing happened"
	}
	hc.Result = economy.NewActionResult()
	hc.Result.Fail(reason)
}

func (hc *HandlerContext) precheck(h ActionHandler) bool {
	check := h.Precheck(hc)
	if !check.Success {
		hc.Fail(check.Reason)
	}
	return check.Success
}

func (u UseCase) afterCommit(ctx context.Context, req Request, roomID string, t economy.ActionType, result economy.ActionResult, attempts int, now time.Time) {
	u.logger().InfoContext(ctx, "action resolved",
		"player_id", req.PlayerID,
		"room_id", roomID,
		"action", string(t),
		"utbytte", len(result.Utbytte),
		"attempts", attempts,
	)
	if u.Feed != nil {
		entry := ports.FeedEntry{
			ID:         u.feedID(),
			RoomID:     roomID,
			PlayerID:   req.PlayerID,
			ActionType: string(t),
			Message:    result.Message,
			Utbytte:    result.Utbytte,
			OccurredAt: now,
		}
		if err := u.Feed.Append(ctx, entry); err != nil {
			u.logger().WarnContext(ctx, "feed append failed", "player_id", req.PlayerID, "error", err)
		}
	}
	if u.Archive != nil {
		record := ports.ArchiveRecord{
			ID:         u.feedID(),
			RoomID:     roomID,
			PlayerID:   req.PlayerID,
			ActionType: string(t),
			Payload:    req.Payload,
			Result:     result,
			Attempts:   attempts,
			OccurredAt: now,
		}
		if err := u.Archive.Append(ctx, record); err != nil {
			u.logger().WarnContext(ctx, "archive append failed", "player_id", req.PlayerID, "error", err)
		}
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess(t)
	}
}

func (u UseCase) afterReject(ctx context.Context, req Request, t economy.ActionType, result economy.ActionResult) {
	u.logger().DebugContext(ctx, "action rejected",
		"player_id", req.PlayerID,
		"action", string(t),
		"reason", result.Message,
	)
	if u.Metrics != nil {
		u.Metrics.RecordRejected(t)
	}
}

func (u UseCase) recordRetries(attempts int) {
	if u.Metrics == nil {
		return
	}
	for i := 1; i < attempts; i++ {
		u.Metrics.RecordRetry()
	}
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u UseCase) rand() func() float64 {
	if u.Rand != nil {
		return u.Rand
	}
	return rand.Float64
}

func (u UseCase) newID() func() string {
	if u.NewID != nil {
		return u.NewID
	}
	return uuid.NewString
}

func (u UseCase) feedID() string {
	if u.NewFeedID != nil {
		return u.NewFeedID()
	}
	return ulid.Make().String()
}

func (u UseCase) logger() *slog.Logger {
	if u.Logger != nil {
		return u.Logger
	}
	return slog.Default()
}
