package action

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"golang.org/x/sync/errgroup"

	"hearthvale/internal/app/ports"
	"hearthvale/internal/app/ports/mocks"
	"hearthvale/internal/domain/economy"
)

func TestUseCase_WorkScenarioWithLuckyDrop(t *testing.T) {
	f := newFixture(t, newTestPlayer("p1"))
	f.uc.Rand = func() float64 { return 0.05 }

	out := f.run(t, "p1", economy.Payload{Type: "WORK", Performance: perf(0.8)})
	if out.ResultCode != ResultOK || !out.Result.Success {
		t.Fatalf("expected success, got %+v", out.Result)
	}
	want := []economy.YieldEntry{
		{Resource: "grain", Amount: 3},
		{Resource: "grain", Amount: 1, Bonus: true},
	}
	if len(out.Result.Utbytte) != len(want) {
		t.Fatalf("utbytte mismatch: got=%+v want=%+v", out.Result.Utbytte, want)
	}
	for i := range want {
		if out.Result.Utbytte[i] != want[i] {
			t.Fatalf("utbytte[%d] mismatch: got=%+v want=%+v", i, out.Result.Utbytte[i], want[i])
		}
	}

	stored := f.repo.get("p1")
	if stored.Resource("grain") != 4 || stored.Status.Stamina != 90 || stored.Version != 2 {
		t.Fatalf("unexpected stored player: grain=%v stamina=%d version=%d", stored.Resource("grain"), stored.Status.Stamina, stored.Version)
	}
	if stored.Skills[economy.SkillFarming].XP != 10 {
		t.Fatalf("xp mismatch: got=%d want=10", stored.Skills[economy.SkillFarming].XP)
	}
}

func TestUseCase_WorkWithoutLuckyDrop(t *testing.T) {
	f := newFixture(t, newTestPlayer("p1"))

	out := f.run(t, "p1", economy.Payload{Type: "WORK", Performance: perf(0.8)})
	if len(out.Result.Utbytte) != 1 || out.Result.Utbytte[0].Amount != 3 || out.Result.Utbytte[0].Bonus {
		t.Fatalf("unexpected utbytte: %+v", out.Result.Utbytte)
	}
	if out.Result.Message != "you gathered 3 korn" {
		t.Fatalf("message mismatch: %q", out.Result.Message)
	}
}

func TestUseCase_RejectionWritesNothing(t *testing.T) {
	p := newTestPlayer("p1")
	p.Status.Stamina = 4
	f := newFixture(t, p)

	out := f.run(t, "p1", economy.Payload{Type: "WORK"})
	if out.ResultCode != ResultRejected || out.Result.Success {
		t.Fatalf("expected rejection, got %+v", out)
	}
	if out.Result.Message != "not enough stamina: need 10, have 4" {
		t.Fatalf("reason mismatch: %q", out.Result.Message)
	}
	if len(out.Result.Utbytte) != 0 || f.repo.saves != 0 || len(f.feed.entries) != 0 {
		t.Fatalf("rejection leaked side effects: result=%+v saves=%d feed=%d", out.Result, f.repo.saves, len(f.feed.entries))
	}
	if f.metrics.rejected != 1 || f.metrics.success != 0 {
		t.Fatalf("metrics mismatch: %+v", f.metrics)
	}
}

func TestUseCase_UnknownActionIsRejectedWithSuggestion(t *testing.T) {
	f := newFixture(t, newTestPlayer("p1"))

	out := f.run(t, "p1", economy.Payload{Type: "HARVST", LocationID: "field_1"})
	if out.ResultCode != ResultRejected {
		t.Fatalf("expected rejection, got %s", out.ResultCode)
	}
	if !strings.Contains(out.Result.Message, "HARVEST") {
		t.Fatalf("expected suggestion in message, got %q", out.Result.Message)
	}
	if f.repo.saves != 0 || f.metrics.rejected != 1 {
		t.Fatalf("unexpected side effects: saves=%d rejected=%d", f.repo.saves, f.metrics.rejected)
	}
}

func TestUseCase_InvalidRequest(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Execute(context.Background(), Request{PlayerID: "  ", Payload: economy.Payload{Type: "WORK"}})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUseCase_MissingPlayer(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Execute(context.Background(), Request{PlayerID: "ghost", Payload: economy.Payload{Type: "WORK"}})
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if f.metrics.failure != 1 {
		t.Fatalf("failure not recorded: %+v", f.metrics)
	}
}

func TestUseCase_RoomProviderErrorPropagates(t *testing.T) {
	f := newFixture(t, newTestPlayer("p1"))
	boom := errors.New("room offline")
	f.uc.Rooms = stubRooms{err: boom}

	_, err := f.uc.Execute(context.Background(), Request{PlayerID: "p1", Payload: economy.Payload{Type: "WORK"}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected room error, got %v", err)
	}
	if f.repo.saves != 0 {
		t.Fatalf("store written on failure")
	}
}

func TestUseCase_IdempotentReplay(t *testing.T) {
	f := newFixture(t, newTestPlayer("p1"))
	req := Request{PlayerID: "p1", IdempotencyKey: "k1", Payload: economy.Payload{Type: "WORK"}}

	first, err := f.uc.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("first execute: %v", err)
	}
	second, err := f.uc.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("second execute: %v", err)
	}
	if !second.Replayed || second.Result.Message != first.Result.Message {
		t.Fatalf("expected replay of %+v, got %+v", first.Result, second)
	}
	if f.repo.saves != 1 || len(f.feed.entries) != 1 || f.metrics.success != 1 {
		t.Fatalf("replay repeated side effects: saves=%d feed=%d success=%d", f.repo.saves, len(f.feed.entries), f.metrics.success)
	}
}

func TestUseCase_InterleavedHarvestAwardsOnce(t *testing.T) {
	p := newTestPlayer("p1")
	equip(&p, economy.SlotScythe, economy.EquipmentItem{ID: "scythe", Durability: 50, MaxDurability: 50})
	p.ActiveProcesses = []economy.ActiveProcess{{
		ID:         "crop-1",
		Type:       economy.ProcessCrop,
		ItemID:     "barley",
		LocationID: "field_1",
		StartedAt:  testNow.Add(-4 * time.Hour),
		Duration:   3 * time.Hour,
		ReadyAt:    testNow.Add(-time.Hour),
	}}
	f := newFixture(t, p)
	harvest := economy.Payload{Type: "HARVEST", LocationID: "field_1"}

	var competing Response
	f.repo.beforeSave = func(*stubPlayerRepo) {
		competing = f.run(t, "p1", harvest)
	}
	out := f.run(t, "p1", harvest)

	if competing.ResultCode != ResultOK {
		t.Fatalf("competing harvest should win, got %+v", competing.Result)
	}
	if out.ResultCode != ResultRejected || out.Attempts != 2 {
		t.Fatalf("retried harvest should fail validation, got code=%s attempts=%d result=%+v", out.ResultCode, out.Attempts, out.Result)
	}
	stored := f.repo.get("p1")
	if stored.Resource("grain") != 9 || len(stored.ActiveProcesses) != 0 {
		t.Fatalf("expected a single award of 9 grain, got grain=%v processes=%d", stored.Resource("grain"), len(stored.ActiveProcesses))
	}
	if f.metrics.retry != 1 || f.metrics.success != 1 || f.metrics.rejected != 1 {
		t.Fatalf("metrics mismatch: %+v", f.metrics)
	}
}

func TestUseCase_SideEffectsOnceAfterRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := mocks.NewMockFeedRepository(ctrl)
	archive := mocks.NewMockArchiveLog(ctrl)

	f := newFixture(t, newTestPlayer("p1"))
	f.uc.Feed = feed
	f.uc.Archive = archive
	f.repo.beforeSave = func(r *stubPlayerRepo) {
		competitor := r.byID["p1"]
		competitor.Version++
		r.byID["p1"] = competitor
	}

	feed.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, entry ports.FeedEntry) error {
		if entry.PlayerID != "p1" || entry.RoomID != "room-1" || entry.ActionType != "WORK" {
			t.Fatalf("unexpected feed entry: %+v", entry)
		}
		return nil
	}).Times(1)
	archive.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, record ports.ArchiveRecord) error {
		if record.Attempts != 2 || !record.Result.Success {
			t.Fatalf("unexpected archive record: %+v", record)
		}
		return nil
	}).Times(1)

	out := f.run(t, "p1", economy.Payload{Type: "WORK"})
	if out.ResultCode != ResultOK || out.Attempts != 2 {
		t.Fatalf("expected success on second attempt, got code=%s attempts=%d", out.ResultCode, out.Attempts)
	}
}

func TestUseCase_SideEffectFailureDoesNotFailAction(t *testing.T) {
	ctrl := gomock.NewController(t)
	archive := mocks.NewMockArchiveLog(ctrl)
	archive.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("disk full")).Times(1)

	f := newFixture(t, newTestPlayer("p1"))
	f.uc.Archive = archive

	out := f.run(t, "p1", economy.Payload{Type: "WORK"})
	if out.ResultCode != ResultOK {
		t.Fatalf("archive failure leaked into result: %+v", out)
	}
}

func TestUseCase_ConflictsExhausted(t *testing.T) {
	f := newFixture(t, newTestPlayer("p1"))
	f.uc.MaxAttempts = 2
	var racer func(r *stubPlayerRepo)
	racer = func(r *stubPlayerRepo) {
		competitor := r.byID["p1"]
		competitor.Version++
		r.byID["p1"] = competitor
		r.beforeSave = racer
	}
	f.repo.beforeSave = racer

	_, err := f.uc.Execute(context.Background(), Request{PlayerID: "p1", Payload: economy.Payload{Type: "WORK"}})
	if !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if f.metrics.conflict != 1 || f.metrics.retry != 1 {
		t.Fatalf("metrics mismatch: %+v", f.metrics)
	}
}

func TestUseCase_ConcurrentHuntsSerializeOnCooldown(t *testing.T) {
	p := newTestPlayer("p1")
	equip(&p, economy.SlotBow, economy.EquipmentItem{ID: "bow", Durability: 30, MaxDurability: 30})
	f := newFixture(t, p)
	f.uc.TxManager = stubTxManager{mu: &sync.Mutex{}}

	var (
		mu    sync.Mutex
		codes = map[ResultCode]int{}
	)
	var g errgroup.Group
	for i := 0; i < 5; i++ {
		g.Go(func() error {
			out, err := f.uc.Execute(context.Background(), Request{PlayerID: "p1", Payload: economy.Payload{Type: "HUNT"}})
			if err != nil {
				return err
			}
			mu.Lock()
			codes[out.ResultCode]++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent execute: %v", err)
	}
	if codes[ResultOK] != 1 || codes[ResultRejected] != 4 {
		t.Fatalf("expected exactly one hunt, got %v", codes)
	}
	stored := f.repo.get("p1")
	if got := stored.Resource("meat"); got != 2 {
		t.Fatalf("meat mismatch: got=%v want=2", got)
	}
}
