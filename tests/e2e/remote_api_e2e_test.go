//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

type credentials struct {
	PlayerID  string `json:"player_id"`
	PlayerKey string `json:"player_key"`
	RoomID    string `json:"room_id"`
}

func TestRemoteAPI_MainEndpoints(t *testing.T) {
	baseURL := strings.TrimRight(envOr("E2E_BASE_URL", "http://localhost:8080"), "/")
	client := &http.Client{Timeout: 20 * time.Second}

	t.Run("action requires player headers", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/player/action", credentials{}, map[string]any{})
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", status, string(body))
		}
	})

	t.Run("catalog", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodGet, baseURL+"/api/catalog", credentials{}, nil)
		if status != http.StatusOK {
			t.Fatalf("catalog status=%d body=%s", status, string(body))
		}
		var catalog map[string]any
		if err := json.Unmarshal(body, &catalog); err != nil {
			t.Fatalf("unmarshal catalog: %v body=%s", err, string(body))
		}
		if len(asSlice(catalog["recipes"])) == 0 {
			t.Fatalf("expected recipes in catalog")
		}
	})

	idempotencyKey := "remote-e2e-" + time.Now().UTC().Format("20060102150405")

	t.Run("register action status feed ops", func(t *testing.T) {
		status, regBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/player/register", credentials{}, map[string]any{"name": "e2e"})
		if status != http.StatusCreated {
			t.Fatalf("register status=%d body=%s", status, string(regBody))
		}
		var creds credentials
		if err := json.Unmarshal(regBody, &creds); err != nil {
			t.Fatalf("unmarshal register: %v body=%s", err, string(regBody))
		}

		actionReq := map[string]any{
			"idempotency_key": idempotencyKey,
			"action": map[string]any{
				"type":        "WORK",
				"performance": 0.8,
			},
		}
		status, firstBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/player/action", creds, actionReq)
		if status != http.StatusOK {
			t.Fatalf("first action status=%d body=%s", status, string(firstBody))
		}
		var first map[string]any
		if err := json.Unmarshal(firstBody, &first); err != nil {
			t.Fatalf("unmarshal first action: %v body=%s", err, string(firstBody))
		}
		if first["result_code"] != "OK" {
			t.Fatalf("expected OK result, got %s", string(firstBody))
		}

		status, secondBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/player/action", creds, actionReq)
		if status != http.StatusOK {
			t.Fatalf("second action status=%d body=%s", status, string(secondBody))
		}
		var second map[string]any
		if err := json.Unmarshal(secondBody, &second); err != nil {
			t.Fatalf("unmarshal second action: %v body=%s", err, string(secondBody))
		}
		if second["replayed"] != true {
			t.Fatalf("expected replayed response, got %s", string(secondBody))
		}

		status, statusBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/player/status", creds, map[string]any{})
		if status != http.StatusOK {
			t.Fatalf("status status=%d body=%s", status, string(statusBody))
		}
		var st map[string]any
		if err := json.Unmarshal(statusBody, &st); err != nil {
			t.Fatalf("unmarshal status: %v body=%s", err, string(statusBody))
		}
		if _, ok := st["time_of_day"]; !ok {
			t.Fatalf("expected time_of_day in status response")
		}

		status, feedBody := mustJSON(t, client, http.MethodGet, baseURL+"/api/feed?player_id="+creds.PlayerID+"&room_id="+creds.RoomID, credentials{}, nil)
		if status != http.StatusOK {
			t.Fatalf("feed status=%d body=%s", status, string(feedBody))
		}
		var fd map[string]any
		if err := json.Unmarshal(feedBody, &fd); err != nil {
			t.Fatalf("unmarshal feed: %v body=%s", err, string(feedBody))
		}
		if len(asSlice(fd["entries"])) == 0 {
			t.Fatalf("expected feed entries for the player")
		}

		status, kpiBody := mustJSON(t, client, http.MethodGet, baseURL+"/ops/kpi", credentials{}, nil)
		if status != http.StatusOK {
			t.Fatalf("kpi status=%d body=%s", status, string(kpiBody))
		}
		var kpi map[string]any
		if err := json.Unmarshal(kpiBody, &kpi); err != nil {
			t.Fatalf("unmarshal kpi: %v body=%s", err, string(kpiBody))
		}
		if _, ok := kpi["action_total"]; !ok {
			t.Fatalf("expected action_total in kpi response")
		}
	})
}

func mustJSON(t *testing.T, client *http.Client, method, url string, creds credentials, body map[string]any) (int, []byte) {
	t.Helper()
	status, respBody, err := doRequest(client, method, url, creds, body)
	if err != nil {
		t.Fatalf("%s %s request failed: %v", method, url, err)
	}
	return status, respBody
}

func doRequest(client *http.Client, method, url string, creds credentials, body map[string]any) (int, []byte, error) {
	var payloadBytes []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		payloadBytes = b
	}

	var lastStatus int
	var lastBody []byte
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var payload io.Reader
		if len(payloadBytes) > 0 {
			payload = bytes.NewReader(payloadBytes)
		}
		req, err := http.NewRequest(method, url, payload)
		if err != nil {
			return 0, nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if creds.PlayerID != "" {
			req.Header.Set("X-Player-ID", creds.PlayerID)
			req.Header.Set("X-Player-Key", creds.PlayerKey)
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		lastStatus, lastBody, lastErr = resp.StatusCode, respBody, nil
		if resp.StatusCode >= 500 {
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		return resp.StatusCode, respBody, nil
	}
	if lastErr != nil {
		return 0, nil, lastErr
	}
	return lastStatus, lastBody, nil
}

func envOr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}
