//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	wsmsg "github.com/gokatarajesh/trivia-arena/pkg/http/ws"
)

type guestInfo struct {
	ID          string
	DisplayName string
	Token       string
}

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func createGuest(t *testing.T, baseURL, displayName string) guestInfo {
	t.Helper()

	payload := map[string]string{
		"display_name": fmt.Sprintf("%s-%d", displayName, time.Now().UnixNano()),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal guest payload: %v", err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/auth/guest", baseURL), "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("create guest request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected guest response status: %d", resp.StatusCode)
	}

	var out struct {
		PlayerID    string `json:"player_id"`
		DisplayName string `json:"display_name"`
		Token       string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode guest response failed: %v", err)
	}

	if out.Token == "" {
		t.Fatalf("empty token in guest response")
	}

	return guestInfo{
		ID:          out.PlayerID,
		DisplayName: out.DisplayName,
		Token:       out.Token,
	}
}

func dialGameWS(t *testing.T, wsBase, token string) *websocket.Conn {
	t.Helper()

	u, err := url.Parse(wsBase)
	if err != nil {
		t.Fatalf("invalid WS url: %v", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("websocket dial failed: %v", err)
	}
	return conn
}

func sendEvent(t *testing.T, conn *websocket.Conn, msgType string, payload interface{}) {
	t.Helper()

	raw := json.RawMessage(`{}`)
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal %s payload: %v", msgType, err)
		}
		raw = body
	}

	msg := wsmsg.Message{Type: msgType, Payload: raw}
	conn.SetWriteDeadline(time.Now().Add(3 * time.Second))
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("failed to send %s: %v", msgType, err)
	}
}

// waitForMessage reads until a message of the wanted type arrives, skipping
// everything else (broadcast best_scores can interleave with state updates).
func waitForMessage(t *testing.T, conn *websocket.Conn, msgType string, timeout time.Duration) wsmsg.Message {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn.SetReadDeadline(time.Now().Add(timeout))
		var msg wsmsg.Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read ws message failed: %v", err)
		}
		if msg.Type == msgType {
			return msg
		}
	}
	t.Fatalf("timeout waiting for %s", msgType)
	return wsmsg.Message{}
}

func waitForGameState(t *testing.T, conn *websocket.Conn, timeout time.Duration) wsmsg.GameStatePayload {
	t.Helper()

	msg := waitForMessage(t, conn, wsmsg.TypeGameState, timeout)
	var state wsmsg.GameStatePayload
	if err := json.Unmarshal(msg.Payload, &state); err != nil {
		t.Fatalf("decode game_state payload: %v", err)
	}
	return state
}
