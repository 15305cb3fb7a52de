//go:build integration
// +build integration

package integration

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	wsmsg "github.com/gokatarajesh/trivia-arena/pkg/http/ws"
)

func TestWebSocketAuthentication(t *testing.T) {
	baseWS := envOrDefault("INTEGRATION_WS_URL", "ws://localhost:8080/ws/game")

	// Try to connect without token
	u, err := url.Parse(baseWS)
	if err != nil {
		t.Fatalf("invalid WS url: %v", err)
	}

	_, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err == nil {
		t.Fatal("expected connection to fail without token")
	}
	if resp != nil && resp.StatusCode != 401 {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	// Try with invalid token
	guest := createGuest(t, envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080"), "TestGuest")
	invalidToken := "invalid.token.here"

	u, err = url.Parse(baseWS)
	if err != nil {
		t.Fatalf("invalid WS url: %v", err)
	}
	q := u.Query()
	q.Set("token", invalidToken)
	u.RawQuery = q.Encode()

	_, resp, err = websocket.DefaultDialer.Dial(u.String(), nil)
	if err == nil {
		t.Fatal("expected connection to fail with invalid token")
	}
	if resp != nil && resp.StatusCode != 401 {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	// Connect with valid token
	conn := dialGameWS(t, baseWS, guest.Token)
	defer conn.Close()

	// Connection should succeed
	if conn == nil {
		t.Fatal("connection should succeed with valid token")
	}
}

func TestUnknownMessageType(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
	baseWS := envOrDefault("INTEGRATION_WS_URL", "ws://localhost:8080/ws/game")

	guest := createGuest(t, baseURL, "TestGuest")
	conn := dialGameWS(t, baseWS, guest.Token)
	defer conn.Close()

	msg := wsmsg.Message{
		Type:    "definitely_not_a_thing",
		Payload: json.RawMessage(`{}`),
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("failed to send message: %v", err)
	}

	errMsg := waitForMessage(t, conn, wsmsg.TypeError, 5*time.Second)
	var payload wsmsg.ErrorPayload
	if err := json.Unmarshal(errMsg.Payload, &payload); err != nil {
		t.Fatalf("decode error payload failed: %v", err)
	}
	if payload.Code != "unknown_message_type" {
		t.Fatalf("expected error code 'unknown_message_type', got %q", payload.Code)
	}
}

func TestInvalidPayload(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
	baseWS := envOrDefault("INTEGRATION_WS_URL", "ws://localhost:8080/ws/game")

	guest := createGuest(t, baseURL, "TestGuest")
	conn := dialGameWS(t, baseWS, guest.Token)
	defer conn.Close()

	// An array where an object is expected fails to decode.
	msg := wsmsg.Message{
		Type:    wsmsg.TypeSelectDifficulty,
		Payload: json.RawMessage(`[1,2,3]`),
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("failed to send message: %v", err)
	}

	errMsg := waitForMessage(t, conn, wsmsg.TypeError, 5*time.Second)
	var payload wsmsg.ErrorPayload
	if err := json.Unmarshal(errMsg.Payload, &payload); err != nil {
		t.Fatalf("decode error payload failed: %v", err)
	}
	if payload.Code != "invalid_payload" {
		t.Fatalf("expected error code 'invalid_payload', got %q", payload.Code)
	}
}

func TestEventInWrongPhaseIsIgnored(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
	baseWS := envOrDefault("INTEGRATION_WS_URL", "ws://localhost:8080/ws/game")

	guest := createGuest(t, baseURL, "TestGuest")
	conn := dialGameWS(t, baseWS, guest.Token)
	defer conn.Close()

	state := waitForGameState(t, conn, 5*time.Second)
	if state.Phase != "start" {
		t.Fatalf("expected start phase on connect, got %q", state.Phase)
	}

	// Answering before a game exists transitions nowhere and raises no error.
	sendEvent(t, conn, wsmsg.TypeSubmitAnswer, wsmsg.SubmitAnswerPayload{Answer: "whatever"})
	state = waitForGameState(t, conn, 5*time.Second)
	if state.Phase != "start" {
		t.Fatalf("expected state to stay in start phase, got %q", state.Phase)
	}
	if state.Score != 0 {
		t.Fatalf("expected untouched score, got %d", state.Score)
	}
}

func TestPingPong(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
	baseWS := envOrDefault("INTEGRATION_WS_URL", "ws://localhost:8080/ws/game")

	guest := createGuest(t, baseURL, "TestGuest")
	conn := dialGameWS(t, baseWS, guest.Token)
	defer conn.Close()

	sendEvent(t, conn, wsmsg.TypePing, nil)
	waitForMessage(t, conn, wsmsg.TypePong, 5*time.Second)
}
