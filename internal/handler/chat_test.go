package handler

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/whoknows1409/Finance-Tracker-AI/internal/advisor"
	"github.com/whoknows1409/Finance-Tracker-AI/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type fakeGen struct {
	reply string
	err   error
	last  string
}

func (f *fakeGen) GenerateText(_ context.Context, prompt string) (string, error) {
	f.last = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newChatRouter(t *testing.T, gen advisor.Generator) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	h := NewChatHandler(db, advisor.New(gen, zerolog.Nop()))
	r := newTestEngine()
	r.POST("/api/chat", h.Chat)
	r.GET("/api/chat/history/:session_id", h.GetHistory)
	return r, db
}

type chatResp struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

func TestChatAssignsFreshSessions(t *testing.T) {
	r, _ := newChatRouter(t, &fakeGen{reply: "hello"})

	var r1, r2 chatResp
	doJSON(t, r, "POST", "/api/chat", map[string]any{"message": "hi"}, 200, &r1)
	doJSON(t, r, "POST", "/api/chat", map[string]any{"message": "hi again"}, 200, &r2)

	if r1.SessionID == "" || r2.SessionID == "" {
		t.Fatal("missing session id")
	}
	if r1.SessionID == r2.SessionID {
		t.Fatalf("both calls got session %q, want distinct sessions", r1.SessionID)
	}
	if r1.Response != "hello" {
		t.Fatalf("response=%q", r1.Response)
	}
}

func TestChatReusesSuppliedSession(t *testing.T) {
	r, db := newChatRouter(t, &fakeGen{reply: "ok"})

	var r1 chatResp
	doJSON(t, r, "POST", "/api/chat", map[string]any{"message": "first"}, 200, &r1)

	var r2 chatResp
	doJSON(t, r, "POST", "/api/chat", map[string]any{
		"message": "second", "session_id": r1.SessionID,
	}, 200, &r2)

	if r2.SessionID != r1.SessionID {
		t.Fatalf("session_id=%q want %q", r2.SessionID, r1.SessionID)
	}

	var count int64
	db.Model(&models.ChatMessage{}).Where("session_id = ?", r1.SessionID).Count(&count)
	if count != 2 {
		t.Fatalf("persisted %d messages, want 2", count)
	}
}

func TestChatDegradedWithoutCredential(t *testing.T) {
	r, db := newChatRouter(t, nil)

	var resp chatResp
	doJSON(t, r, "POST", "/api/chat", map[string]any{"message": "hi"}, 200, &resp)

	if resp.Response != advisor.ChatUnconfigured {
		t.Fatalf("response=%q want the unconfigured warning", resp.Response)
	}
	if resp.SessionID != "" {
		t.Fatalf("degraded chat assigned session %q", resp.SessionID)
	}

	var count int64
	db.Model(&models.ChatMessage{}).Count(&count)
	if count != 0 {
		t.Fatalf("degraded chat persisted %d messages", count)
	}
}

func TestChatUpstreamFailureIs502(t *testing.T) {
	r, db := newChatRouter(t, &fakeGen{err: errors.New("quota exceeded")})

	doJSON(t, r, "POST", "/api/chat", map[string]any{"message": "hi"}, 502, nil)

	var count int64
	db.Model(&models.ChatMessage{}).Count(&count)
	if count != 0 {
		t.Fatalf("failed chat persisted %d messages", count)
	}
}

func TestHistoryCappedAtMaxSize(t *testing.T) {
	r, db := newChatRouter(t, nil)

	session := uuid.NewString()
	now := time.Now().UTC()
	rows := make([]models.ChatMessage, 0, maxHistorySize+1)
	for i := 0; i <= maxHistorySize; i++ {
		rows = append(rows, models.ChatMessage{
			ID:        uuid.NewString(),
			SessionID: session,
			Message:   strconv.Itoa(i),
			Response:  "r",
			Timestamp: now.Add(time.Duration(i) * time.Second),
		})
	}
	if err := db.CreateInBatches(rows, 50).Error; err != nil {
		t.Fatalf("seed messages: %v", err)
	}

	var msgs []models.ChatMessage
	doJSON(t, r, "GET", "/api/chat/history/"+session, nil, 200, &msgs)

	if len(msgs) != maxHistorySize {
		t.Fatalf("len=%d want cap %d", len(msgs), maxHistorySize)
	}
	// oldest-first ordering means the cap keeps the earliest messages
	if msgs[0].Message != "0" {
		t.Fatalf("first message=%q want %q", msgs[0].Message, "0")
	}
}

func TestHistoryOrderedAndIsolatedPerSession(t *testing.T) {
	r, db := newChatRouter(t, &fakeGen{reply: "x"})

	now := time.Now().UTC()
	mine, other := uuid.NewString(), uuid.NewString()
	for i, m := range []struct {
		session string
		msg     string
	}{
		{mine, "one"}, {other, "noise"}, {mine, "two"}, {mine, "three"},
	} {
		db.Create(&models.ChatMessage{
			ID:        uuid.NewString(),
			SessionID: m.session,
			Message:   m.msg,
			Response:  "r",
			Timestamp: now.Add(time.Duration(i) * time.Second),
		})
	}

	var msgs []models.ChatMessage
	doJSON(t, r, "GET", "/api/chat/history/"+mine, nil, 200, &msgs)

	if len(msgs) != 3 {
		t.Fatalf("len=%d want 3", len(msgs))
	}
	want := []string{"one", "two", "three"}
	for i, m := range msgs {
		if m.Message != want[i] {
			t.Fatalf("msgs[%d]=%q want %q", i, m.Message, want[i])
		}
		if m.SessionID != mine {
			t.Fatalf("foreign session message leaked: %+v", m)
		}
	}
}
