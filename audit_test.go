package authcore

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) Emit(context.Context, AuditEvent) {
	s.count.Add(1)
}

func (s *countingSink) Count() int64 {
	return s.count.Load()
}

type captureSink struct {
	events chan AuditEvent
}

func newCaptureSink(buffer int) *captureSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &captureSink{
		events: make(chan AuditEvent, buffer),
	}
}

func (s *captureSink) Emit(ctx context.Context, event AuditEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

type gateSink struct {
	gate chan struct{}
}

func newGateSink() *gateSink {
	return &gateSink{
		gate: make(chan struct{}),
	}
}

func (s *gateSink) Emit(context.Context, AuditEvent) {
	<-s.gate
}

func TestAuditDisabledNoSinkCalls(t *testing.T) {
	ft := newFakeTransport()
	ft.handle(DefaultConfig().Endpoints.Login, func(any) (any, error) {
		return testLoginData(), nil
	})

	cfg := DefaultConfig()
	cfg.Audit.Enabled = false

	m, err := New().WithConfig(cfg).WithTransport(ft).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(m.Close)

	_ = m.Login(context.Background(), "alice@example.com", "secret")
	time.Sleep(30 * time.Millisecond)

	if m.audit != nil {
		t.Fatal("expected no dispatcher when audit is disabled")
	}
}

func TestAuditEnabledSinkReceivesEventWithFields(t *testing.T) {
	ft := newFakeTransport()
	ft.handle(DefaultConfig().Endpoints.Login, func(any) (any, error) {
		return testLoginData(), nil
	})

	sink := newCaptureSink(8)
	m, err := New().WithTransport(ft).WithAuditSink(sink).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(m.Close)

	ctx := WithDeviceID(WithAppVersion(context.Background(), "3.2.1"), "device-44")
	if err := m.Login(ctx, "alice@example.com", "super-secret-password"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	select {
	case ev := <-sink.events:
		if ev.EventType != auditEventLoginSuccess {
			t.Fatalf("event type = %q", ev.EventType)
		}
		if ev.DeviceID != "device-44" {
			t.Fatalf("expected device device-44, got %q", ev.DeviceID)
		}
		if ev.AppVersion != "3.2.1" {
			t.Fatalf("expected app version 3.2.1, got %q", ev.AppVersion)
		}
		if ev.UserID != "u1" {
			t.Fatalf("expected user u1, got %q", ev.UserID)
		}
		for _, v := range ev.Metadata {
			if v == "super-secret-password" {
				t.Fatal("sensitive password leaked in metadata")
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected audit event to be received")
	}
}

func TestAuditBufferFullDropIfFullTrueDoesNotBlock(t *testing.T) {
	sink := newGateSink()
	dispatcher := newAuditDispatcher(AuditConfig{
		Enabled:    true,
		BufferSize: 1,
		DropIfFull: true,
	}, sink)
	defer func() {
		close(sink.gate)
		dispatcher.Close()
	}()

	dispatcher.Emit(context.Background(), AuditEvent{EventType: "e1"})
	dispatcher.Emit(context.Background(), AuditEvent{EventType: "e2"})

	start := time.Now()
	dispatcher.Emit(context.Background(), AuditEvent{EventType: "e3"})
	if time.Since(start) > 100*time.Millisecond {
		t.Fatal("expected non-blocking emit when DropIfFull is true")
	}
	if dispatcher.Dropped() == 0 {
		t.Fatal("expected dropped counter to increment when queue is full")
	}
}

func TestAuditBufferFullDropIfFullFalseBlocksUntilSpace(t *testing.T) {
	sink := newGateSink()
	dispatcher := newAuditDispatcher(AuditConfig{
		Enabled:    true,
		BufferSize: 1,
		DropIfFull: false,
	}, sink)
	defer func() {
		close(sink.gate)
		dispatcher.Close()
	}()

	dispatcher.Emit(context.Background(), AuditEvent{EventType: "e1"})
	dispatcher.Emit(context.Background(), AuditEvent{EventType: "e2"})

	done := make(chan struct{})
	go func() {
		dispatcher.Emit(context.Background(), AuditEvent{EventType: "e3"})
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("expected emit to block while buffer is full")
	case <-time.After(150 * time.Millisecond):
	}

	sink.gate <- struct{}{}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected blocked emit to proceed after space is available")
	}
}

func TestAuditJSONWriterSinkWritesJSONLines(t *testing.T) {
	var buf syncBuffer
	sink := NewJSONWriterSink(&buf)
	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: auditEventLoginSuccess,
		UserID:    "u1",
		DeviceID:  "device-1",
		Success:   true,
	}
	sink.Emit(context.Background(), event)

	if !buf.Contains("login_success") {
		t.Fatal("expected JSON log line to contain event type")
	}
	if !buf.Contains("\"user_id\":\"u1\"") {
		t.Fatal("expected JSON log line to contain user id")
	}
}

func TestAuditDispatcherStampsContextAndTimestamp(t *testing.T) {
	sink := newCaptureSink(4)
	dispatcher := newAuditDispatcher(AuditConfig{
		Enabled:    true,
		BufferSize: 4,
		DropIfFull: true,
	}, sink)
	defer dispatcher.Close()

	ctx := WithDeviceID(WithAppVersion(context.Background(), "9.9.9"), "device-77")
	dispatcher.Emit(ctx, AuditEvent{EventType: "e1"})

	select {
	case ev := <-sink.events:
		if ev.DeviceID != "device-77" {
			t.Fatalf("device id = %q", ev.DeviceID)
		}
		if ev.AppVersion != "9.9.9" {
			t.Fatalf("app version = %q", ev.AppVersion)
		}
		if ev.Timestamp.IsZero() {
			t.Fatal("expected the dispatcher to fill a zero timestamp")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected event to be delivered")
	}

	// Explicit fields win over the context.
	dispatcher.Emit(ctx, AuditEvent{EventType: "e2", DeviceID: "device-explicit"})
	select {
	case ev := <-sink.events:
		if ev.DeviceID != "device-explicit" {
			t.Fatalf("device id = %q, want explicit value preserved", ev.DeviceID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected event to be delivered")
	}
}

func TestAuditDispatcherCloseIdempotentAndEmitAfterCloseSafe(t *testing.T) {
	dispatcher := newAuditDispatcher(AuditConfig{
		Enabled:    true,
		BufferSize: 4,
		DropIfFull: true,
	}, &countingSink{})

	dispatcher.Emit(context.Background(), AuditEvent{EventType: "e1"})
	dispatcher.Close()
	dispatcher.Close()
	dispatcher.Emit(context.Background(), AuditEvent{EventType: "e2"})
}

func TestAuditNoSecretsInEvents(t *testing.T) {
	ft := newFakeTransport()
	ft.handle(DefaultConfig().Endpoints.Login, func(any) (any, error) {
		return testLoginData(), nil
	})

	sink := newCaptureSink(32)
	m, err := New().WithTransport(ft).WithAuditSink(sink).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(m.Close)

	sensitivePassword := "correct-password-123"
	ctx := context.Background()
	if err := m.Login(ctx, "alice@example.com", sensitivePassword); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := m.Logout(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	secretNeedles := []string{
		sensitivePassword,
		"access-token-1",
		"refresh-token-1",
	}

	events := make([]AuditEvent, 0, 8)
	timeout := time.After(2 * time.Second)
collectLoop:
	for len(events) < 2 {
		select {
		case ev := <-sink.events:
			events = append(events, ev)
		case <-timeout:
			break collectLoop
		}
	}

	if len(events) == 0 {
		t.Fatal("expected at least one audit event")
	}

	for _, ev := range events {
		for _, needle := range secretNeedles {
			if stringContains(ev.Error, needle) {
				t.Fatalf("sensitive value leaked in audit error field: %q", needle)
			}
			for k, v := range ev.Metadata {
				if stringContains(k, needle) || stringContains(v, needle) {
					t.Fatalf("sensitive value leaked in audit metadata: %q", needle)
				}
			}
		}
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *syncBuffer) Contains(v string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return stringContains(string(b.buf), v)
}

func stringContains(s, sub string) bool {
	if len(sub) == 0 {
		return true
	}
	if len(sub) > len(s) {
		return false
	}
	for i := 0; i <= len(s)-len(sub); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
