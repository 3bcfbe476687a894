package email

import (
	"context"
	"errors"
	"net"
	"net/smtp"
	"testing"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendWelcome_SkipsWithoutHost(t *testing.T) {
	svc, err := NewEmailService(config.SMTPConfig{})
	require.NoError(t, err)

	impl := svc.(*emailServiceImpl)
	impl.send = func(context.Context, string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called without an SMTP host")
		return nil
	}

	assert.NoError(t, svc.SendWelcome(context.Background(), "alice@emporia.com", "Alice", "http://localhost:3000/login"))
}

func TestSendWelcome_RendersTemplate(t *testing.T) {
	svc, err := NewEmailService(config.SMTPConfig{Host: "smtp.local", Port: 25, From: "no-reply@emporia.com", FromName: "Emporia"})
	require.NoError(t, err)

	var captured []byte
	impl := svc.(*emailServiceImpl)
	impl.send = func(_ context.Context, addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		assert.Equal(t, "smtp.local:25", addr)
		assert.Equal(t, []string{"alice@emporia.com"}, to)
		captured = msg
		return nil
	}

	require.NoError(t, svc.SendWelcome(context.Background(), "alice@emporia.com", "Alice", "http://localhost:3000/login"))
	assert.Contains(t, string(captured), "Subject: Welcome to Emporia")
	assert.Contains(t, string(captured), "Welcome to Emporia, Alice!")
}

func TestSendPasswordResetNotice_RetriesUntilSent(t *testing.T) {
	svc, err := NewEmailService(config.SMTPConfig{Host: "smtp.local", Port: 25})
	require.NoError(t, err)

	attempts := 0
	impl := svc.(*emailServiceImpl)
	impl.backoff = time.Millisecond
	impl.send = func(context.Context, string, smtp.Auth, string, []string, []byte) error {
		attempts++
		if attempts < maxRetries {
			return errors.New("temporary failure")
		}
		return nil
	}

	require.NoError(t, svc.SendPasswordResetNotice(context.Background(), "bob@emporia.com", "Bob", "HR Admin"))
	assert.Equal(t, maxRetries, attempts)
}

func TestSendHTML_StopsRetryingWhenContextEnds(t *testing.T) {
	svc, err := NewEmailService(config.SMTPConfig{Host: "smtp.local", Port: 25})
	require.NoError(t, err)

	attempts := 0
	impl := svc.(*emailServiceImpl)
	impl.backoff = time.Hour
	impl.send = func(context.Context, string, smtp.Auth, string, []string, []byte) error {
		attempts++
		return errors.New("connection refused")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = svc.SendWelcome(ctx, "alice@emporia.com", "Alice", "http://localhost:3000/login")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, attempts)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestSendMail_HonoursDeadline(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	// Accept connections but never send the SMTP greeting.
	go func() {
		var held []net.Conn
		defer func() {
			for _, conn := range held {
				conn.Close()
			}
		}()
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			held = append(held, conn)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = sendMail(ctx, ln.Addr().String(), nil, "no-reply@emporia.com", []string{"alice@emporia.com"}, []byte("hi"))
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestNotify_ReturnsImmediately(t *testing.T) {
	release := make(chan struct{})
	finished := make(chan struct{})

	start := time.Now()
	Notify(context.Background(), "welcome", func(ctx context.Context) error {
		<-release
		close(finished)
		return errors.New("smtp unreachable")
	})
	assert.Less(t, time.Since(start), time.Second)

	close(release)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("notification never ran")
	}
}
