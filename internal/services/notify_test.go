package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neargo/internal/domain"
)

type fakeMailer struct {
	to, subject string
	err         error
}

func (f *fakeMailer) Send(to, subject, html, text string) error {
	if f.err != nil {
		return f.err
	}
	f.to, f.subject = to, subject
	return nil
}

type fakeRenderer struct {
	err error
}

func (f *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject:" + name, "<p>html</p>", "text", nil
}

func TestEmailService_SendHoldConfirmation(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewEmailService(mailer, &fakeRenderer{}, testLogger())

	err := svc.SendHoldConfirmation(context.Background(), &domain.HoldConfirmationEmailData{
		Email:     "guest@example.com",
		HoldID:    "hold-x",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", mailer.to)
	assert.Equal(t, "subject:hold_confirmation", mailer.subject)
}

func TestEmailService_SendHoldConfirmation_Errors(t *testing.T) {
	svc := NewEmailService(&fakeMailer{}, &fakeRenderer{err: errors.New("bad template")}, testLogger())
	err := svc.SendHoldConfirmation(context.Background(), &domain.HoldConfirmationEmailData{Email: "a@b.c"})
	require.Error(t, err)

	svc = NewEmailService(&fakeMailer{err: errors.New("ses down")}, &fakeRenderer{}, testLogger())
	err = svc.SendHoldConfirmation(context.Background(), &domain.HoldConfirmationEmailData{Email: "a@b.c"})
	require.Error(t, err)

	err = svc.SendHoldConfirmation(context.Background(), nil)
	require.Error(t, err)
}
