package services

import (
	"context"
	"errors"
	"testing"

	"eventboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to, subject string
	err         error
}

func (f *fakeMailer) Send(to, subject, html, text string) error {
	if f.err != nil {
		return f.err
	}
	f.to = to
	f.subject = subject
	return nil
}

type fakeRenderer struct {
	lastTemplate string
	err          error
}

func (f *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	if f.err != nil {
		return "", "", "", f.err
	}
	f.lastTemplate = templateName
	return "subject for " + templateName, "<p>html</p>", "text", nil
}

func TestEmailService_SendsPerKindTemplate(t *testing.T) {
	ctx := context.Background()
	data := &domain.EventEmailData{Email: "a@example.com", EventTitle: "Meetup"}

	tests := []struct {
		name         string
		send         func(svc domain.EmailService) error
		wantTemplate string
	}{
		{"created", func(svc domain.EmailService) error { return svc.SendEventCreated(ctx, data) }, "event_created"},
		{"approved", func(svc domain.EmailService) error { return svc.SendEventApproved(ctx, data) }, "event_approved"},
		{"deleted", func(svc domain.EmailService) error { return svc.SendEventDeleted(ctx, data) }, "event_deleted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &fakeMailer{}
			renderer := &fakeRenderer{}
			svc := NewEmailService(mailer, renderer)

			require.NoError(t, tt.send(svc))
			assert.Equal(t, tt.wantTemplate, renderer.lastTemplate)
			assert.Equal(t, "a@example.com", mailer.to)
			assert.Equal(t, "subject for "+tt.wantTemplate, mailer.subject)
		})
	}
}

func TestEmailService_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("nil data", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeRenderer{})
		assert.Error(t, svc.SendEventCreated(ctx, nil))
	})

	t.Run("render failure", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeRenderer{err: errors.New("missing template")})
		err := svc.SendEventApproved(ctx, &domain.EventEmailData{Email: "a@example.com"})
		assert.ErrorContains(t, err, "render")
	})

	t.Run("mailer failure", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{err: errors.New("ses down")}, &fakeRenderer{})
		err := svc.SendEventDeleted(ctx, &domain.EventEmailData{Email: "a@example.com"})
		assert.ErrorContains(t, err, "send")
	})
}
