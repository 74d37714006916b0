package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
	"github.com/brickfield/sitecast/pkg/errors"
)

func newTestMailer() *logMailer {
	return NewLogMailer(Sender{Address: "reports@sitecast.local", Name: "Sitecast"}, logging.NewNop())
}

func TestSendRecordsMessage(t *testing.T) {
	m := newTestMailer()

	err := m.Send(context.Background(), Message{
		To:      []string{"pm@example.com"},
		Subject: "Weekly cost report",
		Attachments: []Attachment{
			{Filename: "report.csv", ContentType: "text/csv", Data: []byte("a,b\n")},
		},
	})
	require.NoError(t, err)

	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"pm@example.com"}, sent[0].To)
	assert.Equal(t, "report.csv", sent[0].Attachments[0].Filename)
}

func TestSendDropsMalformedRecipients(t *testing.T) {
	m := newTestMailer()

	err := m.Send(context.Background(), Message{
		To: []string{"  ", "not-an-address", "owner@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"owner@example.com"}, m.Sent()[0].To)
}

func TestSendNoValidRecipients(t *testing.T) {
	m := newTestMailer()

	err := m.Send(context.Background(), Message{To: []string{"nope"}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMailNoRecipients))
	assert.Empty(t, m.Sent())
}

func TestSendCancelledContext(t *testing.T) {
	m := newTestMailer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Send(ctx, Message{To: []string{"pm@example.com"}})
	assert.True(t, errors.IsCode(err, errors.ErrCodeMailDeliveryFailed))
}
