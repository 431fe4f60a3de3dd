package notify

import (
	"context"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSMTPNotifierBuildsMessage(t *testing.T) {
	t.Parallel()

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	n := NewSMTPNotifier("mail.example.com:587", "huddle@example.com", nil)
	n.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotFrom = from
		gotTo = to
		gotMsg = msg
		return nil
	}

	err := n.Send(context.Background(), "dana@example.com", "Meeting Reminder", "See you at 10.")
	require.NoError(t, err)

	require.Equal(t, "mail.example.com:587", gotAddr)
	require.Equal(t, "huddle@example.com", gotFrom)
	require.Equal(t, []string{"dana@example.com"}, gotTo)
	require.Contains(t, string(gotMsg), "Subject: Meeting Reminder\r\n")
	require.Contains(t, string(gotMsg), "To: dana@example.com\r\n")
	require.Contains(t, string(gotMsg), "See you at 10.")
}

func TestSMTPNotifierSanitizesSubject(t *testing.T) {
	t.Parallel()

	var gotMsg []byte

	n := NewSMTPNotifier("mail.example.com:587", "huddle@example.com", nil)
	n.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotMsg = msg
		return nil
	}

	err := n.Send(context.Background(), "dana@example.com", "Evil\r\nBcc: all@example.com", "body")
	require.NoError(t, err)
	require.Contains(t, string(gotMsg), "Subject: Evil Bcc: all@example.com\r\n")
}

func TestSMTPNotifierHonoursContext(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	t.Cleanup(func() { close(block) })

	n := NewSMTPNotifier("mail.example.com:587", "huddle@example.com", nil)
	n.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		<-block
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.Send(ctx, "dana@example.com", "subject", "body")
	require.ErrorIs(t, err, context.Canceled)
}
