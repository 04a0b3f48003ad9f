package mail

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderConfirmation(t *testing.T) {
	body, err := renderConfirmation("alice", "https://app.example.com/confirm-signup?token=abc123")
	require.NoError(t, err)

	require.Contains(t, body, "Welcome, alice!")
	require.Contains(t, body, `href="https://app.example.com/confirm-signup?token=abc123"`)
	require.Contains(t, body, "This link will expire in 24 hours.")
}

func TestRenderConfirmationEscapesUsername(t *testing.T) {
	body, err := renderConfirmation(`<script>alert("x")</script>`, "https://app.example.com/confirm")
	require.NoError(t, err)
	require.NotContains(t, body, "<script>")
}

func TestLogMailerNeverFails(t *testing.T) {
	m := &LogMailer{}
	require.NoError(t, m.SendConfirmation(t.Context(), "alice@example.com", "alice", "https://app.example.com/confirm"))
}
