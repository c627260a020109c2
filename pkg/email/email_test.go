package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendEmail_Unconfigured(t *testing.T) {
	t.Setenv("SMTP_SENDER", "")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_PORT", "")

	err := SendEmail("someone@example.com", "Hello", "body")
	assert.EqualError(t, err, "smtp is not configured")
}
