package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsernameFromEmail(t *testing.T) {
	assert.Equal(t, "dias", usernameFromEmail("dias@example.com"))
	assert.Equal(t, "first.last", usernameFromEmail("first.last@mail.kz"))
	assert.Equal(t, "noatsign", usernameFromEmail("noatsign"))
}

func TestRankBadge(t *testing.T) {
	tests := []struct {
		count int
		badge string
	}{
		{0, "turtle"},
		{1, "rabbit"},
		{4, "rabbit"},
		{5, "horse"},
		{9, "horse"},
		{10, "lion"},
		{42, "lion"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.badge, rankBadge(tt.count), "count=%d", tt.count)
	}
}
