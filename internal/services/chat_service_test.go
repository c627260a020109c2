package services

import (
	"testing"

	"github.com/starwishteam/starwish/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestIsParticipant(t *testing.T) {
	chat := &models.Chat{
		ID:    "wish1_uid1",
		Users: []string{"owner", "helper"},
	}

	assert.True(t, isParticipant(chat, "owner"))
	assert.True(t, isParticipant(chat, "helper"))
	assert.False(t, isParticipant(chat, "stranger"))
	assert.False(t, isParticipant(chat, "Owner"))
	assert.False(t, isParticipant(&models.Chat{}, "owner"))
}
