package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitLogger_LevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	InitLogger()
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
}

func TestInitLogger_DefaultsToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	InitLogger()
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}

func TestInitLogger_IgnoresGarbageLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loudest")
	InitLogger()
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}
