package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestGetEnvDefault(t *testing.T) {
	t.Setenv("CMS_TEST_VALUE", "set")

	assert.Equal(t, "set", GetEnvDefault("CMS_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnvDefault("CMS_TEST_MISSING", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("CMS_TEST_INT", " 14 ")
	t.Setenv("CMS_TEST_BAD", "fourteen")

	assert.Equal(t, 14, GetEnvInt("CMS_TEST_INT", 12))
	assert.Equal(t, 12, GetEnvInt("CMS_TEST_BAD", 12))
	assert.Equal(t, 12, GetEnvInt("CMS_TEST_MISSING", 12))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b,"))
	assert.Empty(t, SplitList(""))
}

func TestInitLogger(t *testing.T) {
	logger := InitLogger("debug")
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger = InitLogger("nonsense")
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}
