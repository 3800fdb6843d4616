package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("FS_TEST_INT", "12")
	t.Setenv("FS_TEST_BAD_INT", "x")
	t.Setenv("FS_TEST_BOOL", "false")

	assert.Equal(t, 12, EnvIntDefault("FS_TEST_INT", 1))
	assert.Equal(t, 1, EnvIntDefault("FS_TEST_BAD_INT", 1))
	assert.Equal(t, 7, EnvIntDefault("FS_TEST_MISSING", 7))
	assert.False(t, EnvBoolDefault("FS_TEST_BOOL", true))
	assert.True(t, EnvBoolDefault("FS_TEST_MISSING", true))
	assert.Equal(t, "def", EnvDefault("FS_TEST_MISSING", "def"))
}

func TestLocationDefault(t *testing.T) {
	t.Setenv("FS_TEST_TZ", "Not/AZone")
	assert.Equal(t, time.UTC, LocationDefault("FS_TEST_TZ", "UTC"))

	t.Setenv("FS_TEST_TZ", "UTC")
	assert.Equal(t, "UTC", LocationDefault("FS_TEST_TZ", "Asia/Tehran").String())
}
