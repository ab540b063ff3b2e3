package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetDefault(t *testing.T) {
	svc := &Service{}

	t.Setenv("APP_TEST_SET", "value")
	assert.Equal(t, "value", svc.GetDefault("APP_TEST_SET", "fallback"))
	assert.Equal(t, "fallback", svc.GetDefault("APP_TEST_UNSET", "fallback"))
}

func TestGetBool(t *testing.T) {
	svc := &Service{}

	t.Setenv("APP_TEST_BOOL", "true")
	assert.True(t, svc.GetBool("APP_TEST_BOOL", false))

	t.Setenv("APP_TEST_BOOL", "garbage")
	assert.True(t, svc.GetBool("APP_TEST_BOOL", true))

	assert.False(t, svc.GetBool("APP_TEST_BOOL_UNSET", false))
}

func TestGetInt(t *testing.T) {
	svc := &Service{}

	t.Setenv("APP_TEST_INT", "42")
	assert.Equal(t, 42, svc.GetInt("APP_TEST_INT", 7))

	t.Setenv("APP_TEST_INT", "not-a-number")
	assert.Equal(t, 7, svc.GetInt("APP_TEST_INT", 7))
}

func TestGetDuration(t *testing.T) {
	svc := &Service{}

	t.Setenv("APP_TEST_DUR", "150ms")
	assert.Equal(t, 150*time.Millisecond, svc.GetDuration("APP_TEST_DUR", time.Second))

	t.Setenv("APP_TEST_DUR", "soon")
	assert.Equal(t, time.Second, svc.GetDuration("APP_TEST_DUR", time.Second))
}
