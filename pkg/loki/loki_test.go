package loki

import (
	"context"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

type noopLogger struct{}

func (noopLogger) Error(msg string, args ...any) {
}

func Test_New_ShouldValidateAndDefaultConfig(t *testing.T) {

	assert := assert.New(t)

	_, err := New(context.Background(), Config{}, noopLogger{})
	assert.Error(err)

	cfg := Config{
		Url:    "https://loki.example.com/loki/api/v1/push",
		Labels: map[string]string{"app": "hh-assistant"},
	}
	pusher, err := New(context.Background(), cfg, noopLogger{})
	assert.NoError(err)
	assert.Equal(cfg.Url, pusher.config.Url)
	assert.Equal(1000, pusher.config.BatchMaxSize)
	assert.Equal(5*time.Second, pusher.config.BatchMaxWait)
	assert.Equal("hh-assistant", pusher.config.Labels["app"])

	pusher.Stop()
}

func Test_New_ShouldDefaultEmptyLabels(t *testing.T) {

	assert := assert.New(t)

	pusher, err := New(context.Background(), Config{Url: "SomeUrl"}, noopLogger{})
	assert.NoError(err)
	assert.Equal(map[string]string{}, pusher.config.Labels)

	pusher.Stop()
}
