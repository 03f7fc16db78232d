package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"logsage/internal/config"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), config.LLMConfig{}, time.Second)
	assert.Error(t, err)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limited", errors.New("googleapi: Error 429: quota exceeded"), true},
		{"server error", errors.New("rpc error: code 503 service unavailable"), true},
		{"timeout", errors.New("context deadline exceeded: timeout"), true},
		{"resource exhausted", errors.New("RESOURCE_EXHAUSTED"), true},
		{"bad request", errors.New("googleapi: Error 400: invalid argument"), false},
		{"auth failure", errors.New("API key not valid"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	max := time.Second

	assert.Equal(t, 100*time.Millisecond, backoff(base, 0, max))
	assert.Equal(t, 200*time.Millisecond, backoff(base, 1, max))
	assert.Equal(t, 400*time.Millisecond, backoff(base, 2, max))
	// Capped at max.
	assert.Equal(t, time.Second, backoff(base, 10, max))
}
