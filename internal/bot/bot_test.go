package bot

import (
	"DietTracker/internal/config"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBotInitWithoutToken(t *testing.T) {
	b := BotInit(&config.Config{}, nil, zap.NewNop())
	assert.Nil(t, b)
	assert.NotPanics(t, func() {
		b.Run()
		b.Stop()
	})
}

func TestStopWaitsForScheduler(t *testing.T) {
	c := cron.New()
	_, err := c.AddFunc("@every 1h", func() {})
	require.NoError(t, err)
	c.Start()

	b := &Bot{cron: c, log: zap.NewNop()}
	done := make(chan struct{})
	go func() {
		b.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}
