package client

import (
	"context"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
)

func TestGetClientPrefersContext(t *testing.T) {
	global := asynq.NewClient(asynq.RedisClientOpt{Addr: "127.0.0.1:0"})
	scoped := asynq.NewClient(asynq.RedisClientOpt{Addr: "127.0.0.1:0"})
	defer global.Close()
	defer scoped.Close()

	restore := SetClient(global)
	defer restore()

	assert.Same(t, global, GetClient(context.Background()))
	assert.Same(t, scoped, GetClient(WithClient(context.Background(), scoped)))
}

func TestEnqueueWithoutClient(t *testing.T) {
	restore := SetClient(nil)
	defer restore()

	err := Enqueuer{}.Enqueue(context.Background(), asynq.NewTask("noop", nil))
	assert.ErrorIs(t, err, ErrNoClient)
}
