package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
)

func TestAwaitConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("Skips the late ack of a timed out publish", func(t *testing.T) {
		confirms := make(chan amqp.Confirmation, 2)
		confirms <- amqp.Confirmation{DeliveryTag: 1, Ack: true}
		confirms <- amqp.Confirmation{DeliveryTag: 2, Ack: false}

		err := awaitConfirm(ctx, confirms, 2, time.Second)
		assert.EqualError(t, err, "event nacked by broker")
	})

	t.Run("Acked", func(t *testing.T) {
		confirms := make(chan amqp.Confirmation, 1)
		confirms <- amqp.Confirmation{DeliveryTag: 3, Ack: true}
		assert.NoError(t, awaitConfirm(ctx, confirms, 3, time.Second))
	})

	t.Run("Times out when only stale confirmations arrive", func(t *testing.T) {
		confirms := make(chan amqp.Confirmation, 1)
		confirms <- amqp.Confirmation{DeliveryTag: 1, Ack: true}
		err := awaitConfirm(ctx, confirms, 2, 20*time.Millisecond)
		assert.EqualError(t, err, "publish confirmation timeout")
	})

	t.Run("Closed channel", func(t *testing.T) {
		confirms := make(chan amqp.Confirmation)
		close(confirms)
		assert.Error(t, awaitConfirm(ctx, confirms, 1, time.Second))
	})

	t.Run("Context cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := awaitConfirm(cctx, make(chan amqp.Confirmation), 1, time.Second)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
