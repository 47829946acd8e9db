package queue

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewConsumerReadsBacklog(t *testing.T) {
	c := NewConsumer(nil, "contacts:events", "workers", "worker-1", 30*time.Second, zerolog.Nop(), nil)

	// The group must start at the beginning of the stream, not "$":
	// cleanup tasks enqueued before the worker's first start would
	// otherwise never be delivered.
	assert.Equal(t, "0", c.start)
	assert.Equal(t, "contacts:events", c.stream)
	assert.Equal(t, "workers", c.group)
	assert.Equal(t, "worker-1", c.consumer)
}
