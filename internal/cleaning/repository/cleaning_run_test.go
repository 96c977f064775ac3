package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTimeout(t *testing.T) {
	r := &mongoCleaningRunRepository{}

	ctx, cancel := r.withTimeout(context.Background(), time.Minute)
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, time.Second)

	parent, parentCancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer parentCancel()
	ctx, cancel = r.withTimeout(parent, time.Minute)
	defer cancel()
	deadline, _ = ctx.Deadline()
	parentDeadline, _ := parent.Deadline()
	assert.Equal(t, parentDeadline, deadline)
}
