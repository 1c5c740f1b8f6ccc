package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickScheduler(t *testing.T) {
	s := newTickScheduler(time.Millisecond)
	assert.False(t, s.running())
	assert.Nil(t, s.C())

	s.sync(true)
	require.True(t, s.running())
	c := s.C()
	select {
	case <-c:
	case <-time.After(time.Second):
		t.Fatal("expected a tick")
	}

	// syncing again keeps the same ticker
	s.sync(true)
	assert.Equal(t, c, s.C())

	s.sync(false)
	assert.False(t, s.running())
	assert.Nil(t, s.C())
	s.sync(false)
	assert.False(t, s.running())
}
