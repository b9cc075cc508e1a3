package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLearnerLimiter_PerLearnerBuckets(t *testing.T) {
	l := NewLearnerLimiter(0.001, 2)

	assert.True(t, l.Allow("ana"))
	assert.True(t, l.Allow("ana"))
	assert.False(t, l.Allow("ana"))
	assert.True(t, l.Allow("ben"))
}

func TestLearnerLimiter_Cleanup(t *testing.T) {
	l := NewLearnerLimiter(1, 1)
	l.Allow("ana")
	l.Allow("ben")

	assert.Equal(t, 0, l.Cleanup(time.Now()))
	assert.Equal(t, 2, l.Cleanup(time.Now().Add(11*time.Minute)))
	assert.Empty(t, l.visitors)
}

func TestLearnerLimiter_NilAllowsAll(t *testing.T) {
	var l *LearnerLimiter
	assert.True(t, l.Allow("ana"))
}
