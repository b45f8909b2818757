package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerScheduleAndFire(t *testing.T) {
	s := NewScheduler()
	ran := false
	s.Schedule("n1", time.Hour, func() { ran = true })

	assert.True(t, s.Scheduled("n1"))
	assert.True(t, s.Fire("n1"))
	assert.True(t, ran)
	assert.False(t, s.Scheduled("n1"))

	// firing again finds nothing pending
	assert.False(t, s.Fire("n1"))
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	ran := false
	s.Schedule("n1", time.Hour, func() { ran = true })

	assert.True(t, s.Cancel("n1"))
	assert.False(t, ran)
	assert.False(t, s.Scheduled("n1"))
	assert.False(t, s.Cancel("n1"))
}

func TestSchedulerRescheduleReplaces(t *testing.T) {
	s := NewScheduler()
	first, second := false, false
	s.Schedule("n1", time.Hour, func() { first = true })
	s.Schedule("n1", time.Hour, func() { second = true })

	assert.True(t, s.Fire("n1"))
	assert.False(t, first)
	assert.True(t, second)
}

func TestSchedulerIndependentIDs(t *testing.T) {
	s := NewScheduler()
	s.Schedule("n1", time.Hour, func() {})
	s.Schedule("n2", time.Hour, func() {})

	assert.True(t, s.Cancel("n1"))
	assert.True(t, s.Scheduled("n2"))
}
