package format

import (
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestHumanDuration(t *testing.T) {
	day := 24 * time.Hour
	week := 7 * day
	month := 30 * day
	year := 365 * day

	assert.Equal(t, "Less than a second", HumanDuration(450*time.Millisecond))
	assert.Equal(t, "1 second", HumanDuration(1*time.Second))
	assert.Equal(t, "45 seconds", HumanDuration(45*time.Second))
	assert.Equal(t, "59 seconds", HumanDuration(59*time.Second))
	assert.Equal(t, "About a minute", HumanDuration(1*time.Minute))
	assert.Equal(t, "10 minutes", HumanDuration(10*time.Minute))
	assert.Equal(t, "59 minutes", HumanDuration(59*time.Minute))
	assert.Equal(t, "About an hour", HumanDuration(1*time.Hour))
	assert.Equal(t, "2 hours", HumanDuration(1*time.Hour+31*time.Minute))
	assert.Equal(t, "24 hours", HumanDuration(24*time.Hour))
	assert.Equal(t, "2 days", HumanDuration(2*day))
	assert.Equal(t, "2 weeks", HumanDuration(2*week))
	assert.Equal(t, "4 weeks", HumanDuration(1*month))
	assert.Equal(t, "2 months", HumanDuration(2*month))
	assert.Equal(t, "2 years", HumanDuration(24*month+2*week))
	assert.Equal(t, "3 years", HumanDuration(3*year+2*month))
}

func TestHumanTime(t *testing.T) {
	now := time.Now()

	t.Run("zero value", func(t *testing.T) {
		assert.Equal(t, HumanTime(time.Time{}, "never"), "never")
	})
	t.Run("time in the future", func(t *testing.T) {
		v := now.Add(48 * time.Hour)
		assert.Equal(t, HumanTime(v, ""), "2 days from now")
	})
	t.Run("time in the past", func(t *testing.T) {
		v := now.Add(-48 * time.Hour)
		assert.Equal(t, HumanTime(v, ""), "2 days ago")
	})
	t.Run("lower case", func(t *testing.T) {
		v := now.Add(30 * time.Second)
		assert.Equal(t, HumanTimeLower(v, ""), "30 seconds from now")
	})
}

func TestExactDuration(t *testing.T) {
	assert.Equal(t, "1 millisecond", ExactDuration(1*time.Millisecond))
	assert.Equal(t, "10 milliseconds", ExactDuration(10*time.Millisecond))
	assert.Equal(t, "1 second", ExactDuration(1*time.Second))
	assert.Equal(t, "1 minute", ExactDuration(1*time.Minute))
	assert.Equal(t, "10 minutes", ExactDuration(10*time.Minute))
	assert.Equal(t, "1 hour 1 second", ExactDuration(1*time.Hour+1*time.Second))
	assert.Equal(t, "1 hour 1 minute 1 second", ExactDuration(1*time.Hour+1*time.Minute+1*time.Second))
	assert.Equal(t, "10 hours 10 minutes 10 seconds", ExactDuration(10*time.Hour+10*time.Minute+10*time.Second))
}
