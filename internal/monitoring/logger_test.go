package monitoring

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = fmt.Sprintf(format, v...)
	})

	Logf("[test] loaded %d datapoints", 7)
	assert.Equal(t, "[test] loaded 7 datapoints", got)

	// A nil logger mutes output without panicking.
	SetLogger(nil)
	Logf("[test] dropped")
	assert.Equal(t, "[test] loaded 7 datapoints", got)
}

func TestSetTimeTrack(t *testing.T) {
	original := TimeTrack
	defer func() { TimeTrack = original }()

	var gotLabel string
	var gotDuration time.Duration
	SetTimeTrack(func(label string, d time.Duration) {
		gotLabel = label
		gotDuration = d
	})

	TimeTrack("dp.compute", 250*time.Millisecond)
	assert.Equal(t, "dp.compute", gotLabel)
	assert.Equal(t, 250*time.Millisecond, gotDuration)

	// A nil hook mutes timing without panicking.
	SetTimeTrack(nil)
	TimeTrack("dp.compute", time.Second)
	assert.Equal(t, 250*time.Millisecond, gotDuration)
}

func TestTimeTrackDefaultLogsThroughLogf(t *testing.T) {
	originalLogf := Logf
	defer func() { Logf = originalLogf }()
	require.NotNil(t, TimeTrack)

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = fmt.Sprintf(format, v...)
	})

	// The default hook formats through the package logger.
	TimeTrack("dp.compute_parallel", 3*time.Second)
	assert.Equal(t, "[dp.compute_parallel] took 3s", got)
}
