package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	started  []string
	errors   []string
	warnings []string
	skipped  map[string]string
}

func newRecordingTestLogger() *recordingTestLogger {
	return &recordingTestLogger{skipped: make(map[string]string)}
}

func (l *recordingTestLogger) TestStarted(id TestID) { l.started = append(l.started, id.String()) }
func (l *recordingTestLogger) TestError(id TestID, err error) {
	l.errors = append(l.errors, err.Error())
}
func (l *recordingTestLogger) TestWarning(id TestID, message string) {
	l.warnings = append(l.warnings, message)
}
func (l *recordingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {}
func (l *recordingTestLogger) TestSkipped(id TestID, reason string) {
	l.skipped[id.String()] = reason
}

func TestRunIsolatesScenarioFailures(t *testing.T) {
	var order []string
	results := Run(nil, nil, func(c *Context) {
		c.Run("first", func(c *Context) {
			order = append(order, "first")
			c.Errorf("something went wrong")
		})
		c.Run("second", func(c *Context) {
			order = append(order, "second")
		})
	})

	assert.Equal(t, []string{"first", "second"}, order)
	assert.False(t, results.OK())
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "first", results.Failures[0].TestID.String())
	assert.Len(t, results.Tests, 2)
}

func TestRunRecoversFromScenarioPanic(t *testing.T) {
	var reachedNext bool
	results := Run(nil, nil, func(c *Context) {
		c.Run("panics", func(c *Context) {
			panic("unexpected fault")
		})
		c.Run("after", func(c *Context) {
			reachedNext = true
		})
	})

	assert.True(t, reachedNext)
	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "unexpected panic")
}

func TestFailNowStopsOnlyCurrentScenario(t *testing.T) {
	var afterFailNow, nextScenarioRan bool
	results := Run(nil, nil, func(c *Context) {
		c.Run("fails fast", func(c *Context) {
			c.Errorf("fatal condition")
			c.FailNow()
			afterFailNow = true
		})
		c.Run("next", func(c *Context) {
			nextScenarioRan = true
		})
	})

	assert.False(t, afterFailNow)
	assert.True(t, nextScenarioRan)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "fails fast", results.Failures[0].TestID.String())
}

func TestFailNowWithoutMessageAddsPlaceholderError(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("silent failure", func(c *Context) {
			c.FailNow()
		})
	})

	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "no failure message")
}

func TestSkippedScenarioIsNotCounted(t *testing.T) {
	logger := newRecordingTestLogger()
	results := Run(nil, logger, func(c *Context) {
		c.Run("skipped", func(c *Context) {
			c.SkipWithReason("missing precondition")
		})
		c.Run("runs", func(c *Context) {})
	})

	assert.True(t, results.OK())
	assert.Len(t, results.Tests, 1)
	assert.Equal(t, "missing precondition", logger.skipped["skipped"])
}

func TestWarningsAreRecordedWithoutFailing(t *testing.T) {
	logger := newRecordingTestLogger()
	results := Run(nil, logger, func(c *Context) {
		c.Run("warns", func(c *Context) {
			c.Warnf("degraded but acceptable")
		})
	})

	assert.True(t, results.OK())
	require.Len(t, results.Tests, 1)
	assert.Equal(t, []string{"degraded but acceptable"}, results.Tests[0].Warnings)
	assert.Equal(t, []string{"degraded but acceptable"}, logger.warnings)
}

func TestFilterExcludesScenarios(t *testing.T) {
	var ran []string
	filter := func(id TestID) bool { return id.String() != "excluded" }
	results := Run(filter, nil, func(c *Context) {
		c.Run("excluded", func(c *Context) { ran = append(ran, "excluded") })
		c.Run("included", func(c *Context) { ran = append(ran, "included") })
	})

	assert.Equal(t, []string{"included"}, ran)
	assert.Len(t, results.Tests, 1)
}

func TestNestedScenarioIDs(t *testing.T) {
	var ids []string
	results := Run(nil, nil, func(c *Context) {
		c.Run("group", func(c *Context) {
			c.Run("leaf", func(c *Context) {
				ids = append(ids, c.ID().String())
			})
		})
	})

	assert.Equal(t, []string{"group/leaf"}, ids)
	assert.True(t, results.OK())
}
