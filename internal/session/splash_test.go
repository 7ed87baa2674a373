package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runToCheck(t *testing.T, s *Splash) {
	t.Helper()
	tok := s.Token()
	for i := 0; i < 50; i++ {
		res := s.Tick(tok)
		if i < 49 {
			require.False(t, res.CheckDue)
			require.False(t, res.Stop)
		} else {
			require.True(t, res.CheckDue)
		}
	}
}

func TestSplashFiftyTicksReachOneHundred(t *testing.T) {
	s := NewSplash(DefaultSplashTiming())
	tok := s.Token()

	checks := 0
	for i := 0; i < 50; i++ {
		res := s.Tick(tok)
		assert.Equal(t, (i+1)*2, res.Progress)
		if res.CheckDue {
			checks++
		}
	}
	assert.Equal(t, 100, s.Progress())
	assert.Equal(t, 1, checks)
	assert.Equal(t, 1, s.Checks())
	assert.Equal(t, SplashChecking, s.Phase())

	for i := 0; i < 5; i++ {
		res := s.Tick(tok)
		assert.False(t, res.CheckDue)
		assert.True(t, res.Stop)
	}
	assert.Equal(t, 100, s.Progress())
	assert.Equal(t, 1, s.Checks())
}

func TestSplashOnlineHandsOff(t *testing.T) {
	s := NewSplash(DefaultSplashTiming())
	runToCheck(t, s)

	assert.Equal(t, OutcomeHandoff, s.ReportConnectivity(s.Token(), true))
	assert.False(t, s.Finished())
	assert.True(t, s.Complete(s.Token()))
	assert.True(t, s.Finished())
	assert.False(t, s.Complete(s.Token()))
}

func TestSplashOfflineRetry(t *testing.T) {
	s := NewSplash(DefaultSplashTiming())
	runToCheck(t, s)

	assert.Equal(t, OutcomeOffline, s.ReportConnectivity(s.Token(), false))
	assert.True(t, s.ErrorShown())
	assert.Equal(t, SplashOffline, s.Phase())

	require.True(t, s.Retry(s.Token()))
	assert.False(t, s.ErrorShown())
	assert.Equal(t, SplashChecking, s.Phase())
	assert.Equal(t, 2, s.Checks())

	assert.Equal(t, OutcomeHandoff, s.ReportConnectivity(s.Token(), true))
	assert.True(t, s.Complete(s.Token()))
}

func TestSplashDismissDoesNotRecheck(t *testing.T) {
	s := NewSplash(DefaultSplashTiming())
	runToCheck(t, s)
	s.ReportConnectivity(s.Token(), false)

	s.Dismiss()
	assert.False(t, s.ErrorShown())
	assert.Equal(t, SplashOffline, s.Phase())
	assert.Equal(t, 1, s.Checks())
	assert.Equal(t, OutcomeIgnored, s.ReportConnectivity(s.Token(), true))
	assert.False(t, s.Finished())
}

func TestSplashCancelMakesCallbacksStale(t *testing.T) {
	s := NewSplash(DefaultSplashTiming())
	stale := s.Token()
	s.Tick(stale)
	s.Cancel()

	res := s.Tick(stale)
	assert.True(t, res.Stop)
	assert.Equal(t, 2, s.Progress())

	fresh := s.Token()
	assert.NotEqual(t, stale, fresh)
	for i := 0; i < 49; i++ {
		s.Tick(fresh)
	}
	require.Equal(t, SplashChecking, s.Phase())
	assert.Equal(t, OutcomeIgnored, s.ReportConnectivity(stale, true))
	assert.Equal(t, OutcomeHandoff, s.ReportConnectivity(fresh, true))

	s.Cancel()
	assert.False(t, s.Complete(fresh))
	assert.Equal(t, SplashHandoff, s.Phase())
}

func TestSplashCustomStepClamps(t *testing.T) {
	s := NewSplash(SplashTiming{Step: 30})
	tok := s.Token()
	var last TickResult
	for i := 0; i < 4; i++ {
		last = s.Tick(tok)
	}
	assert.True(t, last.CheckDue)
	assert.Equal(t, 100, s.Progress())
}
