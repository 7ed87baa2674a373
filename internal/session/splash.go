package session

import "time"

// Splash timing defaults
const (
	DefaultSplashStep         = 2
	DefaultSplashTickInterval = 40 * time.Millisecond
	DefaultSplashHandoffDelay = 500 * time.Millisecond
	DefaultSplashRetryDelay   = time.Second

	splashMaxProgress = 100
)

// SplashPhase is the stage of the startup sequence
type SplashPhase int

const (
	SplashLoading SplashPhase = iota
	SplashChecking
	SplashHandoff
	SplashDone
	SplashOffline
)

func (p SplashPhase) String() string {
	switch p {
	case SplashLoading:
		return "loading"
	case SplashChecking:
		return "checking"
	case SplashHandoff:
		return "handoff"
	case SplashDone:
		return "done"
	case SplashOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// SplashTiming holds the sequencer's delays
type SplashTiming struct {
	Step         int
	TickInterval time.Duration
	HandoffDelay time.Duration
	RetryDelay   time.Duration
}

// DefaultSplashTiming returns the stock timing
func DefaultSplashTiming() SplashTiming {
	return SplashTiming{
		Step:         DefaultSplashStep,
		TickInterval: DefaultSplashTickInterval,
		HandoffDelay: DefaultSplashHandoffDelay,
		RetryDelay:   DefaultSplashRetryDelay,
	}
}

// SplashToken identifies the generation a scheduled callback belongs to
type SplashToken uint64

// TickResult tells the scheduler what to do after a tick
type TickResult struct {
	Progress int
	// CheckDue is set once, on the tick that reaches 100
	CheckDue bool
	// Stop is set when no further ticks should be scheduled
	Stop bool
}

// ConnectivityOutcome is the sequencer's reaction to a connectivity report
type ConnectivityOutcome int

const (
	OutcomeIgnored ConnectivityOutcome = iota
	OutcomeHandoff
	OutcomeOffline
)

// Splash sequences the startup progress bar and the connectivity gate. It does
// no scheduling itself: the owner schedules callbacks and feeds them back with
// the token that was current when they were scheduled. Cancel invalidates
// every outstanding token.
type Splash struct {
	timing     SplashTiming
	generation SplashToken
	phase      SplashPhase
	progress   int
	errorShown bool
	checks     int
}

// NewSplash returns a sequencer at progress 0
func NewSplash(timing SplashTiming) *Splash {
	if timing.Step <= 0 {
		timing.Step = DefaultSplashStep
	}
	return &Splash{timing: timing, generation: 1}
}

// Token returns the current generation
func (s *Splash) Token() SplashToken { return s.generation }

// Timing returns the configured delays
func (s *Splash) Timing() SplashTiming { return s.timing }

// Phase returns the current stage
func (s *Splash) Phase() SplashPhase { return s.phase }

// Progress returns the bar position, 0..100
func (s *Splash) Progress() int { return s.progress }

// ErrorShown reports whether the connectivity error surface is visible
func (s *Splash) ErrorShown() bool { return s.errorShown }

// Checks returns how many connectivity checks were requested
func (s *Splash) Checks() int { return s.checks }

// Finished reports whether control was handed to the main views
func (s *Splash) Finished() bool { return s.phase == SplashDone }

// Tick advances the progress bar by one step
func (s *Splash) Tick(token SplashToken) TickResult {
	if token != s.generation || s.phase != SplashLoading {
		return TickResult{Progress: s.progress, Stop: true}
	}
	s.progress += s.timing.Step
	if s.progress < splashMaxProgress {
		return TickResult{Progress: s.progress}
	}
	s.progress = splashMaxProgress
	s.phase = SplashChecking
	s.checks++
	return TickResult{Progress: s.progress, CheckDue: true, Stop: true}
}

// ReportConnectivity feeds the result of a connectivity check. Online moves to
// the hand-off delay, offline shows the error surface.
func (s *Splash) ReportConnectivity(token SplashToken, online bool) ConnectivityOutcome {
	if token != s.generation || s.phase != SplashChecking {
		return OutcomeIgnored
	}
	if online {
		s.phase = SplashHandoff
		return OutcomeHandoff
	}
	s.phase = SplashOffline
	s.errorShown = true
	return OutcomeOffline
}

// Complete ends the hand-off delay
func (s *Splash) Complete(token SplashToken) bool {
	if token != s.generation || s.phase != SplashHandoff {
		return false
	}
	s.phase = SplashDone
	return true
}

// Retry hides the error and returns to checking. The caller schedules the
// next check after the retry delay.
func (s *Splash) Retry(token SplashToken) bool {
	if token != s.generation || s.phase != SplashOffline {
		return false
	}
	s.errorShown = false
	s.phase = SplashChecking
	s.checks++
	return true
}

// Dismiss hides the error surface without scheduling another check
func (s *Splash) Dismiss() {
	if s.phase == SplashOffline {
		s.errorShown = false
	}
}

// Cancel invalidates every scheduled callback
func (s *Splash) Cancel() {
	s.generation++
}
