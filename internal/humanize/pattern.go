package humanize

import "time"

// StepKind identifies one kind of simulated-input step.
type StepKind string

const (
	StepScroll StepKind = "scroll"
	StepPause  StepKind = "pause"
)

// Step is one timed unit of simulated input. Magnitude is only meaningful
// for scroll steps (pixels); Duration is the wait the consumer must honor
// before moving to the next step.
type Step struct {
	Kind      StepKind
	Magnitude int
	Duration  time.Duration
}

// ActionPattern is an ordered, finite sequence of steps. A pattern is
// produced once per activity invocation and consumed left-to-right; it is
// not reusable or restartable.
type ActionPattern []Step

// TotalDuration sums the waits of every step.
func (p ActionPattern) TotalDuration() time.Duration {
	var total time.Duration
	for _, s := range p {
		total += s.Duration
	}
	return total
}

// ScrollPattern builds count scroll steps with magnitudes in [300,800) and
// inter-step delays in [minSpeed, maxSpeed) milliseconds. After each scroll,
// with probability 0.3, a longer pause step of [1000,5000) ms is interleaved
// to mimic a viewer stopping on something interesting.
func (e *Engine) ScrollPattern(count, minSpeed, maxSpeed int) ActionPattern {
	pattern := make(ActionPattern, 0, count)
	for i := 0; i < count; i++ {
		speed := minSpeed
		if maxSpeed > minSpeed {
			speed += e.rng.IntN(maxSpeed - minSpeed)
		}
		pattern = append(pattern, Step{
			Kind:      StepScroll,
			Magnitude: 300 + e.rng.IntN(500),
			Duration:  time.Duration(speed) * time.Millisecond,
		})
		if e.ShouldPerform(0.3) {
			pattern = append(pattern, Step{
				Kind:     StepPause,
				Duration: time.Duration(1000+e.rng.IntN(4000)) * time.Millisecond,
			})
		}
	}
	return pattern
}
