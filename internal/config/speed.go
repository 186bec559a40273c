package config

// SpeedCurve decides when a cleared obstacle shortens the next obstacle window.
type SpeedCurve struct {
	every uint32
	step  float64
	floor float64
}

// NewSpeedCurve creates a speed curve from the rules.
func NewSpeedCurve(r RulesConfig) SpeedCurve {
	return SpeedCurve{
		every: r.SpeedUpEvery,
		step:  r.SpeedStep,
		floor: r.MinSpeed,
	}
}

// Next returns the speed after a scoring event and whether it changed.
// Speed drops by one step on every positive multiple of the interval while it
// is still above the floor. The floor is checked before the decrement, so a
// step that does not divide evenly can land below it once.
func (c SpeedCurve) Next(score uint32, speed float64) (float64, bool) {
	if c.every == 0 || score == 0 || score%c.every != 0 {
		return speed, false
	}
	if speed <= c.floor {
		return speed, false
	}
	return speed - c.step, true
}
