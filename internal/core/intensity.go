package core

import (
	"sync"

	"reelhub/pkg/models"
)

// Intensity meter constants.
const (
	MaxIntensity      = 100.0
	WarningThreshold  = 50.0
	DangerThreshold   = 70.0
	CriticalThreshold = 85.0
	BaseAccumulation  = 0.3 // per second while watching
	DecayRate         = 0.5 // per second while idle
)

// HeatMultipliers weights accumulation by content heat.
var HeatMultipliers = map[models.Heat]float64{
	models.HeatNuclear: 3.0,
	models.HeatFire:    2.0,
	models.HeatSpicy:   1.5,
	models.HeatNone:    1.0,
}

// IntensityMeter is the bounded scalar driven by content heat while a
// session is active and decaying while it is not. Exactly one of
// accumulate/decay applies per tick; the active flag and the current heat
// swap atomically under the lock, so the two can never run for the same
// tick. Not persisted - rebuilt fresh per session.
type IntensityMeter struct {
	mu     sync.Mutex
	value  float64
	active bool
	heat   models.Heat
}

// NewIntensityMeter returns a zeroed, inactive meter.
func NewIntensityMeter() *IntensityMeter {
	return &IntensityMeter{}
}

// SetActive switches between accumulation and decay.
func (m *IntensityMeter) SetActive(active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = active
}

// SetHeat sets the classification of the content currently playing.
func (m *IntensityMeter) SetHeat(heat models.Heat) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.heat = heat
}

// Tick advances the meter by one second.
func (m *IntensityMeter) Tick() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active {
		multiplier, ok := HeatMultipliers[m.heat]
		if !ok {
			multiplier = 1.0
		}
		m.value += BaseAccumulation * multiplier
		if m.value > MaxIntensity {
			m.value = MaxIntensity
		}
		return
	}

	m.value -= DecayRate
	if m.value < 0 {
		m.value = 0
	}
}

// Boost adds a one-shot bump, clamped to the maximum.
func (m *IntensityMeter) Boost(amount float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value += amount
	if m.value > MaxIntensity {
		m.value = MaxIntensity
	}
	if m.value < 0 {
		m.value = 0
	}
}

// Reset zeroes the meter and stops accumulation.
func (m *IntensityMeter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = 0
	m.active = false
	m.heat = models.HeatNone
}

// Value returns the current intensity in [0, 100].
func (m *IntensityMeter) Value() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

// IsWarning reports the elevated band below the danger zone.
func (m *IntensityMeter) IsWarning() bool {
	v := m.Value()
	return v >= WarningThreshold && v < DangerThreshold
}

// IsDanger reports whether the meter is in the danger zone.
func (m *IntensityMeter) IsDanger() bool {
	return m.Value() >= DangerThreshold
}

// IsCritical reports whether the meter is critical.
func (m *IntensityMeter) IsCritical() bool {
	return m.Value() >= CriticalThreshold
}
