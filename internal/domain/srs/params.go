package srs

import (
	"github.com/phrazzld/learning-tracker/internal/domain"
)

// Params defines all configurable parameters for the review scheduler
type Params struct {
	// IntervalDays maps each grade to the number of days until the next review.
	IntervalDays map[domain.Grade]int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	EasyIntervalDays   int
	MediumIntervalDays int
	HardIntervalDays   int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		IntervalDays: map[domain.Grade]int{
			domain.GradeEasy:   7,
			domain.GradeMedium: 3,
			domain.GradeHard:   1,
		},
	}
}

// NewParams creates a new Params instance with custom configuration.
// Values below one day keep their defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.EasyIntervalDays > 0 {
		params.IntervalDays[domain.GradeEasy] = config.EasyIntervalDays
	}
	if config.MediumIntervalDays > 0 {
		params.IntervalDays[domain.GradeMedium] = config.MediumIntervalDays
	}
	if config.HardIntervalDays > 0 {
		params.IntervalDays[domain.GradeHard] = config.HardIntervalDays
	}

	return params
}

// withDefaults returns a copy of p with every grade mapped to at least one day.
func (p *Params) withDefaults() *Params {
	out := NewDefaultParams()
	if p == nil {
		return out
	}
	for grade, days := range p.IntervalDays {
		if _, known := out.IntervalDays[grade]; known && days > 0 {
			out.IntervalDays[grade] = days
		}
	}
	return out
}
