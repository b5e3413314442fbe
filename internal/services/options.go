package services

import (
	"math/rand/v2"
	"time"

	"github.com/vytor/vocabflash/internal/learning"
)

// Option configures the engines and services in this package.
type Option func(*options)

type options struct {
	now          func() time.Time
	rng          *rand.Rand
	weights      learning.Weights
	upThreshold  int
	location     *time.Location
	maxQuestions int
}

func defaultOptions() options {
	return options{
		now:         time.Now,
		rng:         rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())),
		weights:     learning.DefaultWeights(),
		upThreshold: learning.DefaultUpThreshold,
		location:    time.Local,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithRand sets the source used for shuffles, sampling and coin flips.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

// WithWeights sets the scorer weights.
func WithWeights(w learning.Weights) Option {
	return func(o *options) { o.weights = w }
}

// WithUpThreshold sets the streak that raises mastery.
func WithUpThreshold(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.upThreshold = n
		}
	}
}

// WithLocation sets the time zone used for day boundaries in reports.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithMaxQuestions caps the size of a generated exam. Zero means no cap.
func WithMaxQuestions(n int) Option {
	return func(o *options) { o.maxQuestions = n }
}
