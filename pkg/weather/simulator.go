package weather

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Simulator draws random forecasts: any condition, 10-34°C and 0-99%
// precipitation. Delay models a slow remote call and honours ctx.
type Simulator struct {
	Delay time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSimulator seeds the generator. A zero seed uses the current time.
func NewSimulator(seed int64, delay time.Duration) *Simulator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulator{
		Delay: delay,
		rnd:   rand.New(rand.NewSource(seed)),
	}
}

func (s *Simulator) Forecast(ctx context.Context, _ time.Time) (Report, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Report{}, ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	conditions := AllConditions()
	return Report{
		Condition:     conditions[s.rnd.Intn(len(conditions))],
		Temperature:   float64(s.rnd.Intn(25) + 10),
		Precipitation: float64(s.rnd.Intn(100)),
	}, nil
}

// Static answers from a fixed table, falling back to Default.
type Static struct {
	Reports map[string]Report
	Default Report
	Calls   int
}

func (s *Static) Forecast(ctx context.Context, date time.Time) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	s.Calls++
	if r, ok := s.Reports[DateKey(date)]; ok {
		return r, nil
	}
	return s.Default, nil
}
