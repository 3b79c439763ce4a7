// Package profiler accumulates per-slave wall-clock time spent inside
// DoStep, mirroring the reference container's tic/toc profile_t. Profiling
// is entirely additive: a container built without it never allocates a
// Profile, and step execution is identical either way.
package profiler

import "time"

// Profile accumulates elapsed wall-clock time across repeated Tic/Toc pairs
// for a single slave.
type Profile struct {
	ticAt        time.Time
	totalElapsed time.Duration
}

// New returns a zeroed Profile, ready to accumulate.
func New() *Profile {
	return &Profile{}
}

// Tic records the start of a timed section.
func (p *Profile) Tic() {
	p.ticAt = time.Now()
}

// Toc closes the timed section opened by the most recent Tic and returns the
// elapsed wall-clock time of *this* step, in seconds, which is the value the
// reference implementation stores into the container's own Real buffer at
// the slave's index.
func (p *Profile) Toc() float64 {
	elapsed := time.Since(p.ticAt)
	p.totalElapsed += elapsed
	return elapsed.Seconds()
}

// TotalElapsed returns the cumulative wall-clock time spent across every
// Tic/Toc pair so far.
func (p *Profile) TotalElapsed() time.Duration {
	return p.totalElapsed
}

// RealTimeRatio returns TotalElapsed divided by simulatedTime, i.e. how many
// seconds of wall clock the slave spent per second of simulated time. A
// ratio below 1 means the slave runs faster than real time.
func (p *Profile) RealTimeRatio(simulatedTime time.Duration) float64 {
	if simulatedTime <= 0 {
		return 0
	}
	return p.totalElapsed.Seconds() / simulatedTime.Seconds()
}
