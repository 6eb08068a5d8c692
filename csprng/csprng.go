// Package csprng provides cryptographically secure randomness sources.
//
// Every randomized operation in this module takes a Source explicitly;
// nothing draws from hidden global state. Seeded sources make protocol
// runs reproducible in tests.
package csprng

import "io"

// bufSize is the default buffer size of the samplers.
const bufSize = 8192

// Source is a cryptographically secure uniform randomness source.
type Source interface {
	io.Reader

	// Sample uniformly samples a random uint64.
	Sample() uint64
	// SampleN uniformly samples a random integer in [0, N).
	SampleN(N uint64) uint64
}
