package render

import (
	"crypto/rand"
	"encoding/binary"
)

// MaxSeed is the exclusive upper bound for generated seeds. Seeds live in
// [0, MaxSeed), matching the 32-bit seed space of common diffusion backends.
const MaxSeed = int64(4294967294)

// RandomSeed generates a random seed in [0, MaxSeed).
// This function uses crypto/rand so parallel processes never collide.
func RandomSeed() int64 {
	var buf [8]byte
	_, err := rand.Read(buf[:])
	if err != nil {
		// Fallback to a fixed seed if crypto/rand fails (extremely rare).
		// This is better than panicking in production.
		return 42
	}

	seed := int64(binary.LittleEndian.Uint64(buf[:]) % uint64(MaxSeed))
	return seed
}

// FixSeed replaces a negative (random) seed on the request with a concrete
// random value so every cell of a sweep can report a reproducible seed.
func FixSeed(req *Request) {
	if req.Seed < 0 {
		req.Seed = RandomSeed()
	}
	if req.SubSeed < 0 {
		req.SubSeed = RandomSeed()
	}
}
