package csprng

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"math"

	"golang.org/x/crypto/blake2b"
)

// StreamSampler samples values from uniform distribution.
// This uses AES-256 as a underlying prng.
type StreamSampler struct {
	prng cipher.Stream

	buf [bufSize]byte
	ptr int
}

// NewStreamSampler creates a new StreamSampler.
//
// Panics when read from crypto/rand or AES initialization fails.
func NewStreamSampler() *StreamSampler {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		panic(err)
	}
	return NewStreamSamplerWithSeed(seed)
}

// NewStreamSamplerWithSeed creates a new StreamSampler, with user supplied seed.
// The key and IV are derived from the seed, so equal seeds produce equal streams.
//
// Panics when AES initialization fails.
func NewStreamSamplerWithSeed(seed []byte) *StreamSampler {
	h := blake2b.Sum512(seed)

	block, err := aes.NewCipher(h[:32])
	if err != nil {
		panic(err)
	}
	prng := cipher.NewCTR(block, h[32:32+block.BlockSize()])

	return &StreamSampler{
		prng: prng,

		ptr: bufSize,
	}
}

// Read implements the [io.Reader] interface.
func (s *StreamSampler) Read(p []byte) (n int, err error) {
	s.prng.XORKeyStream(p, p)
	return len(p), nil
}

// Sample uniformly samples a random uint64.
func (s *StreamSampler) Sample() uint64 {
	if s.ptr == bufSize {
		s.prng.XORKeyStream(s.buf[:], s.buf[:])
		s.ptr = 0
	}

	var res uint64
	res |= uint64(s.buf[s.ptr+0])
	res |= uint64(s.buf[s.ptr+1]) << 8
	res |= uint64(s.buf[s.ptr+2]) << 16
	res |= uint64(s.buf[s.ptr+3]) << 24
	res |= uint64(s.buf[s.ptr+4]) << 32
	res |= uint64(s.buf[s.ptr+5]) << 40
	res |= uint64(s.buf[s.ptr+6]) << 48
	res |= uint64(s.buf[s.ptr+7]) << 56
	s.ptr += 8

	return res
}

// SampleN uniformly samples a random integer in [0, N).
func (s *StreamSampler) SampleN(N uint64) uint64 {
	bound := math.MaxUint64 - (math.MaxUint64 % N)
	for {
		res := s.Sample()
		if res < bound {
			return res % N
		}
	}
}
