package calculator

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"slices"

	"reflectometry/pkg/sample"
)

// DefaultCacheSize is the number of curves kept per Calculator.
const DefaultCacheSize = 64

// fingerprint identifies an unscaled curve: engine, smearing, structure,
// resolution widths and Q. Slabs are hashed by value so that equal but
// distinct materials share entries.
func fingerprint(engine string, mode SmearingMode, slabs []sample.Slab, widths, q []float64) string {
	h := sha256.New()
	var buf [8]byte

	writeString := func(s string) {
		binary.BigEndian.PutUint64(buf[:], uint64(len(s)))
		h.Write(buf[:])
		h.Write([]byte(s))
	}
	writeFloats := func(vs ...float64) {
		binary.BigEndian.PutUint64(buf[:], uint64(len(vs)))
		h.Write(buf[:])
		for _, v := range vs {
			if v == 0 {
				v = 0 // fold -0 into +0
			}
			binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}

	writeString(engine)
	writeString(string(mode))
	binary.BigEndian.PutUint64(buf[:], uint64(len(slabs)))
	h.Write(buf[:])
	for _, s := range slabs {
		writeFloats(s.Thickness, s.SLD, s.ISLD, s.Roughness)
	}
	writeFloats(widths...)
	writeFloats(q...)

	return hex.EncodeToString(h.Sum(nil))
}

// curveCache is a bounded FIFO map of unscaled curves. It is not safe for
// concurrent use.
type curveCache struct {
	size    int
	entries map[string][]float64
	order   []string
}

func newCurveCache(size int) *curveCache {
	return &curveCache{size: size, entries: make(map[string][]float64)}
}

func (c *curveCache) get(key string) ([]float64, bool) {
	if c.size <= 0 {
		return nil, false
	}
	v, ok := c.entries[key]

	return v, ok
}

func (c *curveCache) put(key string, curve []float64) {
	if c.size <= 0 {
		return
	}
	if _, ok := c.entries[key]; ok {
		c.entries[key] = curve

		return
	}
	if len(c.order) >= c.size {
		oldest := c.order[0]
		c.order = slices.Delete(c.order, 0, 1)
		delete(c.entries, oldest)
	}
	c.entries[key] = curve
	c.order = append(c.order, key)
}

func (c *curveCache) len() int { return len(c.entries) }

func (c *curveCache) reset() {
	clear(c.entries)
	c.order = c.order[:0]
}
