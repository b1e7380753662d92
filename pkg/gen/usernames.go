// Package gen fabricates synthetic interaction logs for demos and load
// testing. All randomness flows from an explicit seed so generated data is
// reproducible.
package gen

import (
	"math/rand"
	"strconv"
	"sync"

	"github.com/cohortgraph/cohort/pkg/parallel"
)

var prefixes = []string{
	"dark", "shadow", "light", "blue", "red", "green", "gold", "silver",
	"phantom", "ninja", "stealth", "epic", "legend", "super", "mega",
}

var suffixes = []string{
	"warrior", "hunter", "mage", "slayer", "knight", "rogue", "wizard",
	"assassin", "lord", "king", "queen", "master", "pro", "noob", "gamer",
}

// UsernameGenerator produces unique synthetic usernames from a fixed seed.
type UsernameGenerator struct {
	seed int64
}

// NewUsernameGenerator creates a generator. The same seed always yields the
// same batches.
func NewUsernameGenerator(seed int64) *UsernameGenerator {
	return &UsernameGenerator{seed: seed}
}

func drawName(rng *rand.Rand) string {
	prefix := prefixes[rng.Intn(len(prefixes))]
	suffix := suffixes[rng.Intn(len(suffixes))]
	num := rng.Intn(998) + 1
	return prefix + suffix + strconv.Itoa(num)
}

// UniqueBatch generates count distinct usernames. Candidate streams are
// produced in parallel, one deterministic sub-stream per worker slot, then
// merged in slot order so the result does not depend on scheduling. Shortfall
// from duplicate candidates is topped up sequentially.
func (ug *UsernameGenerator) UniqueBatch(count int, pool *parallel.WorkerPool) []string {
	if count <= 0 {
		return nil
	}

	slots := pool.Workers()
	perSlot := (count + slots - 1) / slots
	chunks := make([][]string, slots)

	var wg sync.WaitGroup
	for i := 0; i < slots; i++ {
		slot := i
		wg.Add(1)
		task := func() {
			defer wg.Done()
			rng := rand.New(rand.NewSource(ug.seed + int64(slot)))
			names := make([]string, perSlot)
			for j := range names {
				names[j] = drawName(rng)
			}
			chunks[slot] = names
		}
		if !pool.Submit(task) {
			task()
		}
	}
	wg.Wait()

	used := make(map[string]struct{}, count)
	out := make([]string, 0, count)
	for _, chunk := range chunks {
		for _, name := range chunk {
			if len(out) == count {
				return out
			}
			if _, dup := used[name]; dup {
				continue
			}
			used[name] = struct{}{}
			out = append(out, name)
		}
	}

	// Duplicates left a shortfall; draw the remainder from a dedicated
	// top-up stream.
	rng := rand.New(rand.NewSource(ug.seed - 1))
	for len(out) < count {
		name := drawName(rng)
		if _, dup := used[name]; dup {
			continue
		}
		used[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
