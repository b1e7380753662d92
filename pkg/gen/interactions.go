package gen

import (
	"encoding/csv"
	"errors"
	"io"
	"math/rand"
	"strconv"
)

// MaxWeight is the largest weight a synthetic interaction carries.
const MaxWeight = 20

// WriteInteractionLog writes count random interaction rows between the given
// users as CSV (source, target, weight). Self-interactions are allowed, as
// are repeated pairs; repeats exercise the builder's weight aggregation.
func WriteInteractionLog(w io.Writer, users []string, count int, rng *rand.Rand) error {
	if len(users) == 0 {
		return errors.New("no users to interact")
	}

	cw := csv.NewWriter(w)
	for i := 0; i < count; i++ {
		source := users[rng.Intn(len(users))]
		target := users[rng.Intn(len(users))]
		weight := rng.Intn(MaxWeight) + 1
		if err := cw.Write([]string{source, target, strconv.Itoa(weight)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
