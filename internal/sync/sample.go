package sync

import (
	"math/rand"
	"sort"

	"weread2notion/internal/platform/weread"
)

const (
	devLatest = 5
	devRandom = 30
)

// Sample picks the notebooks for a dev run: the last devLatest entries plus
// up to devRandom random ones from the rest. Input order is preserved.
func Sample(notebooks []weread.Notebook, rnd *rand.Rand) []weread.Notebook {
	if len(notebooks) <= devLatest {
		return notebooks
	}

	rest := len(notebooks) - devLatest
	picked := rnd.Perm(rest)
	if len(picked) > devRandom {
		picked = picked[:devRandom]
	}
	sort.Ints(picked)

	out := make([]weread.Notebook, 0, len(picked)+devLatest)
	for _, i := range picked {
		out = append(out, notebooks[i])
	}
	return append(out, notebooks[rest:]...)
}
