package vote

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-sod/knn2d/internal/neighbor"
)

type Mode string

const (
	ModeSimple   Mode = "SIMPLE"
	ModeWeighted Mode = "WEIGHTED"
)

var (
	ErrNoNeighbors  = errors.New("vote: no neighbors")
	ErrZeroDistance = errors.New("vote: distance too small for a finite weight")
	ErrUnknownMode  = errors.New("vote: unknown voting mode")
)

// ParseMode accepts mode names in any case, e.g. "weighted".
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case ModeSimple, ModeWeighted:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownMode, s)
	}
}

// Vote returns the predicted label. Ties always go to the smallest label.
func Vote(neighbors neighbor.Result, mode Mode) (int, error) {
	switch mode {
	case ModeSimple:
		return Simple(neighbors)
	case ModeWeighted:
		return Weighted(neighbors)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}

// Simple picks the label held by most neighbors.
func Simple(neighbors neighbor.Result) (int, error) {
	if len(neighbors) == 0 {
		return 0, ErrNoNeighbors
	}
	counts := make(map[int]float64, len(neighbors))
	for _, n := range neighbors {
		counts[n.Label]++
	}
	return best(counts), nil
}

// Weighted sums 1/d^2 per label and picks the heaviest. A neighbor whose
// weight is not finite (distance 0, or below about 1e-154) is an exact match:
// the first one in result order decides.
func Weighted(neighbors neighbor.Result) (int, error) {
	if len(neighbors) == 0 {
		return 0, ErrNoNeighbors
	}
	sums := make(map[int]float64, len(neighbors))
	for _, n := range neighbors {
		w, err := Weight(n.Distance)
		if errors.Is(err, ErrZeroDistance) {
			return n.Label, nil
		}
		sums[n.Label] += w
	}
	return best(sums), nil
}

// Weight returns 1/d^2, or ErrZeroDistance when that overflows, which
// includes d == 0.
func Weight(d float64) (float64, error) {
	w := 1 / (d * d)
	if math.IsInf(w, 0) {
		return 0, ErrZeroDistance
	}
	return w, nil
}

func best(scores map[int]float64) int {
	winner, top, found := 0, 0.0, false
	for label, score := range scores {
		if !found || score > top || (score == top && label < winner) {
			winner, top, found = label, score, true
		}
	}
	return winner
}
