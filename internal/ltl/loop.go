package ltl

// LoopKind tags the three loop hypotheses a (k,l)-path can carry, the
// same vocabulary internal/unroll uses for fairness.
type LoopKind uint8

const (
	// NoLoop means the path does not close into a cycle.
	NoLoop LoopKind = iota
	// FixedLoop means the path loops back to frame At.
	FixedLoop
	// AllLoops considers every admissible back-loop position at once.
	AllLoops
)

// Loop names which of the three hypotheses a bounded check is running
// under.
type Loop struct {
	Kind LoopKind
	At   int // valid only when Kind == FixedLoop
}

// NoLoopHypothesis is the loop value meaning "the path does not close".
var NoLoopHypothesis = Loop{Kind: NoLoop}

// FixedLoopAt returns the loop hypothesis "the path closes back to l".
func FixedLoopAt(l int) Loop { return Loop{Kind: FixedLoop, At: l} }

// AllLoopsHypothesis is the loop value considering every admissible l.
var AllLoopsHypothesis = Loop{Kind: AllLoops}

// succ implements the tableau's successor-time function: t+1 while
// still inside the bound, otherwise the loop target if one exists, or
// no successor at all.
func succ(t, k int, loop Loop) (next int, exists bool) {
	if t < k {
		return t + 1, true
	}
	if loop.Kind == FixedLoop {
		return loop.At, true
	}
	return 0, false
}
