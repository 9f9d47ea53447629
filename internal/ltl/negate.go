package ltl

// NNF normalizes phi so that negation appears only on variables,
// rewriting any internal Not via Negate and otherwise recursing
// structurally. Tableau requires this shape (its own Not case rejects
// anything but a Var child).
func NNF(phi Formula) Formula {
	switch f := phi.(type) {
	case Top, Bottom, Var:
		return f
	case Not:
		return Negate(f.X)
	case And:
		return And{X: NNF(f.X), Y: NNF(f.Y)}
	case Or:
		return Or{X: NNF(f.X), Y: NNF(f.Y)}
	case Iff:
		return Iff{X: NNF(f.X), Y: NNF(f.Y)}
	case Next:
		return Next{X: NNF(f.X)}
	case Future:
		return Future{X: NNF(f.X)}
	case Globally:
		return Globally{X: NNF(f.X)}
	case Until:
		return Until{X: NNF(f.X), Y: NNF(f.Y)}
	case Release:
		return Release{X: NNF(f.X), Y: NNF(f.Y)}
	default:
		return f
	}
}

// Negate returns NNF(¬phi), pushing the negation to the leaves via De
// Morgan's laws and the future/globally, until/release dualities
// (¬Fϕ ≡ G¬ϕ, ¬(ϕ U ψ) ≡ ¬ϕ R ¬ψ) rather than wrapping the whole tree
// in a single Not, per the NNF requirement in the LTL formula tree.
func Negate(phi Formula) Formula {
	switch f := phi.(type) {
	case Top:
		return Bottom{}
	case Bottom:
		return Top{}
	case Var:
		return Not{X: f}
	case Not:
		return NNF(f.X)
	case And:
		return Or{X: Negate(f.X), Y: Negate(f.Y)}
	case Or:
		return And{X: Negate(f.X), Y: Negate(f.Y)}
	case Iff:
		// ¬(X↔Y) ≡ X↔¬Y
		return Iff{X: NNF(f.X), Y: Negate(f.Y)}
	case Next:
		return Next{X: Negate(f.X)}
	case Future:
		return Globally{X: Negate(f.X)}
	case Globally:
		return Future{X: Negate(f.X)}
	case Until:
		return Release{X: Negate(f.X), Y: Negate(f.Y)}
	case Release:
		return Until{X: Negate(f.X), Y: Negate(f.Y)}
	default:
		return Not{X: f}
	}
}
