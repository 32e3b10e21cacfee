package analysis

import (
	"fmt"
	"strings"
)

// Kind is the inferred statistical type of a column. The zero value is not a valid kind.
type Kind int

const (
	Categorical Kind = iota + 1
	Continuous
	Discrete
)

// Kinds lists the valid kinds in report order.
var Kinds = []Kind{Categorical, Continuous, Discrete}

func (k Kind) String() string {
	switch k {
	case Categorical:
		return "categorical"
	case Continuous:
		return "continuous"
	case Discrete:
		return "discrete"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the three kinds.
func (k Kind) Valid() bool {
	return k == Categorical || k == Continuous || k == Discrete
}

// Numeric reports whether statistics apply to the kind.
func (k Kind) Numeric() bool {
	return k == Continuous || k == Discrete
}

// ParseKind accepts the String form of a kind, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "categorical", "cat":
		return Categorical, nil
	case "continuous", "cont":
		return Continuous, nil
	case "discrete", "disc":
		return Discrete, nil
	}
	return 0, fmt.Errorf("unknown kind %q (use categorical|continuous|discrete)", s)
}
