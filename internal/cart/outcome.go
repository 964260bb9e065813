package cart

import (
	"errors"
	"fmt"
)

// Outcome is the result of a cart operation. Failures are outcomes, not errors.
type Outcome int

const (
	OutcomeNoop Outcome = iota
	OutcomeAdded
	OutcomeRemoved
	OutcomeUpdated
	OutcomeOutOfStock
	OutcomeAddFailed
	OutcomeRemoveFailed
	OutcomeUpdateFailed
)

var outcomeNames = map[Outcome]string{
	OutcomeNoop:         "noop",
	OutcomeAdded:        "added",
	OutcomeRemoved:      "removed",
	OutcomeUpdated:      "updated",
	OutcomeOutOfStock:   "out_of_stock",
	OutcomeAddFailed:    "add_failed",
	OutcomeRemoveFailed: "remove_failed",
	OutcomeUpdateFailed: "update_failed",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(b []byte) error {
	for k, v := range outcomeNames {
		if v == string(b) {
			*o = k
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", string(b))
}

// OK reports whether the operation committed a new cart.
func (o Outcome) OK() bool {
	return o == OutcomeAdded || o == OutcomeRemoved || o == OutcomeUpdated
}

type op string

const (
	opAdd    op = "add"
	opRemove op = "remove"
	opUpdate op = "update"
)

func (o op) failed() Outcome {
	switch o {
	case opAdd:
		return OutcomeAddFailed
	case opRemove:
		return OutcomeRemoveFailed
	default:
		return OutcomeUpdateFailed
	}
}

func outcomeOf(o op, err error) Outcome {
	if errors.Is(err, ErrOutOfStock) {
		return OutcomeOutOfStock
	}
	return o.failed()
}
