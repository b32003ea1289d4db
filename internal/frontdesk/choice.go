package frontdesk

import (
	"fmt"
	"strings"
)

// Choice is a Yes/No/Any answer to an attribute filter.
type Choice int

const (
	Any Choice = iota
	Yes
	No
)

// ParseChoice accepts any, yes or no in any case.
func ParseChoice(s string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return Any, nil
	case "yes", "y":
		return Yes, nil
	case "no", "n":
		return No, nil
	}
	return Any, fmt.Errorf("%w: %q", ErrInvalidChoice, s)
}

// Want converts the choice to a room filter; Any means no constraint.
func (c Choice) Want() *bool {
	switch c {
	case Yes:
		v := true
		return &v
	case No:
		v := false
		return &v
	}
	return nil
}

func (c Choice) String() string {
	switch c {
	case Yes:
		return "yes"
	case No:
		return "no"
	}
	return "any"
}
