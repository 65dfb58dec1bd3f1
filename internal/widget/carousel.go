package widget

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCarousel is returned when a carousel has no items to cycle.
	ErrEmptyCarousel = errors.New("widget: carousel has no items")
	// ErrOutOfRange is returned when a target index is not in [0, ItemCount).
	ErrOutOfRange = errors.New("widget: carousel index out of range")
)

// State is the position of a carousel over a fixed-size list.
// The caller owns the timer; State only knows how to move.
type State struct {
	CurrentIndex int `json:"current_index"`
	ItemCount    int `json:"item_count"`
}

// NewState returns the initial state for a list of itemCount items.
func NewState(itemCount int) (State, error) {
	if itemCount < 1 {
		return State{}, ErrEmptyCarousel
	}
	return State{CurrentIndex: 0, ItemCount: itemCount}, nil
}

// Advance moves to the next item, wrapping after the last one.
func Advance(s State) (State, error) {
	if s.ItemCount < 1 {
		return s, ErrEmptyCarousel
	}
	return State{
		CurrentIndex: (s.CurrentIndex + 1) % s.ItemCount,
		ItemCount:    s.ItemCount,
	}, nil
}

// SetIndex jumps straight to target.
func SetIndex(s State, target int) (State, error) {
	if s.ItemCount < 1 {
		return s, ErrEmptyCarousel
	}
	if target < 0 || target >= s.ItemCount {
		return s, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, target, s.ItemCount)
	}
	return State{CurrentIndex: target, ItemCount: s.ItemCount}, nil
}

// Valid reports whether the state satisfies 0 <= CurrentIndex < ItemCount.
func (s State) Valid() bool {
	return s.ItemCount >= 1 && s.CurrentIndex >= 0 && s.CurrentIndex < s.ItemCount
}
