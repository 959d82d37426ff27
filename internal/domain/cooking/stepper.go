// Package cooking holds the cooking-mode step navigation and the scoped
// keep-awake lease held while cooking mode is active.
package cooking

import "fmt"

// Stepper walks a recipe's steps without wraparound.
type Stepper struct {
	steps   []string
	current int
}

// NewStepper starts at step 0. A recipe without steps yields a stepper whose
// navigation is a no-op.
func NewStepper(steps []string) *Stepper {
	return &Stepper{steps: append([]string{}, steps...)}
}

// Next advances one step, clamped at the last step.
func (s *Stepper) Next() int {
	s.current = min(s.current+1, s.last())
	return s.current
}

// Previous goes back one step, clamped at 0.
func (s *Stepper) Previous() int {
	s.current = max(s.current-1, 0)
	return s.current
}

// Current is the zero-based index of the displayed step.
func (s *Stepper) Current() int { return s.current }

// Total is the number of steps.
func (s *Stepper) Total() int { return len(s.steps) }

// Step returns the text of the current step, or "" when there are none.
func (s *Stepper) Step() string {
	if len(s.steps) == 0 {
		return ""
	}
	return s.steps[s.current]
}

func (s *Stepper) IsFirst() bool { return s.current == 0 }
func (s *Stepper) IsLast() bool  { return s.current == s.last() }

// Position renders "n / total" with a one-based n.
func (s *Stepper) Position() string {
	if len(s.steps) == 0 {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", s.current+1, len(s.steps))
}

func (s *Stepper) last() int {
	return max(len(s.steps)-1, 0)
}
