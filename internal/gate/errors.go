package gate

import "fmt"

// UnmetError reports that a merged report does not satisfy every required
// outcome. It carries the full failure list so callers can print a summary
// and derive an exit code from the count.
type UnmetError struct {
	// Failures holds every unmet requirement in evaluation order.
	Failures []Failure
}

func (e *UnmetError) Error() string {
	return fmt.Sprintf("%d required outcome(s) unmet", len(e.Failures))
}
