// pkg/pipeline/state.go
package pipeline

import "fmt"

// State is a step of the forwarder build
type State int

const (
	StateInit State = iota
	StateStubObjectsCompiled
	StateImportLibrariesBuilt
	StateResourceCompiled
	StateLinked
	StatePublished
	StateFailed
)

var stateNames = map[State]string{
	StateInit:                 "Init",
	StateStubObjectsCompiled:  "StubObjectsCompiled",
	StateImportLibrariesBuilt: "ImportLibrariesBuilt",
	StateResourceCompiled:     "ResourceCompiled",
	StateLinked:               "Linked",
	StatePublished:            "Published",
	StateFailed:               "Failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// IsTerminal reports whether no further transition is possible
func (s State) IsTerminal() bool {
	return s == StatePublished || s == StateFailed
}

// next returns the only successor of s on the success path
func (s State) next() (State, bool) {
	if s >= StateInit && s < StatePublished {
		return s + 1, true
	}
	return s, false
}

// StepError reports the step that failed and why
type StepError struct {
	Step State // the state the pipeline was trying to reach
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
