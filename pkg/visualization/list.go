package visualization

import (
	"fmt"
	"io"
)

// List is a model for labelled line-oriented data.
type List struct {
	elements []string
	label    string
}

// NewList creates a new model of data representation.
func NewList(elements []string, label string) *List {
	return &List{
		elements,
		label,
	}
}

// PrintList prints the elements of the list, each prefixed with its label.
func PrintList(w io.Writer, list *List) {
	for _, value := range list.elements {
		fmt.Fprintln(w, list.label+value)
	}
}

// PrintExperimentID prints the experiment identifier header shown above
// rendered results.
func PrintExperimentID(w io.Writer, experimentID string) {
	fmt.Fprintln(w, "\nExperiment id: "+experimentID)
}
