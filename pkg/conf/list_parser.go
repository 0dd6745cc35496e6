package conf

import (
	"strings"

	"gopkg.in/alecthomas/kingpin.v2"
)

const stringListDelimiter = ","

// StringListValue is a custom kingpin parser which resolves flag
// parameters consisting of string slices delimited by stringListDelimiter.
// For instance for a flag defined like this:
// `flag = StringList(kingpin.Flag("flag_name", "help").Short("f"))`
//
// when the user specifies the options `-f=A,B,C -f=D,E,F` the `flag`
// variable becomes a slice with the items A,B,C,D,E,F.
type StringListValue []string

// Set parses the input string and appends the items to the slice.
// Implements kingpin.Value.
func (s *StringListValue) Set(value string) error {
	*s = append(*s, strings.Split(value, stringListDelimiter)...)
	return nil
}

// String returns the items joined back with the delimiter.
// Implements kingpin.Value.
func (s *StringListValue) String() string {
	return strings.Join(*s, stringListDelimiter)
}

// Get returns the accumulated slice. Implements kingpin.Getter.
func (s *StringListValue) Get() interface{} {
	return []string(*s)
}

// IsCumulative implements the optional kingpin interface for flags that
// can be repeated.
func (s *StringListValue) IsCumulative() bool {
	return true
}

// StringList is a helper for defining kingpin flags with StringListValue.
func StringList(s kingpin.Settings) (target *[]string) {
	target = new([]string)
	s.SetValue((*StringListValue)(target))
	return
}
