package sqlgen

import "fmt"

// UnsupportedConstructError reports a filter construct that parses fine but
// has no SQL translation in the chosen dialect, such as relationship
// traversal or the has operator.
type UnsupportedConstructError struct {
	Construct string
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("sqlgen: cannot translate %s to SQL", e.Construct)
}

// UnknownFunctionError reports a call to a function outside the OData
// catalog.
type UnknownFunctionError struct {
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("sqlgen: unknown function %q", e.Name)
}

// ArgumentError reports a call with the wrong number or shape of arguments.
type ArgumentError struct {
	Func    string
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("sqlgen: %s: %s", e.Func, e.Message)
}

func unsupported(format string, args ...any) error {
	return &UnsupportedConstructError{Construct: fmt.Sprintf(format, args...)}
}

func argErr(fn, format string, args ...any) error {
	return &ArgumentError{Func: fn, Message: fmt.Sprintf(format, args...)}
}
