// Package field binds the mask state machine, the keystroke admission filters
// and the validation rules to a single input field.
//
// A Binding consumes change events in the shape an interactive text field
// reports them and produces the text the field should display together with
// the current verdict. Configuration errors surface from New; Change never
// fails.
package field
