// Package xerr provides a constant, comparable error type shared by the
// account, storage and engine packages.
package xerr

// ConstError is an error type that can be declared as a package-level
// constant, so sentinel errors stay comparable (and errors.Is-able) across
// package boundaries without an init-time allocation.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}
