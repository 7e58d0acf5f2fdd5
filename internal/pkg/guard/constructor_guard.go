// Package guard implements a defensive construction pattern for value
// objects and commands: a zero-value struct fails validation until it has
// been created through its designated constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller did not
// supply its own validation error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes properly constructed domain objects from
// zero values. Embed one in a struct, set it with NewConstructorGuard inside
// the constructor, and have the struct's Validate method delegate here.
//
// Example:
//
//	type Pincode struct {
//	    value string
//	    guard guard.ConstructorGuard
//	}
//
//	func (p Pincode) Validate() error {
//	    return p.guard.Validate(ErrPincodeIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed. Call it only
// from within a constructor function.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a guard created via NewConstructorGuard.
// For a zero-value guard it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
