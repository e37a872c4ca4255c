package skin

import (
	"errors"
	"fmt"
)

var (
	// ErrElementTypeRequired indicates a registration without a declaring type.
	ErrElementTypeRequired = errors.New("skin: element type must be provided")
	// ErrNameRequired indicates a registration without a name.
	ErrNameRequired = errors.New("skin: name must be provided")
	// ErrSubcontrolOverflow indicates a type family ran out of subcontrol codes.
	ErrSubcontrolOverflow = errors.New("skin: subcontrol codes exhausted")
	// ErrStateNotSingleBit indicates a state value with zero or several bits.
	ErrStateNotSingleBit = errors.New("skin: state must be a single bit")
	// ErrStateOutOfRange indicates a state bit outside the permitted window.
	ErrStateOutOfRange = errors.New("skin: state outside permitted range")
	// ErrStateConflict indicates a name or bit already registered differently.
	ErrStateConflict = errors.New("skin: state already registered")
)

// RegistrationError carries the registration that was rejected.
type RegistrationError struct {
	Type  string
	Name  string
	Value uint16
	Err   error
}

func (e *RegistrationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("skin: register %s::%s (0x%04x): %v", e.Type, e.Name, e.Value, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func registrationError(t *ElementType, name string, value uint16, err error) error {
	typeName := "<nil>"
	if t != nil {
		typeName = t.name
	}
	return &RegistrationError{
		Type:  typeName,
		Name:  name,
		Value: value,
		Err:   err,
	}
}
