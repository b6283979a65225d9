package layouts

import "errors"

var (
	ErrLayoutNotFound     = errors.New("layout not found")
	ErrElementNotFound    = errors.New("element not found")
	ErrDuplicateElementID = errors.New("duplicate element id")
	ErrInvalidElement     = errors.New("invalid element")
	ErrKindImmutable      = errors.New("element kind cannot be changed")
	ErrUnknownKind        = errors.New("unknown element kind")
	ErrKindMismatch       = errors.New("properties do not match element kind")
	ErrElementLocked      = errors.New("element is locked")
	ErrInvalidGrid        = errors.New("invalid seat grid")
	ErrRowLabelOverflow   = errors.New("seat grid rows run past row Z")
	ErrDuplicateZoneID    = errors.New("duplicate price zone id")
	ErrZoneNotFound       = errors.New("price zone not found")
	ErrInvalidZone        = errors.New("invalid price zone")
	ErrInvalidStatus      = errors.New("invalid layout status transition")
)
