package layouts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateElement checks geometry and the kind-specific payload rules.
func ValidateElement(el LayoutElement) error {
	if err := validate.Struct(el); err != nil {
		return fmt.Errorf("%w %s: %s", ErrInvalidElement, el.ID, describe(err))
	}

	switch p := el.Properties.(type) {
	case SeatProps:
		if !p.Status.IsValid() {
			return fmt.Errorf("%w %s: unknown seat status %q", ErrInvalidElement, el.ID, p.Status)
		}
		if p.Number < 0 {
			return fmt.Errorf("%w %s: seat number must not be negative", ErrInvalidElement, el.ID)
		}
	case StandingAreaProps:
		if p.Capacity < 0 {
			return fmt.Errorf("%w %s: standing capacity must not be negative", ErrInvalidElement, el.ID)
		}
	case RowProps:
		if p.SeatCount < 0 {
			return fmt.Errorf("%w %s: row seat count must not be negative", ErrInvalidElement, el.ID)
		}
	case WallProps:
		if p.Thickness < 0 {
			return fmt.Errorf("%w %s: wall thickness must not be negative", ErrInvalidElement, el.ID)
		}
	case LabelProps:
		if p.FontSize < 0 {
			return fmt.Errorf("%w %s: font size must not be negative", ErrInvalidElement, el.ID)
		}
	case SectionProps, StageProps, ShapeProps, EntranceProps:
	default:
		return fmt.Errorf("%w %s: %w", ErrInvalidElement, el.ID, ErrUnknownKind)
	}
	return nil
}

// ValidatePriceZone checks the zone's field rules.
func ValidatePriceZone(z PriceZone) error {
	if err := validate.Struct(z); err != nil {
		return fmt.Errorf("%w %s: %s", ErrInvalidZone, z.ID, describe(err))
	}
	return nil
}

// ValidateCanvas checks the canvas settings.
func ValidateCanvas(c CanvasSettings) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid canvas settings: %s", describe(err))
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return strings.Join(parts, ", ")
}
