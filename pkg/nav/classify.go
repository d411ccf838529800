package nav

import "fmt"

// Class is the visual state of one hotspot
type Class int

const (
	Neutral Class = iota
	IsStart
	IsDestination
)

func (c Class) String() string {
	switch c {
	case IsStart:
		return "is-start"
	case IsDestination:
		return "is-destination"
	}
	return "neutral"
}

// MarshalText lets classes appear as their names in JSON
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Classify returns the class of the location with id under s. It looks only
// at id and the ids of the two slots. When the same location fills both
// slots it is classified IsStart.
func Classify(id string, s Selection) Class {
	switch {
	case s.start != nil && s.start.ID == id:
		return IsStart
	case s.destination != nil && s.destination.ID == id:
		return IsDestination
	default:
		return Neutral
	}
}

// UnmarshalText parses a class name written by MarshalText
func (c *Class) UnmarshalText(text []byte) error {
	switch string(text) {
	case "is-start":
		*c = IsStart
	case "is-destination":
		*c = IsDestination
	case "neutral":
		*c = Neutral
	default:
		return fmt.Errorf("unknown hotspot class %q", text)
	}
	return nil
}
