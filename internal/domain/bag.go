package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// BagLocationType tags the variant of a BagLocation.
type BagLocationType string

const (
	LocationCheckIn  BagLocationType = "check-in"
	LocationSecurity BagLocationType = "security"
	LocationGate     BagLocationType = "gate"
	LocationLoaded   BagLocationType = "loaded"
)

// BagLocation is a closed sum over the baggage pipeline stages. Only the
// fields of the active variant are meaningful: Terminal and Counter at
// check-in, Gate at the gate, Flight once loaded.
type BagLocation struct {
	Type     BagLocationType
	Terminal string
	Counter  int
	Gate     string
	Flight   string
}

// CheckInLocation builds the initial location for a newly checked bag.
func CheckInLocation(terminal string, counter int) BagLocation {
	return BagLocation{Type: LocationCheckIn, Terminal: terminal, Counter: counter}
}

// SecurityLocation places a bag in security screening.
func SecurityLocation() BagLocation {
	return BagLocation{Type: LocationSecurity}
}

// GateLocation places a bag at a departure gate.
func GateLocation(gate string) BagLocation {
	return BagLocation{Type: LocationGate, Gate: gate}
}

// LoadedLocation marks a bag as loaded on a flight.
func LoadedLocation(flight string) BagLocation {
	return BagLocation{Type: LocationLoaded, Flight: flight}
}

type checkInPayload struct {
	Type     BagLocationType `json:"type"`
	Terminal string          `json:"terminal"`
	Counter  int             `json:"counter"`
}

type securityPayload struct {
	Type BagLocationType `json:"type"`
}

type gatePayload struct {
	Type BagLocationType `json:"type"`
	Gate string          `json:"gate"`
}

type loadedPayload struct {
	Type   BagLocationType `json:"type"`
	Flight string          `json:"flight"`
}

// MarshalJSON encodes only the active variant's payload.
func (l BagLocation) MarshalJSON() ([]byte, error) {
	switch l.Type {
	case LocationCheckIn:
		return json.Marshal(checkInPayload{Type: l.Type, Terminal: l.Terminal, Counter: l.Counter})
	case LocationSecurity:
		return json.Marshal(securityPayload{Type: l.Type})
	case LocationGate:
		return json.Marshal(gatePayload{Type: l.Type, Gate: l.Gate})
	case LocationLoaded:
		return json.Marshal(loadedPayload{Type: l.Type, Flight: l.Flight})
	}
	return nil, fmt.Errorf("unknown bag location type %q", l.Type)
}

// UnmarshalJSON decodes a tagged location object, rejecting unknown tags.
func (l *BagLocation) UnmarshalJSON(data []byte) error {
	var tag struct {
		Type BagLocationType `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	switch tag.Type {
	case LocationCheckIn:
		var p checkInPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*l = BagLocation{Type: p.Type, Terminal: p.Terminal, Counter: p.Counter}
	case LocationSecurity:
		*l = BagLocation{Type: LocationSecurity}
	case LocationGate:
		var p gatePayload
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*l = BagLocation{Type: p.Type, Gate: p.Gate}
	case LocationLoaded:
		var p loadedPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*l = BagLocation{Type: p.Type, Flight: p.Flight}
	default:
		return fmt.Errorf("unknown bag location type %q", tag.Type)
	}
	return nil
}

// Bag is a checked item of baggage keyed by its owner's ticket number.
type Bag struct {
	ID        int64
	Ticket    int64
	Location  BagLocation
	Version   int
	CreatedAt time.Time
}
