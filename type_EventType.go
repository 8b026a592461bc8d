package fifotax

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EventType is the kind of a transaction.
type EventType int

const (
	// Acquire opens a new lot.
	Acquire EventType = iota + 1
	// Dispose sells units against the oldest open lots. Its fee reduces the proceeds.
	Dispose
	// Exchange trades units of the asset for another asset. Only the disposal
	// of the source asset is accounted for.
	Exchange
)

func (t EventType) String() string {
	switch t {
	case Acquire:
		return "acquire"
	case Dispose:
		return "dispose"
	case Exchange:
		return "exchange"
	default:
		return "unknown"
	}
}

// IsValid reports whether t is one of the known event types.
func (t EventType) IsValid() bool {
	switch t {
	case Acquire, Dispose, Exchange:
		return true
	}
	return false
}

// ParseEventType parses a string into an EventType.
// The BUY, SELL and TRADE names are accepted as aliases.
func ParseEventType(s string) (EventType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "acquire", "buy":
		return Acquire, nil
	case "dispose", "sell":
		return Dispose, nil
	case "exchange", "trade":
		return Exchange, nil
	default:
		return 0, fmt.Errorf("unknown event type: %q", s)
	}
}

func (t EventType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *EventType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseEventType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
