package domain

import (
	"encoding/json"
	"testing"
)

func TestBagLocationJSONRoundTrip(t *testing.T) {
	t.Parallel()

	locations := []BagLocation{
		CheckInLocation("T1", 4),
		SecurityLocation(),
		GateLocation("B2"),
		LoadedLocation("KL1234"),
	}
	for _, location := range locations {
		data, err := json.Marshal(location)
		if err != nil {
			t.Fatalf("%s: marshal: %v", location.Type, err)
		}

		var decoded BagLocation
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("%s: unmarshal: %v", location.Type, err)
		}
		if decoded != location {
			t.Errorf("%s: round trip changed value: %+v != %+v", location.Type, decoded, location)
		}
	}
}

func TestBagLocationMarshalOmitsInactiveFields(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(SecurityLocation())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"type":"security"}` {
		t.Errorf("unexpected payload %s", data)
	}
}

func TestBagLocationUnmarshalRejectsUnknownTag(t *testing.T) {
	t.Parallel()

	var location BagLocation
	if err := json.Unmarshal([]byte(`{"type":"carousel"}`), &location); err == nil {
		t.Error("expected unknown tag to be rejected")
	}
}

func TestBagLocationMarshalRejectsZeroValue(t *testing.T) {
	t.Parallel()

	if _, err := json.Marshal(BagLocation{}); err == nil {
		t.Error("expected the untagged zero value to be rejected")
	}
}
