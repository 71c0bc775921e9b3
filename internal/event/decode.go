package event

import "encoding/json"

// DecodePayload converts an event payload into T. Payloads published through
// the in-process bus are already the right struct and pass the cheap type
// assertion; anything else goes through a JSON round trip.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
