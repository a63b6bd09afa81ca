package magiclink

import "encoding/json"

func marshalTicket(t Ticket) (string, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalTicket(payload string) (Ticket, error) {
	var t Ticket
	if err := json.Unmarshal([]byte(payload), &t); err != nil {
		return Ticket{}, err
	}
	return t, nil
}
