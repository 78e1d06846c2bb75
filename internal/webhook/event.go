package webhook

import (
	"encoding/json"
	"errors"
)

// Event is the decoded form of an identity provider webhook. The payload is
// decoded exactly once, at the boundary, into one of the variants below.
type Event interface {
	isEvent()
}

type UserCreated struct {
	UserID string
	Email  string
}

type UserUpdated struct {
	UserID string
	Email  string
}

type UserDeleted struct {
	UserID string
}

// Unknown covers event types this service does not handle. They are
// acknowledged and ignored so new provider event types never break ingestion.
type Unknown struct {
	Type string
	Raw  json.RawMessage
}

func (UserCreated) isEvent() {}
func (UserUpdated) isEvent() {}
func (UserDeleted) isEvent() {}
func (Unknown) isEvent()     {}

type emailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

type userData struct {
	ID                    string         `json:"id"`
	PrimaryEmailAddressID string         `json:"primary_email_address_id"`
	EmailAddresses        []emailAddress `json:"email_addresses"`
}

func (d userData) primaryEmail() string {
	for _, addr := range d.EmailAddresses {
		if addr.ID == d.PrimaryEmailAddressID {
			return addr.EmailAddress
		}
	}
	return ""
}

// ParseEvent decodes a verified payload into an Event.
func ParseEvent(payload []byte) (Event, error) {
	var envelope struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, err
	}

	switch envelope.Type {
	case "user.created", "user.updated":
		var data userData
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			return nil, err
		}
		if data.ID == "" {
			return nil, errors.New("user event is missing the user id")
		}
		if envelope.Type == "user.created" {
			return UserCreated{UserID: data.ID, Email: data.primaryEmail()}, nil
		}
		return UserUpdated{UserID: data.ID, Email: data.primaryEmail()}, nil
	case "user.deleted":
		var data userData
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			return nil, err
		}
		if data.ID == "" {
			return nil, errors.New("user event is missing the user id")
		}
		return UserDeleted{UserID: data.ID}, nil
	default:
		return Unknown{Type: envelope.Type, Raw: envelope.Data}, nil
	}
}
