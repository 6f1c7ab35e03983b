package entities

import "encoding/json"

// SMSDelivery is the outcome of an SMS send request.
//
// Raw keeps the gateway response body as returned, for traceability.

type SMSDelivery struct {
	OK      bool            `json:"ok"`
	Message string          `json:"message,omitempty"`
	Raw     json.RawMessage `json:"raw,omitempty"`
}
