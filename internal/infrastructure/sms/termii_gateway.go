package sms

import (
	"bytes"
	"campusedge_payments/internal/domain/entities"
	"campusedge_payments/internal/usecase/interfaces"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	termiiSendPath       = "/api/sms/send"
	termiiMessageType    = "plain"
	termiiNotConfigured  = "TERMII not configured"
	defaultClientTimeout = 15 * time.Second
)

// TermiiGateway sends SMS through the Termii REST API.
//
// With no API key it reports itself unconfigured and Send returns a
// not-configured delivery without calling out. In mock mode nothing leaves
// the process and a synthetic delivery is returned.
type TermiiGateway struct {
	apiKey   string
	senderID string
	baseURL  string
	client   *http.Client
	mockMode bool
	log      logrus.FieldLogger
}

var _ interfaces.ISMSNotifier = (*TermiiGateway)(nil)

type termiiSendRequest struct {
	To   string `json:"to"`
	From string `json:"from"`
	SMS  string `json:"sms"`
	Type string `json:"type"`
}

func NewTermiiGateway(apiKey, senderID, baseURL string, mockMode bool, log logrus.FieldLogger) *TermiiGateway {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if mockMode {
		log.Infof("[sms][gateway] mock mode enabled")
	}
	return &TermiiGateway{
		apiKey:   apiKey,
		senderID: senderID,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: defaultClientTimeout},
		mockMode: mockMode,
		log:      log,
	}
}

func (g *TermiiGateway) Configured() bool {
	return g != nil && (g.mockMode || g.apiKey != "")
}

func (g *TermiiGateway) Send(ctx context.Context, to, message string) (entities.SMSDelivery, error) {
	if g != nil && g.mockMode {
		id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		raw, err := json.Marshal(map[string]any{
			"message_id": id,
			"message":    "Successfully Sent",
			"to":         to,
			"mock":       true,
		})
		if err != nil {
			return entities.SMSDelivery{}, err
		}
		g.log.Infof("[sms][gateway] mock send to=%s message_id=%s len=%d", to, id, len(message))
		return entities.SMSDelivery{OK: true, Message: "mock", Raw: raw}, nil
	}

	if g == nil || g.apiKey == "" {
		return entities.SMSDelivery{OK: false, Message: termiiNotConfigured}, nil
	}

	body, err := json.Marshal(termiiSendRequest{To: to, From: g.senderID, SMS: message, Type: termiiMessageType})
	if err != nil {
		return entities.SMSDelivery{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+termiiSendPath, bytes.NewReader(body))
	if err != nil {
		return entities.SMSDelivery{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", g.apiKey)

	g.log.Debugf("[sms][gateway] send start to=%s", to)
	resp, err := g.client.Do(req)
	if err != nil {
		return entities.SMSDelivery{}, fmt.Errorf("termii send: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return entities.SMSDelivery{}, fmt.Errorf("termii read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return entities.SMSDelivery{}, fmt.Errorf("termii send: status=%d body=%s", resp.StatusCode, string(raw))
	}
	if !json.Valid(raw) {
		return entities.SMSDelivery{}, fmt.Errorf("termii send: response is not json")
	}

	var parsed struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &parsed)
	g.log.Infof("[sms][gateway] send success to=%s status=%d", to, resp.StatusCode)

	return entities.SMSDelivery{OK: true, Message: parsed.Message, Raw: raw}, nil
}
