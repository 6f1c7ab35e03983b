package response

import (
	"encoding/json"
	"testing"
	"time"

	"campusedge_payments/internal/domain/entities"
)

func TestFromPayment(t *testing.T) {
	now := time.Now().UTC()
	p := entities.Payment{
		ID:        "fx_1",
		StudentID: "S1",
		Amount:    500,
		Agent:     "A1",
		Source:    entities.PaymentSourceAgent,
		Status:    entities.PaymentStatusApprovedByAgent,
		AdminNote: "ok",
		CreatedAt: now,
	}

	res := FromPayment(p)
	if res.ID != "fx_1" || res.StudentID != "S1" || res.Amount != 500 {
		t.Fatalf("unexpected identity fields: %+v", res)
	}
	if res.Source != "agent" || res.Status != "approved_by_agent" || res.Agent != "A1" || res.AdminNote != "ok" {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if !res.CreatedAt.Equal(now) {
		t.Fatalf("unexpected createdAt: %v", res.CreatedAt)
	}
}

func TestNewPaymentEnvelope_JSONShape(t *testing.T) {
	env := NewPaymentEnvelope(entities.Payment{ID: "fx_1", StudentID: "S1", Amount: 500, Source: entities.PaymentSourceWeb, Status: entities.PaymentStatusPendingAdmin})

	b, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var body map[string]any
	_ = json.Unmarshal(b, &body)
	if body["ok"] != true {
		t.Fatalf("expected ok=true, got %s", b)
	}
	payment, _ := body["payment"].(map[string]any)
	if payment["studentId"] != "S1" || payment["amount"] != float64(500) || payment["status"] != "pending_admin" {
		t.Fatalf("unexpected payment body: %s", b)
	}
	if _, ok := payment["agent"]; ok {
		t.Fatalf("empty agent should be omitted: %s", b)
	}
}
