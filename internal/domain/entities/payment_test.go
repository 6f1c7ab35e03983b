package entities

import "testing"

func TestNormalizePaymentSource(t *testing.T) {
	cases := map[string]PaymentSource{
		"agent": PaymentSourceAgent,
		"web":   PaymentSourceWeb,
		"":      PaymentSourceWeb,
		"AGENT": PaymentSourceWeb,
		"other": PaymentSourceWeb,
	}
	for raw, want := range cases {
		if got := NormalizePaymentSource(raw); got != want {
			t.Fatalf("source %q: expected %s, got %s", raw, want, got)
		}
	}
}

func TestPaymentSource_InitialStatus(t *testing.T) {
	if got := PaymentSourceAgent.InitialStatus(); got != PaymentStatusPendingAgent {
		t.Fatalf("expected pending_agent, got %s", got)
	}
	if got := PaymentSourceWeb.InitialStatus(); got != PaymentStatusPendingAdmin {
		t.Fatalf("expected pending_admin, got %s", got)
	}
}

func TestPaymentUpdate_Permits(t *testing.T) {
	open := PaymentUpdate{Status: PaymentStatusApproved}
	if !open.Permits(PaymentStatusApproved) {
		t.Fatalf("update without guard should permit any status")
	}

	guarded := PaymentUpdate{
		Status:      PaymentStatusApprovedByAgent,
		AllowedFrom: []PaymentStatus{PaymentStatusPendingAgent, PaymentStatusPendingAdmin},
	}
	if !guarded.Permits(PaymentStatusPendingAgent) {
		t.Fatalf("expected pending_agent to be permitted")
	}
	if guarded.Permits(PaymentStatusApproved) {
		t.Fatalf("expected approved to be rejected")
	}
}

func TestPaymentUpdate_Apply(t *testing.T) {
	agent := "A1"
	p := Payment{ID: "p1", StudentID: "S1", Amount: 500, Agent: "A0", AdminNote: "keep", Status: PaymentStatusPendingAgent}

	got := PaymentUpdate{Status: PaymentStatusApprovedByAgent, Agent: &agent}.Apply(p)
	if got.Status != PaymentStatusApprovedByAgent || got.Agent != "A1" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got.AdminNote != "keep" || got.ID != "p1" || got.StudentID != "S1" || got.Amount != 500 {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if !PaymentStatusApproved.IsTerminal() || PaymentStatusApprovedByAgent.IsTerminal() {
		t.Fatalf("only approved is terminal")
	}
}
