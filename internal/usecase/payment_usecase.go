package usecase

import (
	"campusedge_payments/internal/domain/entities"
	"campusedge_payments/internal/usecase/interfaces"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrMissingPaymentFields   = errors.New("studentId and amount required")
	ErrMissingPaymentID       = errors.New("paymentId required")
	ErrPaymentNotFound        = errors.New("payment not found")
	ErrPaymentAlreadyApproved = errors.New("payment already approved")
	ErrPaymentStateConflict   = errors.New("payment status changed concurrently")
	ErrPersistenceUnavailable = errors.New("payment store unavailable")
)

const (
	ledgerApprovedMarker = "APPROVED"
	ledgerTimeLayout     = "2006-01-02T15:04:05.000Z07:00"
	approvalSMSTemplate  = "Your payment of ₦%s has been received and approved. - CampusEdge"
)

// Statuses from which an agent approval may be (re)applied. approved is
// excluded so the terminal status never regresses.
var agentApprovableStatuses = []entities.PaymentStatus{
	entities.PaymentStatusPendingAgent,
	entities.PaymentStatusPendingAdmin,
	entities.PaymentStatusApprovedByAgent,
}

// SubmitPaymentInput carries a new payment as received from an agent or the web client.
type SubmitPaymentInput struct {
	StudentID string
	Amount    float64
	Agent     string
	Source    string
	Phone     string
}

// IPaymentUseCase is the payment lifecycle controller.
//
//   - Submit        => pending_agent (source agent) or pending_admin
//   - AgentApprove  => approved_by_agent
//   - AdminApprove  => approved (+ ledger row, optional SMS)

type IPaymentUseCase interface {
	Submit(ctx context.Context, in SubmitPaymentInput) (entities.Payment, error)
	AgentApprove(ctx context.Context, paymentID, agent string) (entities.Payment, error)
	AdminApprove(ctx context.Context, paymentID, adminNote, notifyPhone string) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
}

type PaymentUseCase struct {
	repo       interfaces.IPaymentRepository
	ledger     interfaces.ILedgerNotifier
	sms        interfaces.ISMSNotifier
	dispatcher interfaces.IDispatcher
	log        logrus.FieldLogger
	now        func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

// NewPaymentUseCase wires the controller. ledger and sms may be nil, in which
// case the corresponding side effect is skipped.
func NewPaymentUseCase(
	repo interfaces.IPaymentRepository,
	ledger interfaces.ILedgerNotifier,
	sms interfaces.ISMSNotifier,
	dispatcher interfaces.IDispatcher,
	log logrus.FieldLogger,
) *PaymentUseCase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PaymentUseCase{
		repo:       repo,
		ledger:     ledger,
		sms:        sms,
		dispatcher: dispatcher,
		log:        log,
		now:        time.Now,
	}
}

func (u *PaymentUseCase) Submit(ctx context.Context, in SubmitPaymentInput) (entities.Payment, error) {
	in.StudentID = strings.TrimSpace(in.StudentID)
	if in.StudentID == "" || in.Amount == 0 {
		u.log.Warnf("[payment][usecase] submit rejected: missing fields student_id=%q amount=%v", in.StudentID, in.Amount)
		return entities.Payment{}, ErrMissingPaymentFields
	}

	source := entities.NormalizePaymentSource(strings.TrimSpace(in.Source))
	p := entities.Payment{
		StudentID: in.StudentID,
		Amount:    in.Amount,
		Agent:     strings.TrimSpace(in.Agent),
		Source:    source,
		Status:    source.InitialStatus(),
	}
	if in.Phone != "" {
		u.log.Debugf("[payment][usecase] submit phone provided student_id=%s (not persisted)", in.StudentID)
	}
	u.log.Infof("[payment][usecase] submit start student_id=%s source=%s status=%s", p.StudentID, p.Source, p.Status)

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		u.log.Errorf("[payment][usecase] repository create failed student_id=%s err=%v", p.StudentID, err)
		return entities.Payment{}, fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
	}
	u.log.Infof("[payment][usecase] submit success payment_id=%s status=%s", created.ID, created.Status)

	u.dispatchLedgerRow("ledger.payment-submitted", []any{
		u.timestamp(),
		created.StudentID,
		created.Agent,
		created.Amount,
		string(created.Status),
		string(created.Source),
	})

	return created, nil
}

func (u *PaymentUseCase) AgentApprove(ctx context.Context, paymentID, agent string) (entities.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return entities.Payment{}, ErrMissingPaymentID
	}
	u.log.Infof("[payment][usecase] agent-approve start payment_id=%s agent=%q", paymentID, agent)

	current, err := u.repo.GetByID(ctx, paymentID)
	if err != nil {
		u.log.Errorf("[payment][usecase] repository get failed payment_id=%s err=%v", paymentID, err)
		return entities.Payment{}, fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
	}
	if current.ID == "" {
		u.log.Warnf("[payment][usecase] agent-approve not-found payment_id=%s", paymentID)
		return entities.Payment{}, ErrPaymentNotFound
	}
	if current.Status.IsTerminal() {
		u.log.Warnf("[payment][usecase] agent-approve rejected payment_id=%s status=%s", paymentID, current.Status)
		return entities.Payment{}, ErrPaymentAlreadyApproved
	}

	upd := entities.PaymentUpdate{
		Status:      entities.PaymentStatusApprovedByAgent,
		AllowedFrom: agentApprovableStatuses,
	}
	if agent = strings.TrimSpace(agent); agent != "" {
		upd.Agent = &agent
	}

	updated, err := u.repo.Update(ctx, paymentID, upd)
	if err != nil {
		u.log.Errorf("[payment][usecase] repository update failed payment_id=%s err=%v", paymentID, err)
		return entities.Payment{}, fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
	}
	if updated.ID == "" {
		// Status moved to approved between the read and the guarded write.
		u.log.Warnf("[payment][usecase] agent-approve conflict payment_id=%s", paymentID)
		return entities.Payment{}, ErrPaymentStateConflict
	}
	u.log.Infof("[payment][usecase] agent-approve success payment_id=%s agent=%q", updated.ID, updated.Agent)
	return updated, nil
}

// AdminApprove marks the payment approved from whatever status it is in.
// It does not require approved_by_agent first.
func (u *PaymentUseCase) AdminApprove(ctx context.Context, paymentID, adminNote, notifyPhone string) (entities.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return entities.Payment{}, ErrMissingPaymentID
	}
	u.log.Infof("[payment][usecase] admin-approve start payment_id=%s notify=%t", paymentID, notifyPhone != "")

	upd := entities.PaymentUpdate{Status: entities.PaymentStatusApproved}
	if adminNote != "" {
		upd.AdminNote = &adminNote
	}

	updated, err := u.repo.Update(ctx, paymentID, upd)
	if err != nil {
		u.log.Errorf("[payment][usecase] repository update failed payment_id=%s err=%v", paymentID, err)
		return entities.Payment{}, fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
	}
	if updated.ID == "" {
		u.log.Warnf("[payment][usecase] admin-approve not-found payment_id=%s", paymentID)
		return entities.Payment{}, ErrPaymentNotFound
	}
	u.log.Infof("[payment][usecase] admin-approve success payment_id=%s", updated.ID)

	u.dispatchLedgerRow("ledger.payment-approved", []any{
		u.timestamp(),
		updated.ID,
		ledgerApprovedMarker,
		updated.Amount,
		updated.StudentID,
	})

	notifyPhone = strings.TrimSpace(notifyPhone)
	if notifyPhone != "" && u.sms != nil && u.dispatcher != nil && u.sms.Configured() {
		message := fmt.Sprintf(approvalSMSTemplate, formatAmount(updated.Amount))
		id := updated.ID
		u.dispatcher.Dispatch("sms.payment-approved", func(ctx context.Context) error {
			delivery, err := u.sms.Send(ctx, notifyPhone, message)
			if err != nil {
				return err
			}
			u.log.Infof("[payment][usecase] approval sms sent payment_id=%s ok=%t", id, delivery.OK)
			return nil
		})
	}

	return updated, nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrMissingPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) dispatchLedgerRow(name string, row []any) {
	if u.ledger == nil || u.dispatcher == nil {
		return
	}
	u.dispatcher.Dispatch(name, func(ctx context.Context) error {
		return u.ledger.AppendRow(ctx, row)
	})
}

func (u *PaymentUseCase) timestamp() string {
	return u.now().UTC().Format(ledgerTimeLayout)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
