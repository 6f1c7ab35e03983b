package handlers

import (
	"campusedge_payments/internal/adapter/http/dto/request"
	"campusedge_payments/internal/adapter/http/dto/response"
	"campusedge_payments/internal/usecase"
	"campusedge_payments/pkg"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var errInvalidPaymentPayload = pkg.NewDomainErrorSimple("invalid_request", "Invalid request", http.StatusBadRequest)

// PaymentHandler exposes the payment lifecycle over HTTP.
type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
	log     logrus.FieldLogger
}

func NewPaymentHandler(uc usecase.IPaymentUseCase, log logrus.FieldLogger) *PaymentHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PaymentHandler{usecase: uc, log: log}
}

// SubmitPayment godoc
// @Summary      Submit a payment
// @Description  Records a new payment. Agent submissions start in pending_agent, everything else in pending_admin.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        payment  body      request.SubmitPaymentRequest  true  "Payment"
// @Success      200      {object}  response.PaymentEnvelope
// @Failure      400      {object}  pkg.HTTPError
// @Failure      429      {object}  pkg.HTTPError
// @Failure      503      {object}  pkg.HTTPError
// @Failure      500      {object}  pkg.HTTPError
// @Router       /payment [post]
func (h *PaymentHandler) SubmitPayment(c *gin.Context) {
	var payload request.SubmitPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.log.Warnf("[payment][handler] submit invalid payload err=%v", err)
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.Submit(c.Request.Context(), payload.ToInput())
	if err != nil {
		h.renderError(c, "submit", err)
		return
	}
	c.JSON(http.StatusOK, response.NewPaymentEnvelope(created))
}

// AgentApprove godoc
// @Summary      Agent approval
// @Description  Marks a payment approved_by_agent. Approved payments cannot be moved back.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        approval  body      request.AgentApproveRequest  true  "Approval"
// @Success      200       {object}  response.PaymentEnvelope
// @Failure      400       {object}  pkg.HTTPError
// @Failure      404       {object}  pkg.HTTPError
// @Failure      409       {object}  pkg.HTTPError
// @Failure      503       {object}  pkg.HTTPError
// @Router       /agent/approve [post]
func (h *PaymentHandler) AgentApprove(c *gin.Context) {
	var payload request.AgentApproveRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.log.Warnf("[payment][handler] agent-approve invalid payload err=%v", err)
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	updated, err := h.usecase.AgentApprove(c.Request.Context(), payload.PaymentID, payload.Agent)
	if err != nil {
		h.renderError(c, "agent-approve", err)
		return
	}
	c.JSON(http.StatusOK, response.NewPaymentEnvelope(updated))
}

// AdminApprove godoc
// @Summary      Admin approval
// @Description  Marks a payment approved, appends a ledger row and optionally sends an SMS.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     AdminSecret
// @Param        approval      body      request.AdminApproveRequest  true   "Approval"
// @Param        admin_secret  query     string                       false  "Admin secret (alternative to X-Admin-Secret)"
// @Success      200           {object}  response.PaymentEnvelope
// @Failure      400           {object}  pkg.HTTPError
// @Failure      403           {object}  pkg.HTTPError
// @Failure      404           {object}  pkg.HTTPError
// @Failure      503           {object}  pkg.HTTPError
// @Router       /admin/approve [post]
func (h *PaymentHandler) AdminApprove(c *gin.Context) {
	var payload request.AdminApproveRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.log.Warnf("[payment][handler] admin-approve invalid payload err=%v", err)
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	updated, err := h.usecase.AdminApprove(c.Request.Context(), payload.PaymentID, payload.AdminNote, payload.NotifyPhone)
	if err != nil {
		h.renderError(c, "admin-approve", err)
		return
	}
	c.JSON(http.StatusOK, response.NewPaymentEnvelope(updated))
}

// GetPayment godoc
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Param        id   path      string  true  "Payment ID"
// @Success      200  {object}  response.PaymentEnvelope
// @Failure      404  {object}  pkg.HTTPError
// @Failure      503  {object}  pkg.HTTPError
// @Router       /payment/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	p, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, "get", err)
		return
	}
	c.JSON(http.StatusOK, response.NewPaymentEnvelope(p))
}

func (h *PaymentHandler) renderError(c *gin.Context, op string, err error) {
	appErr := mapPaymentError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.log.Errorf("[payment][handler] %s failed status=%d err=%v", op, appErr.HTTPStatus, err)
	} else {
		h.log.Infof("[payment][handler] %s rejected status=%d err=%v", op, appErr.HTTPStatus, err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrMissingPaymentFields):
		return pkg.NewDomainErrorSimple("invalid_request", "studentId and amount required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingPaymentID):
		return pkg.NewDomainErrorSimple("invalid_request", "paymentId required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("not_found", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentAlreadyApproved):
		return pkg.NewDomainErrorSimple("conflict", "Payment already approved", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentStateConflict):
		return pkg.NewDomainErrorSimple("conflict", "Payment status changed, retry", http.StatusConflict)
	case errors.Is(err, usecase.ErrPersistenceUnavailable):
		return pkg.NewDomainError("upstream_degraded", "Payment store unavailable", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("server_error", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
