package routes

import (
	"campusedge_payments/internal/adapter/http/handlers"
	"campusedge_payments/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathPayment      = "/payment"
	PathAgentApprove = "/agent/approve"
	PathAdminApprove = "/admin/approve"
)

func addPaymentRoutes(rg *gin.RouterGroup, h *handlers.PaymentHandler, limiter *middleware.ClientRateLimiter, adminOnly gin.HandlerFunc) {
	rg.POST(PathPayment, limiter.Handler(), h.SubmitPayment)
	rg.GET(PathPayment+"/:id", h.GetPayment)
	rg.POST(PathAgentApprove, h.AgentApprove)
	rg.POST(PathAdminApprove, adminOnly, h.AdminApprove)
}
