package handlers

import (
	"github.com/gin-gonic/gin"

	subscriptionUsecases "lumina/internal/application/subscription/usecases"
	"lumina/internal/domain/bundle"
	"lumina/internal/shared/errors"
	"lumina/internal/shared/utils"
)

// SubscriptionHandler serves the subscription lifecycle endpoints.
type SubscriptionHandler struct {
	createUC   *subscriptionUsecases.CreateSubscriptionUseCase
	listUC     *subscriptionUsecases.ListSubscriptionsUseCase
	cancelUC   *subscriptionUsecases.CancelSubscriptionUseCase
	renewDueUC *subscriptionUsecases.RenewDueSubscriptionsUseCase
}

func NewSubscriptionHandler(
	createUC *subscriptionUsecases.CreateSubscriptionUseCase,
	listUC *subscriptionUsecases.ListSubscriptionsUseCase,
	cancelUC *subscriptionUsecases.CancelSubscriptionUseCase,
	renewDueUC *subscriptionUsecases.RenewDueSubscriptionsUseCase,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createUC:   createUC,
		listUC:     listUC,
		cancelUC:   cancelUC,
		renewDueUC: renewDueUC,
	}
}

type createSubscriptionRequest struct {
	Tier         string `json:"tier" binding:"required"`
	BillingCycle string `json:"billing_cycle" binding:"required"`
	AutoRenew    bool   `json:"auto_renew"`
}

// Create handles POST /api/users/:sid/subscriptions
func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), subscriptionUsecases.CreateSubscriptionCommand{
		UserSID:      c.Param("sid"),
		Tier:         req.Tier,
		BillingCycle: req.BillingCycle,
		AutoRenew:    req.AutoRenew,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toBundleResponse(b))
}

// List handles GET /api/users/:sid/subscriptions. The active=true query
// parameter narrows the result to active bundles.
func (h *SubscriptionHandler) List(c *gin.Context) {
	bundles, err := h.listUC.Execute(c.Request.Context(), subscriptionUsecases.ListSubscriptionsCommand{
		UserSID:    c.Param("sid"),
		ActiveOnly: c.Query("active") == "true",
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, toBundleResponses(bundles))
}

// ListActive handles GET /api/users/:sid/subscriptions/active
func (h *SubscriptionHandler) ListActive(c *gin.Context) {
	bundles, err := h.listUC.Execute(c.Request.Context(), subscriptionUsecases.ListSubscriptionsCommand{
		UserSID:    c.Param("sid"),
		ActiveOnly: true,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, toBundleResponses(bundles))
}

// Cancel handles POST /api/users/:sid/subscriptions/:bundleSid/cancel
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	b, err := h.cancelUC.Execute(c.Request.Context(), subscriptionUsecases.CancelSubscriptionCommand{
		UserSID:   c.Param("sid"),
		BundleSID: c.Param("bundleSid"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, toBundleResponse(b))
}

// RenewDue handles POST /api/subscriptions/renew. It triggers the same
// sweep the scheduler runs, for operators and tests.
func (h *SubscriptionHandler) RenewDue(c *gin.Context) {
	summary, err := h.renewDueUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, summary)
}

// Tiers handles GET /api/tiers
func (h *SubscriptionHandler) Tiers(c *gin.Context) {
	utils.SuccessResponse(c, toTierResponses(bundle.AllTiers()))
}
