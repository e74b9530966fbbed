package handler

import (
	"log"
	"os"

	"lekturai/usecase"
	"lekturai/utils"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

type AdminHandler struct {
	Reconciler *usecase.StreakReconciler
}

func NewAdminHandler(reconciler *usecase.StreakReconciler) *AdminHandler {
	return &AdminHandler{Reconciler: reconciler}
}

// TriggerReconcile runs the streak reconciliation on demand. The endpoint is
// guarded by a TOTP code from the operator's shared secret, on top of the
// normal auth middleware, since it touches every user's record. An optional
// JSON body {"user_ids": [...]} limits the run to those users.
func (h *AdminHandler) TriggerReconcile(c *gin.Context) {
	secret := os.Getenv("ADMIN_TOTP_SECRET")
	if secret == "" {
		utils.ServiceUnavailable(c, "Admin access is not configured")
		return
	}

	code := c.GetHeader("X-Admin-Code")
	if !totp.Validate(code, secret) {
		utils.Forbidden(c, "Invalid admin code")
		return
	}

	var body struct {
		UserIDs []string `json:"user_ids"`
	}
	// Body is optional; a missing or empty body means "all users".
	_ = c.ShouldBindJSON(&body)

	report, err := h.Reconciler.Run(c.Request.Context(), body.UserIDs)
	if err != nil {
		log.Printf("Error running streak reconciliation: %v", err)
		utils.ServiceUnavailable(c, "Failed to run reconciliation")
		return
	}

	utils.Success(c, report)
}
