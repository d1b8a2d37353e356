package handlers

import (
	"net/http"

	"github.com/contractdesk-dev/contractdesk/internal/types"
	"github.com/gin-gonic/gin"
)

// ContractData serves the fixed option sets the project details form offers.
func ContractData(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"contractForms":     types.ContractForms,
		"organizationRoles": types.OrganizationRoles,
	})
}
