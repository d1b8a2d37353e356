package handlers

import (
	"errors"
	"net/http"

	"github.com/contractdesk-dev/contractdesk/internal/analysis"
	"github.com/contractdesk-dev/contractdesk/internal/projects"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Analysis is the shared generation service, wired up in main. Tests swap in
// a service backed by a fake LLM client.
var Analysis *analysis.Service

type GenerateReportRequest struct {
	ProjectDetails projects.ProjectDetails `json:"projectDetails"`
	Issues         []projects.IssueInput   `json:"issues"`
}

type GenerateDraftCommunicationRequest struct {
	ProjectDetails projects.ProjectDetails `json:"projectDetails"`
	Issues         []projects.IssueInput   `json:"issues"`
	Report         string                  `json:"report"`
}

func GenerateReport(ctx *gin.Context) {
	var body GenerateReportRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required project details or issues"})
		return
	}

	report, err := Analysis.GenerateReport(ctx.Request.Context(), body.ProjectDetails, body.Issues)

	if err != nil {
		if errors.Is(err, analysis.ErrValidation) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required project details or issues"})
			return
		}
		logrus.Errorf("Error in generateReport: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"report": report})
}

func GenerateDraftCommunication(ctx *gin.Context) {
	var body GenerateDraftCommunicationRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required details"})
		return
	}

	draft, err := Analysis.GenerateDraftCommunication(ctx.Request.Context(), body.ProjectDetails, body.Issues, body.Report)

	if err != nil {
		if errors.Is(err, analysis.ErrValidation) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required details"})
			return
		}
		logrus.Errorf("Error in generateDraftCommunication: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate draft communication"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"draftCommunication": draft})
}
