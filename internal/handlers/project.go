package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/contractdesk-dev/contractdesk/db"
	"github.com/contractdesk-dev/contractdesk/internal/models"
	"github.com/contractdesk-dev/contractdesk/internal/projects"
	"github.com/contractdesk-dev/contractdesk/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SaveProjectRequest struct {
	ProjectDetails projects.ProjectDetails `json:"projectDetails"`
	Issues         []projects.IssueInput   `json:"issues"`
	Report         string                  `json:"report"`
}

type GetProjectResponse struct {
	ProjectDetails projects.ProjectDetails `json:"projectDetails"`
	Issues         []models.Issue          `json:"issues"`
	Report         *string                 `json:"report"`
}

func projectIDParam(ctx *gin.Context) (uint, bool) {
	raw := ctx.Query("projectId")

	if raw == "" {
		return 0, false
	}

	id, err := strconv.ParseUint(raw, 10, 64)

	if err != nil {
		return 0, false
	}

	return uint(id), true
}

func ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userProjects, err := projects.NewStore(db.DB).List(userID)

	if err != nil {
		logrus.Errorf("Failed to list projects for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if userProjects == nil {
		userProjects = []models.Project{}
	}

	ctx.JSON(http.StatusOK, gin.H{"projects": userProjects})
}

func GetProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, ok := projectIDParam(ctx)

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing project ID"})
		return
	}

	detail, err := projects.NewStore(db.DB).Get(userID, projectID)

	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found or access denied"})
			return
		}
		logrus.Errorf("Failed to fetch project %d: %v", projectID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	issues := detail.Issues
	if issues == nil {
		issues = []models.Issue{}
	}

	ctx.JSON(http.StatusOK, GetProjectResponse{
		ProjectDetails: projects.ProjectDetails{
			ProjectName:        detail.Project.ProjectName,
			ProjectDescription: detail.Project.ProjectDescription,
			FormOfContract:     detail.Project.FormOfContract,
			OrganizationRole:   detail.Project.OrganizationRole,
		},
		Issues: issues,
		Report: detail.Report,
	})
}

func CreateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body SaveProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	projectID, err := projects.NewStore(db.DB).Create(userID, body.ProjectDetails, body.Issues, body.Report)

	if err != nil {
		if errors.Is(err, projects.ErrValidation) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required project data"})
			return
		}
		logrus.Errorf("Failed to create project for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":   "Project created successfully",
		"projectId": projectID,
	})
}

func UpdateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, ok := projectIDParam(ctx)

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing project ID"})
		return
	}

	var body SaveProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	err = projects.NewStore(db.DB).Update(userID, projectID, body.ProjectDetails, body.Issues, body.Report)

	if err != nil {
		switch {
		case errors.Is(err, projects.ErrValidation):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required project data"})
		case errors.Is(err, projects.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found or access denied"})
		default:
			logrus.Errorf("Failed to update project %d: %v", projectID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project updated successfully"})
}

func DeleteProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, ok := projectIDParam(ctx)

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing project ID"})
		return
	}

	err = projects.NewStore(db.DB).Delete(userID, projectID)

	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found or access denied"})
			return
		}
		logrus.Errorf("Failed to delete project %d: %v", projectID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
