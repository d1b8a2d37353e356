package projects

import (
	"errors"
	"strings"

	"github.com/contractdesk-dev/contractdesk/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrNotFound covers both a missing project and one owned by another
	// user, so responses never reveal whether a given id exists.
	ErrNotFound = errors.New("project not found or access denied")

	ErrValidation = errors.New("missing required project data")
)

type ProjectDetails struct {
	ProjectName        string `json:"projectName"`
	ProjectDescription string `json:"projectDescription"`
	FormOfContract     string `json:"formOfContract"`
	OrganizationRole   string `json:"organizationRole"`
}

type IssueInput struct {
	Description string `json:"description"`
	ActionTaken string `json:"actionTaken"`
}

// ProjectDetail is the full Get result: the project row, its issues and the
// report content (nil when no report has been saved).
type ProjectDetail struct {
	Project models.Project
	Issues  []models.Issue
	Report  *string
}

// Store is the sole writer of projects, issues and reports. Every operation
// is scoped to the owning user and every multi-row mutation runs inside a
// single transaction.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func validate(details ProjectDetails, issues []IssueInput) error {
	if strings.TrimSpace(details.ProjectName) == "" {
		return ErrValidation
	}

	if len(issues) == 0 {
		return ErrValidation
	}

	for _, issue := range issues {
		if strings.TrimSpace(issue.Description) == "" {
			return ErrValidation
		}
	}

	return nil
}

// List returns the user's projects in creation order.
func (s *Store) List(userID uint) ([]models.Project, error) {
	var projects []models.Project

	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&projects).Error

	if err != nil {
		return nil, err
	}

	return projects, nil
}

// Get returns the project with its issues and report, or ErrNotFound when
// the project does not exist or belongs to another user.
func (s *Store) Get(userID, projectID uint) (ProjectDetail, error) {
	var detail ProjectDetail

	err := s.db.
		Where("id = ? AND user_id = ?", projectID, userID).
		First(&detail.Project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProjectDetail{}, ErrNotFound
		}
		return ProjectDetail{}, err
	}

	if err := s.db.Where("project_id = ?", projectID).Find(&detail.Issues).Error; err != nil {
		return ProjectDetail{}, err
	}

	var report models.Report

	err = s.db.Where("project_id = ?", projectID).First(&report).Error

	if err == nil {
		detail.Report = &report.Content
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ProjectDetail{}, err
	}

	return detail, nil
}

// Create inserts the project, its issues and the optional report in one
// transaction and returns the new project id.
func (s *Store) Create(userID uint, details ProjectDetails, issues []IssueInput, report string) (uint, error) {
	if err := validate(details, issues); err != nil {
		return 0, err
	}

	var projectID uint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		project := models.Project{
			UserID:             userID,
			ProjectName:        details.ProjectName,
			ProjectDescription: details.ProjectDescription,
			FormOfContract:     details.FormOfContract,
			OrganizationRole:   details.OrganizationRole,
		}

		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		projectID = project.ID

		rows := make([]models.Issue, 0, len(issues))
		for _, issue := range issues {
			rows = append(rows, models.Issue{
				ProjectID:   project.ID,
				Description: issue.Description,
				ActionTaken: issue.ActionTaken,
			})
		}

		if err := tx.Create(&rows).Error; err != nil {
			return err
		}

		if report != "" {
			if err := tx.Create(&models.Report{ProjectID: project.ID, Content: report}).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	return projectID, nil
}

// Update overwrites the project attributes, replaces the full issue set
// (delete-all then insert-all, prior ids are not preserved) and upserts the
// report, all in one transaction.
func (s *Store) Update(userID, projectID uint, details ProjectDetails, issues []IssueInput, report string) error {
	if err := validate(details, issues); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project

		err := tx.Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		project.ProjectName = details.ProjectName
		project.ProjectDescription = details.ProjectDescription
		project.FormOfContract = details.FormOfContract
		project.OrganizationRole = details.OrganizationRole

		if err := tx.Save(&project).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", projectID).Delete(&models.Issue{}).Error; err != nil {
			return err
		}

		rows := make([]models.Issue, 0, len(issues))
		for _, issue := range issues {
			rows = append(rows, models.Issue{
				ProjectID:   projectID,
				Description: issue.Description,
				ActionTaken: issue.ActionTaken,
			})
		}

		if err := tx.Create(&rows).Error; err != nil {
			return err
		}

		if report != "" {
			var existing models.Report

			err := tx.Where("project_id = ?", projectID).First(&existing).Error

			switch {
			case err == nil:
				existing.Content = report
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(&models.Report{ProjectID: projectID, Content: report}).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}

		return nil
	})
}

// Delete removes the project row; issues and the report go with it via the
// cascade constraints.
func (s *Store) Delete(userID, projectID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project

		err := tx.Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		return tx.Delete(&project).Error
	})
}
