// Package analysis builds the contract-law prompts and calls the LLM
// provider to produce analysis reports and draft communications.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/contractdesk-dev/contractdesk/internal/llm"
	"github.com/contractdesk-dev/contractdesk/internal/projects"
)

var ErrValidation = errors.New("missing required project details or issues")

type Service struct {
	client llm.Client
}

func NewService(client llm.Client) *Service {
	return &Service{client: client}
}

func validateInputs(details projects.ProjectDetails, issues []projects.IssueInput) error {
	if strings.TrimSpace(details.ProjectName) == "" || len(issues) == 0 {
		return ErrValidation
	}
	return nil
}

// GenerateReport produces a UK construction contract analysis for the given
// project and issues. The provider response is returned verbatim.
func (s *Service) GenerateReport(ctx context.Context, details projects.ProjectDetails, issues []projects.IssueInput) (string, error) {
	if err := validateInputs(details, issues); err != nil {
		return "", err
	}

	report, err := s.client.Complete(ctx, []llm.Message{
		{Role: "system", Content: reportSystemPrompt},
		{Role: "user", Content: buildReportPrompt(details, issues)},
	})

	if err != nil {
		return "", fmt.Errorf("generate report: %w", err)
	}

	return report, nil
}

// GenerateDraftCommunication produces correspondence written strictly from
// the perspective of the project's organization role, based on a previously
// generated report. The role constraint lives in the prompt; the output is
// not checked against it.
func (s *Service) GenerateDraftCommunication(ctx context.Context, details projects.ProjectDetails, issues []projects.IssueInput, report string) (string, error) {
	if err := validateInputs(details, issues); err != nil {
		return "", err
	}

	if strings.TrimSpace(report) == "" {
		return "", ErrValidation
	}

	draft, err := s.client.Complete(ctx, []llm.Message{
		{Role: "user", Content: buildCommunicationPrompt(details, issues, report)},
	})

	if err != nil {
		return "", fmt.Errorf("generate draft communication: %w", err)
	}

	return draft, nil
}
