package analysis

import (
	"fmt"
	"strings"

	"github.com/contractdesk-dev/contractdesk/internal/projects"
)

const reportSystemPrompt = "You are a UK construction contract expert. " +
	"Provide detailed, accurate information about construction contract clauses " +
	"and recommendations based on the given scenario. Use proper formatting with " +
	"clear headings and paragraphs. Do not use markdown symbols like # or * in " +
	"your response. Format your text with proper headings, paragraphs, and use " +
	"bold for emphasis where appropriate."

func appendIssues(b *strings.Builder, issues []projects.IssueInput) {
	for i, issue := range issues {
		actionTaken := issue.ActionTaken
		if actionTaken == "" {
			actionTaken = "None"
		}
		fmt.Fprintf(b, "\nIssue %d: %s\nAction taken to date: %s\n", i+1, issue.Description, actionTaken)
	}
}

func buildReportPrompt(details projects.ProjectDetails, issues []projects.IssueInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Please analyze the following construction contract issue and provide detailed guidance:

Project Name: %s
Project Description: %s
Form of Contract: %s
Organization Role: %s

Issues to be explored:
`, details.ProjectName, details.ProjectDescription, details.FormOfContract, details.OrganizationRole)

	appendIssues(&b, issues)

	b.WriteString(`
Based on the information provided, please provide:

1. A detailed analysis of the relevant contract clauses that apply to these issues.
2. Specific guidance on what actions should be taken under the relevant clauses.
3. References to all relevant contract clauses with accurate and current details.
4. Any warnings or special considerations based on the role of the organization.

IMPORTANT FORMATTING INSTRUCTIONS:
- Use clear section headings for different parts of your analysis
- Use proper paragraphs with adequate spacing
- Use bold text for important points and emphasis
- DO NOT use markdown symbols like hashtags (#) or asterisks (*) in your response
- Present the information in a clean, professional format suitable for a business document
- Use numbered or bulleted lists where appropriate (written out as "1." instead of markdown)

Please format your response as a professional document that can be directly printed or shared with clients.`)

	return b.String()
}

func buildCommunicationPrompt(details projects.ProjectDetails, issues []projects.IssueInput, report string) string {
	var b strings.Builder

	role := details.OrganizationRole

	fmt.Fprintf(&b, `You are a UK construction contract expert. Create a professional communication draft based on the details provided, written strictly from the perspective of the user's stated role. Use proper business letter formatting with clear paragraphs and proper emphasis. Do not use markdown symbols like # or * in your response. Format your text with proper headings, paragraphs, and use appropriate emphasis where needed.

Please draft a professional communication in UK English format (formal letter or email) regarding the following construction contract issue:

Project Name: %s
Organization Role: %s (THIS IS YOUR ROLE - YOU ARE WRITING AS THIS ROLE)
Form of Contract: %s

Issues:
`, details.ProjectName, role, details.FormOfContract)

	appendIssues(&b, issues)

	fmt.Fprintf(&b, `
The analysis of the issues determined:
%s

VERY IMPORTANT: This communication must be written strictly from the perspective of a %s. Do not include any statements, advice, or language that would be inappropriate or unusual for someone in this role to say to the other party. For example, if you are an Employer/Client, do not recommend that the contractor seek legal advice or prepare for disputes. Instead, state your position clearly and professionally.

Please create a well-structured, professional communication that:
1. Is written ONLY from the perspective of a %s
2. Follows UK business letter/email standards
3. Is formal but clear
4. References the relevant contract clauses
5. States the position based on the above analysis
6. Proposes specific next steps or requests that are appropriate for your role
7. Maintains a professional tone throughout
8. Uses language and phrasing that a %s would actually use

IMPORTANT FORMATTING INSTRUCTIONS:
- DO NOT use markdown formatting such as hashtags (#) or asterisks (*) in your response
- Use proper business letter or email formatting with appropriate paragraphs
- Use headings and emphasis appropriately without markdown symbols
- Format the document so it's immediately ready to print or send
- Include all necessary parts of a formal business letter (date, address, salutation, etc.)
- Use clear paragraph breaks for readability

Format it as a ready-to-use professional communication that I can send directly as a %s.`, report, role, role, role, role)

	return b.String()
}
