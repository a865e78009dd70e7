package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers MCP prompts for the daily workflow.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("daily_planning").
		Description("Rank tasks, build today's Must / Should / Could plan and explain the choices.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Daily Planning Session", `Help me plan my day. Please:

1. Call score.recompute to rank my actionable tasks
2. Call plan.generate to build today's plan (or read focusos://plan/today if one exists)
3. Read focusos://inbox and flag anything that should be triaged first

Then:
- Walk me through the Must bucket and why each task is there, using the explanations
- Point out blockers and tasks with deadlines inside 48 hours
- Suggest which Could tasks to drop if the day runs short

Keep the answer short and actionable.`), nil
		})

	srv.Prompt("inbox_triage").
		Description("Go through unprocessed inbox items and triage each one.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Inbox Triage Session", `Let's clear my inbox. Please:

1. Read focusos://inbox and focusos://areas
2. For each item, propose TASK, PROJECT, NOTE or SOMEDAY, an area, and an effort estimate
3. After I confirm, call inbox.triage for each item

Use the suggested_type as a starting point, not a decision.`), nil
		})

	return nil
}

func userPrompt(description, text string) *mcp.PromptResult {
	return &mcp.PromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role: string(mcp.RoleUser),
				Content: mcp.TextContent{
					Type: "text",
					Text: text,
				},
			},
		},
	}
}
