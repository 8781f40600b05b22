package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"brandsmith/internal/services"
	"brandsmith/internal/transport"
)

type tools struct {
	projects      services.ProjectService
	conversations services.ConversationService
}

type emptyParams struct{}

type projectParams struct {
	ProjectID uint `json:"projectId" jsonschema:"id of the project"`
}

type createProjectParams struct {
	Name           string `json:"name" jsonschema:"project display name"`
	InitialConcept string `json:"initialConcept" jsonschema:"what the business is about, at least 10 characters"`
}

type setPhaseParams struct {
	ProjectID uint   `json:"projectId" jsonschema:"id of the project"`
	Phase     string `json:"phase" jsonschema:"discovery, strategy, concepts, refinement, toolkit or completed"`
}

type sendMessageParams struct {
	ProjectID uint   `json:"projectId" jsonschema:"id of the project"`
	Content   string `json:"content" jsonschema:"the user's message"`
}

type selectConceptParams struct {
	ProjectID uint `json:"projectId" jsonschema:"id of the project"`
	ConceptID uint `json:"conceptId" jsonschema:"id of a concept of the project"`
}

func registerTools(server *sdkmcp.Server, t *tools) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a brand project. The reply contains the project; its first discovery question is in list_messages.",
	}, t.createProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List your projects, most recently updated first",
	}, t.listProjects)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a project including its phase, progress and strategy",
	}, t.getProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project with its messages and concepts",
	}, t.deleteProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_phase",
		Description: "Move a project to a phase without running the conversation",
	}, t.setPhase)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "send_message",
		Description: "Send a message in the project conversation and receive the assistant reply",
	}, t.sendMessage)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_messages",
		Description: "List the conversation of a project in order",
	}, t.listMessages)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_concepts",
		Description: "List the generated visual concepts of a project",
	}, t.listConcepts)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "select_concept",
		Description: "Select a concept by id and move the project to refinement",
	}, t.selectConcept)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_progress",
		Description: "Get the discovery progress of a project",
	}, t.getProgress)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_toolkit",
		Description: "Get the brand toolkit markdown of a completed project",
	}, t.getToolkit)
}

// textResult renders v as the JSON text content of a tool result.
func textResult(v any) (*sdkmcp.CallToolResult, any, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(raw)}},
	}, nil, nil
}

func callerID(ctx context.Context) (uint, error) {
	id, ok := transport.UserFromContext(ctx)
	if !ok {
		return 0, services.ErrUnauthorized
	}
	return id, nil
}

func (t *tools) createProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in createProjectParams) (*sdkmcp.CallToolResult, any, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, nil, err
	}
	p, err := t.projects.Create(ctx, userID, in.Name, in.InitialConcept)
	if err != nil {
		return nil, nil, err
	}
	return textResult(p)
}

func (t *tools) listProjects(ctx context.Context, _ *sdkmcp.CallToolRequest, _ emptyParams) (*sdkmcp.CallToolResult, any, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, nil, err
	}
	projects, err := t.projects.List(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return textResult(projects)
}

func (t *tools) getProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in projectParams) (*sdkmcp.CallToolResult, any, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, nil, err
	}
	p, err := t.projects.Get(ctx, userID, in.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return textResult(p)
}

func (t *tools) deleteProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in projectParams) (*sdkmcp.CallToolResult, any, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := t.projects.Delete(ctx, userID, in.ProjectID); err != nil {
		return nil, nil, err
	}
	return textResult(map[string]any{"deleted": in.ProjectID})
}

func (t *tools) setPhase(ctx context.Context, _ *sdkmcp.CallToolRequest, in setPhaseParams) (*sdkmcp.CallToolResult, any, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, nil, err
	}
	p, err := t.projects.SetPhase(ctx, userID, in.ProjectID, in.Phase)
	if err != nil {
		return nil, nil, err
	}
	return textResult(p)
}

func (t *tools) sendMessage(ctx context.Context, _ *sdkmcp.CallToolRequest, in sendMessageParams) (*sdkmcp.CallToolResult, any, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, nil, err
	}
	reply, err := t.conversations.SubmitMessage(ctx, userID, in.ProjectID, in.Content)
	if err != nil {
		return nil, nil, err
	}
	return textResult(reply)
}

func (t *tools) listMessages(ctx context.Context, _ *sdkmcp.CallToolRequest, in projectParams) (*sdkmcp.CallToolResult, any, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, nil, err
	}
	msgs, err := t.conversations.ListMessages(ctx, userID, in.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return textResult(msgs)
}

func (t *tools) listConcepts(ctx context.Context, _ *sdkmcp.CallToolRequest, in projectParams) (*sdkmcp.CallToolResult, any, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, nil, err
	}
	concepts, err := t.projects.ListConcepts(ctx, userID, in.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return textResult(concepts)
}

func (t *tools) selectConcept(ctx context.Context, _ *sdkmcp.CallToolRequest, in selectConceptParams) (*sdkmcp.CallToolResult, any, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, nil, err
	}
	p, err := t.projects.SelectConcept(ctx, userID, in.ProjectID, in.ConceptID)
	if err != nil {
		return nil, nil, err
	}
	return textResult(p)
}

func (t *tools) getProgress(ctx context.Context, _ *sdkmcp.CallToolRequest, in projectParams) (*sdkmcp.CallToolResult, any, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, nil, err
	}
	view, err := t.projects.Progress(ctx, userID, in.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return textResult(view)
}

// getToolkit returns the markdown itself rather than JSON.
func (t *tools) getToolkit(ctx context.Context, _ *sdkmcp.CallToolRequest, in projectParams) (*sdkmcp.CallToolResult, any, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, nil, err
	}
	tk, err := t.projects.Toolkit(ctx, userID, in.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: tk.Markdown}},
	}, nil, nil
}
