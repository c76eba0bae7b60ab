// ABOUTME: MCP tool implementations for prompt building and session inspection.
// ABOUTME: Registers build_prompt and get_session; neither persists anything.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/mailprompt/internal/models"
	"github.com/2389-research/mailprompt/internal/prompt"
)

func (s *Server) registerPromptTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "build_prompt",
		Description: "Build an email-drafting prompt from history, intent, and a tone preset. Omitted fields fall back to the saved session. Nothing is persisted.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"history": {"type": "string", "description": "Prior email thread used as context"},
				"intent": {"type": "string", "description": "What the reply needs to say"},
				"style_id": {"type": "string", "description": "Preset id from list_presets"},
				"locale": {"type": "string", "enum": ["en", "zh"], "description": "Prompt language (default: active locale)"}
			}
		}`),
	}, s.handleBuildPrompt)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "get_session",
		Description: "Return the saved session: locale, history, intent, and selected preset id.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleGetSession)
}

func (s *Server) handleBuildPrompt(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		History *string `json:"history"`
		Intent  *string `json:"intent"`
		StyleID *string `json:"style_id"`
		Locale  *string `json:"locale"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	in := s.ws.Input()
	if args.Locale != nil {
		l, ok := models.ParseLocale(*args.Locale)
		if !ok {
			return toolError("unsupported locale %q (valid: en, zh)", *args.Locale), nil
		}
		in.Locale = l
	}
	if args.History != nil {
		in.History = *args.History
	}
	if args.Intent != nil {
		in.Intent = *args.Intent
	}
	if args.StyleID != nil {
		if _, ok := models.FindPreset(s.ws.PresetsForLocale(in.Locale), *args.StyleID); !ok {
			return toolError("unknown style_id %q", *args.StyleID), nil
		}
		in.PresetID = *args.StyleID
	}

	text := s.ws.DeriveInput(in)
	if text == "" {
		return toolError("history and intent are both empty; nothing to build"), nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{
			&gomcp.TextContent{Text: text},
			&gomcp.TextContent{Text: fmt.Sprintf("~%d tokens", prompt.EstimateTokens(text))},
		},
	}, nil
}

type sessionView struct {
	Locale  string `json:"locale"`
	History string `json:"history"`
	Intent  string `json:"intent"`
	StyleID string `json:"style_id"`
}

func (s *Server) handleGetSession(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	sess := s.ws.Session()
	data, err := json.MarshalIndent(sessionView{
		Locale:  string(s.ws.Locale()),
		History: sess.History,
		Intent:  sess.Intent,
		StyleID: sess.SelectedPresetID,
	}, "", "  ")
	if err != nil {
		return toolError("failed to encode session: %v", err), nil
	}
	return textResult(string(data)), nil
}
