// ABOUTME: MCP tool implementations for tone preset management.
// ABOUTME: Registers list_presets, add_preset, and remove_preset.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/2389-research/mailprompt/internal/models"
	"github.com/2389-research/mailprompt/internal/presets"
)

func (s *Server) registerPresetTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_presets",
		Description: "List the available tone presets: the built-in styles for a locale followed by every user-defined style.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"locale": {"type": "string", "enum": ["en", "zh"], "description": "Locale for built-in names and instructions (default: active locale)"}
			}
		}`),
	}, s.handleListPresets)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "add_preset",
		Description: "Create a user-defined tone preset and select it. Name and instruction are both required.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string", "description": "Display name, e.g. Angry Customer"},
				"instruction": {"type": "string", "description": "Tone instruction inserted into the prompt"}
			},
			"required": ["name", "instruction"]
		}`),
	}, s.handleAddPreset)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "remove_preset",
		Description: "Delete a user-defined tone preset by id. Built-in presets cannot be removed.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Preset id as shown by list_presets"}
			},
			"required": ["id"]
		}`),
	}, s.handleRemovePreset)
}

func (s *Server) handleListPresets(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Locale string `json:"locale"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	locale := s.ws.Locale()
	if args.Locale != "" {
		l, ok := models.ParseLocale(args.Locale)
		if !ok {
			return toolError("unsupported locale %q (valid: en, zh)", args.Locale), nil
		}
		locale = l
	}

	selected := s.ws.Session().SelectedPresetID
	var sb strings.Builder
	for _, p := range s.ws.PresetsForLocale(locale) {
		marker := " "
		if p.ID == selected {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %s [%s] %s\n  %s\n", marker, p.ID, p.Kind, p.Name, p.PromptInstruction))
	}

	return textResult(sb.String()), nil
}

func (s *Server) handleAddPreset(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Name        string `json:"name"`
		Instruction string `json:"instruction"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	p, err := s.ws.AddPreset(args.Name, args.Instruction)
	if errors.Is(err, presets.ErrBlankField) {
		return toolError("name and instruction are both required"), nil
	}
	if err != nil {
		return toolError("failed to add preset: %v", err), nil
	}

	s.logger.Info("preset added via mcp", zap.String("id", p.ID))
	return textResult(fmt.Sprintf("Preset created and selected.\nID: %s\nName: %s", p.ID, p.Name)), nil
}

func (s *Server) handleRemovePreset(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.ID == "" {
		return toolError("id is required"), nil
	}
	if presets.IsBuiltinID(args.ID) {
		return toolError("preset %q is built in and cannot be removed", args.ID), nil
	}
	if !s.ws.RemovePreset(args.ID) {
		return toolError("no user-defined preset with id %q", args.ID), nil
	}

	s.logger.Info("preset removed via mcp", zap.String("id", args.ID))
	return textResult(fmt.Sprintf("Removed preset %s. Selected: %s", args.ID, s.ws.Session().SelectedPresetID)), nil
}

// decodeArgs unmarshals tool arguments, treating absent arguments as an empty object.
func decodeArgs(req *gomcp.CallToolRequest, v any) error {
	if len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, v)
}

func textResult(text string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: text}},
	}
}

// toolError creates an error result for MCP tool responses.
func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
