package agent

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/praka2hb/synergi/plugin/ai"
	"github.com/praka2hb/synergi/plugin/sandbox"
)

// CodeExecArgs are the arguments of the execute_code tool.
type CodeExecArgs struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// UIGenArgs are the arguments of the generate_ui tool.
type UIGenArgs struct {
	Framework string `json:"framework"`
	Markup    string `json:"markup"`
}

// CoderAgent writes and runs code. Execution goes through the sandbox
// service; UI generation records a component for the client to preview.
type CoderAgent struct {
	llm      ai.LLMService
	sandbox  *sandbox.Client
	maxSteps int
}

var _ Agent = (*CoderAgent)(nil)

// NewCoderAgent creates the code assistant adapter.
func NewCoderAgent(llm ai.LLMService, sb *sandbox.Client, maxSteps int) *CoderAgent {
	return &CoderAgent{llm: llm, sandbox: sb, maxSteps: maxSteps}
}

func (a *CoderAgent) Name() string { return "code_assistant" }

func (a *CoderAgent) Stream(ctx context.Context, turn *Turn, callback EventCallback) error {
	loop := newToolLoop(a.llm, []Tool{a.executeTool(), a.uiTool()}, a.maxSteps)
	messages := ai.FormatMessages(coderPrompt, turn.UserInput, turn.History)
	_, err := loop.run(ctx, messages, callback)
	return err
}

func (a *CoderAgent) executeTool() Tool {
	return Tool{
		Spec: ai.ToolSpec{
			Name:        "execute_code",
			Description: "Run code in an isolated sandbox and return its stdout and stderr.",
			Parameters: objectSchema(map[string]any{
				"language": map[string]any{
					"type":        "string",
					"description": "Programming language, e.g. python or javascript",
				},
				"code": map[string]any{
					"type":        "string",
					"description": "Complete source to run",
				},
			}, "code"),
		},
		Run: func(ctx context.Context, raw string) (string, error) {
			var args CodeExecArgs
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				return "", errors.Wrap(err, "parse execute_code arguments")
			}
			result, err := a.sandbox.Execute(ctx, args.Language, args.Code)
			if err != nil {
				return "", err
			}
			return formatExecResult(result), nil
		},
	}
}

func (a *CoderAgent) uiTool() Tool {
	return Tool{
		Spec: ai.ToolSpec{
			Name:        "generate_ui",
			Description: "Record a complete UI component for live preview. Use when the user asks for a page, form or component.",
			Parameters: objectSchema(map[string]any{
				"framework": map[string]any{
					"type":        "string",
					"description": "Target framework, e.g. react or html",
				},
				"markup": map[string]any{
					"type":        "string",
					"description": "Complete, self-contained component source",
				},
			}, "framework", "markup"),
		},
		Run: func(ctx context.Context, raw string) (string, error) {
			var args UIGenArgs
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				return "", errors.Wrap(err, "parse generate_ui arguments")
			}
			if strings.TrimSpace(args.Markup) == "" {
				return "", errors.New("generate_ui requires markup")
			}
			return "UI component recorded for preview (" + args.Framework + ")", nil
		},
	}
}

func formatExecResult(result *sandbox.ExecResult) string {
	var b strings.Builder
	if result.Stdout != "" {
		b.WriteString("stdout:\n")
		b.WriteString(result.Stdout)
	}
	if result.Stderr != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("stderr:\n")
		b.WriteString(result.Stderr)
	}
	if result.Error != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("error: ")
		b.WriteString(result.Error)
	}
	if b.Len() == 0 {
		return "(no output)"
	}
	return b.String()
}
