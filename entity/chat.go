package entity

import (
	"encoding/json"
)

// ToolCall is one action request emitted by the completion provider. The
// ID correlates the call with its ToolResultEntry in history.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// AiAnswer is one completion round's outcome: final text, tool calls, or
// neither (a valid terminal state).
type AiAnswer struct {
	Content   string
	ToolCalls []ToolCall
}

// ChatEntry is one message of an in-flight completion conversation. Only
// the fields for its role are set; use the constructors below so a user
// entry can never carry a tool_call_id and a tool entry always carries
// its correlation id.
type ChatEntry struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall // assistant entries only
	ToolCallID string     // tool entries only
	Name       string     // tool entries only
}

func UserEntry(content string) ChatEntry {
	return ChatEntry{Role: RoleUser, Content: content}
}

func AssistantEntry(content string, toolCalls []ToolCall) ChatEntry {
	return ChatEntry{Role: RoleAssistant, Content: content, ToolCalls: toolCalls}
}

func SystemEntry(content string) ChatEntry {
	return ChatEntry{Role: RoleSystem, Content: content}
}

func ToolResultEntry(call ToolCall, result string) ChatEntry {
	return ChatEntry{Role: RoleTool, Content: result, ToolCallID: call.ID, Name: call.Name}
}

// ToolSpec declares one tool in the registry: the schema sent to the
// completion provider is generated from these instead of duplicated.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}
