// Copyright 2025 The opencode-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package opencode domain types mirroring the OpenCode server schema,
// converted to idiomatic Go with JSON serialization support. Unions are
// represented the same way throughout: a struct of variant pointers
// with exactly one set, (un)marshaled through the wire discriminator.
package opencode

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// ---------------------------------------------------------------------------
// Sessions
// ---------------------------------------------------------------------------

// Session is one conversation session.
type Session struct {
	ID       string         `json:"id"`
	Time     SessionTime    `json:"time"`
	Title    string         `json:"title"`
	Version  string         `json:"version"`
	ParentID string         `json:"parentID,omitempty"`
	Revert   *SessionRevert `json:"revert,omitempty"`
	Share    *SessionShare  `json:"share,omitempty"`
}

// SessionTime holds a session's epoch timestamps.
type SessionTime struct {
	Created float64 `json:"created"`
	Updated float64 `json:"updated"`
}

// SessionRevert is the revert metadata attached to a reverted session.
type SessionRevert struct {
	MessageID string `json:"messageID"`
	Diff      string `json:"diff,omitempty"`
	PartID    string `json:"partID,omitempty"`
	Snapshot  string `json:"snapshot,omitempty"`
}

// SessionShare is the share metadata of a shared session.
type SessionShare struct {
	URL string `json:"url"`
}

// SessionError is a session-level error, tagged on "name". Data is kept
// raw: the set of error payloads is open-ended and schema-defined
// upstream.
type SessionError struct {
	Name string         `json:"name"`
	Data jsontext.Value `json:"data,omitempty"`
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

// UserMessage is a message sent by the user.
type UserMessage struct {
	Role      string          `json:"role"` // always "user"
	ID        string          `json:"id"`
	SessionID string          `json:"sessionID"`
	Time      UserMessageTime `json:"time"`
}

// UserMessageTime holds a user message's timestamps.
type UserMessageTime struct {
	Created float64 `json:"created"`
}

// AssistantMessage is a message generated by the assistant.
type AssistantMessage struct {
	Role       string                 `json:"role"` // always "assistant"
	ID         string                 `json:"id"`
	Cost       float64                `json:"cost"`
	Mode       string                 `json:"mode"`
	ModelID    string                 `json:"modelID"`
	Path       AssistantMessagePath   `json:"path"`
	ProviderID string                 `json:"providerID"`
	SessionID  string                 `json:"sessionID"`
	System     []string               `json:"system"`
	Time       AssistantMessageTime   `json:"time"`
	Tokens     AssistantMessageTokens `json:"tokens"`
	Error      *SessionError          `json:"error,omitempty"`
	Summary    bool                   `json:"summary,omitempty"`
}

// AssistantMessagePath holds the filesystem paths relevant to an
// assistant message.
type AssistantMessagePath struct {
	Cwd  string `json:"cwd"`
	Root string `json:"root"`
}

// AssistantMessageTime holds an assistant message's timestamps.
type AssistantMessageTime struct {
	Created   float64 `json:"created"`
	Completed float64 `json:"completed,omitempty"`
}

// AssistantMessageTokens is the token usage breakdown of an assistant
// message.
type AssistantMessageTokens struct {
	Cache     TokenCache `json:"cache"`
	Input     uint64     `json:"input"`
	Output    uint64     `json:"output"`
	Reasoning uint64     `json:"reasoning"`
}

// TokenCache is the cache portion of a token breakdown.
type TokenCache struct {
	Read  uint64 `json:"read"`
	Write uint64 `json:"write"`
}

// Message is a session message, either from the user or the assistant.
// Exactly one variant is set; the union is tagged on "role".
type Message struct {
	User      *UserMessage
	Assistant *AssistantMessage
}

// MarshalJSON implements custom JSON marshaling for the union type.
func (m Message) MarshalJSON() ([]byte, error) {
	switch {
	case m.User != nil:
		return json.Marshal(m.User)
	case m.Assistant != nil:
		return json.Marshal(m.Assistant)
	default:
		return nil, fmt.Errorf("no message variant set in union")
	}
}

// UnmarshalJSON implements custom JSON unmarshaling for the union type.
func (m *Message) UnmarshalJSON(data []byte) error {
	var role struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(data, &role); err != nil {
		return err
	}

	switch role.Role {
	case "user":
		var msg UserMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return err
		}
		m.User = &msg
	case "assistant":
		var msg AssistantMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return err
		}
		m.Assistant = &msg
	default:
		return fmt.Errorf("unknown message role: %q", role.Role)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Message parts
// ---------------------------------------------------------------------------

// TextPart is a plain-text message part.
type TextPart struct {
	Type      string        `json:"type"` // always "text"
	ID        string        `json:"id"`
	MessageID string        `json:"messageID"`
	SessionID string        `json:"sessionID"`
	Text      string        `json:"text"`
	Synthetic bool          `json:"synthetic,omitempty"`
	Time      *TextPartTime `json:"time,omitempty"`
}

// TextPartTime holds a text part's timestamps.
type TextPartTime struct {
	Start float64 `json:"start"`
	End   float64 `json:"end,omitempty"`
}

// FilePart is a file attachment part.
type FilePart struct {
	Type      string `json:"type"` // always "file"
	ID        string `json:"id"`
	MessageID string `json:"messageID"`
	SessionID string `json:"sessionID"`
	Mime      string `json:"mime"`
	URL       string `json:"url"`
	Filename  string `json:"filename,omitempty"`
}

// ToolPart is a tool invocation part. State is kept raw: tool states
// are a schema-defined union of pending/running/completed/error shapes.
type ToolPart struct {
	Type      string         `json:"type"` // always "tool"
	ID        string         `json:"id"`
	CallID    string         `json:"callID"`
	MessageID string         `json:"messageID"`
	SessionID string         `json:"sessionID"`
	Tool      string         `json:"tool"`
	State     jsontext.Value `json:"state,omitempty"`
}

// StepStartPart marks the start of a generation step.
type StepStartPart struct {
	Type      string `json:"type"` // always "step-start"
	ID        string `json:"id"`
	MessageID string `json:"messageID"`
	SessionID string `json:"sessionID"`
}

// StepFinishPart marks the end of a generation step.
type StepFinishPart struct {
	Type      string                 `json:"type"` // always "step-finish"
	ID        string                 `json:"id"`
	MessageID string                 `json:"messageID"`
	SessionID string                 `json:"sessionID"`
	Cost      float64                `json:"cost"`
	Tokens    AssistantMessageTokens `json:"tokens"`
}

// SnapshotPart references a workspace snapshot.
type SnapshotPart struct {
	Type      string `json:"type"` // always "snapshot"
	ID        string `json:"id"`
	MessageID string `json:"messageID"`
	SessionID string `json:"sessionID"`
	Snapshot  string `json:"snapshot"`
}

// PatchPart describes an applied patch.
type PatchPart struct {
	Type      string   `json:"type"` // always "patch"
	ID        string   `json:"id"`
	MessageID string   `json:"messageID"`
	SessionID string   `json:"sessionID"`
	Hash      string   `json:"hash"`
	Files     []string `json:"files"`
}

// Part is one piece of message content. Exactly one variant is set;
// the union is tagged on "type".
type Part struct {
	Text       *TextPart
	File       *FilePart
	Tool       *ToolPart
	StepStart  *StepStartPart
	StepFinish *StepFinishPart
	Snapshot   *SnapshotPart
	Patch      *PatchPart
}

// MarshalJSON implements custom JSON marshaling for the union type.
func (p Part) MarshalJSON() ([]byte, error) {
	switch {
	case p.Text != nil:
		return json.Marshal(p.Text)
	case p.File != nil:
		return json.Marshal(p.File)
	case p.Tool != nil:
		return json.Marshal(p.Tool)
	case p.StepStart != nil:
		return json.Marshal(p.StepStart)
	case p.StepFinish != nil:
		return json.Marshal(p.StepFinish)
	case p.Snapshot != nil:
		return json.Marshal(p.Snapshot)
	case p.Patch != nil:
		return json.Marshal(p.Patch)
	default:
		return nil, fmt.Errorf("no part variant set in union")
	}
}

// UnmarshalJSON implements custom JSON unmarshaling for the union type.
func (p *Part) UnmarshalJSON(data []byte) error {
	var kind struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &kind); err != nil {
		return err
	}

	switch kind.Type {
	case "text":
		p.Text = new(TextPart)
		return json.Unmarshal(data, p.Text)
	case "file":
		p.File = new(FilePart)
		return json.Unmarshal(data, p.File)
	case "tool":
		p.Tool = new(ToolPart)
		return json.Unmarshal(data, p.Tool)
	case "step-start":
		p.StepStart = new(StepStartPart)
		return json.Unmarshal(data, p.StepStart)
	case "step-finish":
		p.StepFinish = new(StepFinishPart)
		return json.Unmarshal(data, p.StepFinish)
	case "snapshot":
		p.Snapshot = new(SnapshotPart)
		return json.Unmarshal(data, p.Snapshot)
	case "patch":
		p.Patch = new(PatchPart)
		return json.Unmarshal(data, p.Patch)
	default:
		return fmt.Errorf("unknown part type: %q", kind.Type)
	}
}

// ---------------------------------------------------------------------------
// App
// ---------------------------------------------------------------------------

// App is the top-level application information.
type App struct {
	Git      bool    `json:"git"`
	Hostname string  `json:"hostname"`
	Path     AppPath `json:"path"`
	Time     AppTime `json:"time"`
}

// AppPath holds the filesystem paths used by the application.
type AppPath struct {
	Config string `json:"config"`
	Cwd    string `json:"cwd"`
	Data   string `json:"data"`
	Root   string `json:"root"`
	State  string `json:"state"`
}

// AppTime holds application timing metadata.
type AppTime struct {
	Initialized float64 `json:"initialized,omitempty"`
}

// Mode is an operational mode with associated tools and overrides.
type Mode struct {
	Name        string          `json:"name"`
	Tools       map[string]bool `json:"tools"`
	Model       *ModeModel      `json:"model,omitempty"`
	Prompt      string          `json:"prompt,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
}

// ModeModel is the model reference inside a Mode.
type ModeModel struct {
	ModelID    string `json:"modelID"`
	ProviderID string `json:"providerID"`
}

// Provider describes one model provider known to the server.
type Provider struct {
	ID     string                   `json:"id"`
	Name   string                   `json:"name"`
	Env    []string                 `json:"env,omitempty"`
	Models map[string]ProviderModel `json:"models"`
}

// ProviderModel is one model offered by a Provider.
type ProviderModel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProvidersResponse is the payload of GET /config/providers.
type ProvidersResponse struct {
	Providers []Provider        `json:"providers"`
	Default   map[string]string `json:"default"`
}

// AppLogParams is the request body of POST /log.
type AppLogParams struct {
	Service string         `json:"service"`
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Extra   map[string]any `json:"extra,omitempty"`
}

// ---------------------------------------------------------------------------
// Config
// ---------------------------------------------------------------------------

// Config is the server configuration. Only the commonly consumed
// fields are typed; Raw preserves the full document.
type Config struct {
	Theme      string `json:"theme,omitempty"`
	Model      string `json:"model,omitempty"`
	Username   string `json:"username,omitempty"`
	Autoupdate bool   `json:"autoupdate,omitempty"`
	ShareMode  string `json:"share,omitempty"`
}

// ---------------------------------------------------------------------------
// Files
// ---------------------------------------------------------------------------

// FileInfo is the change status of a single file.
type FileInfo struct {
	Added   int64  `json:"added"`
	Path    string `json:"path"`
	Removed int64  `json:"removed"`
	Status  string `json:"status"` // "added", "deleted", or "modified"
}

// FileNode is one entry in a directory listing.
type FileNode struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Absolute string `json:"absolute"`
	Type     string `json:"type"` // "file" or "directory"
	Ignored  bool   `json:"ignored"`
}

// FileContent is the content of a file as returned by the server.
type FileContent struct {
	Type     string `json:"type"` // "text" or "binary"
	Content  string `json:"content"`
	Diff     string `json:"diff,omitempty"`
	Encoding string `json:"encoding,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// FileDiff describes the change to one file within a session diff.
type FileDiff struct {
	File    string `json:"file"`
	Added   int64  `json:"added"`
	Removed int64  `json:"removed"`
	Before  string `json:"before,omitempty"`
	After   string `json:"after,omitempty"`
}

// ---------------------------------------------------------------------------
// Find
// ---------------------------------------------------------------------------

// Position is a zero-based text position.
type Position struct {
	Line      int64 `json:"line"`
	Character int64 `json:"character"`
}

// Range is a start/end pair of positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// SymbolLocation is a symbol's place in the workspace.
type SymbolLocation struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

// SymbolInfo is one workspace symbol match.
type SymbolInfo struct {
	Kind     int64          `json:"kind"`
	Location SymbolLocation `json:"location"`
	Name     string         `json:"name"`
}

// TextMatchLines is the matched line text of a text search hit.
type TextMatchLines struct {
	Text string `json:"text"`
}

// TextSubmatch is one submatch within a text search hit.
type TextSubmatch struct {
	Match TextMatchLines `json:"match"`
	Start int64          `json:"start"`
	End   int64          `json:"end"`
}

// TextMatch is one hit of a workspace text search.
type TextMatch struct {
	AbsoluteOffset int64          `json:"absolute_offset"`
	LineNumber     int64          `json:"line_number"`
	Lines          TextMatchLines `json:"lines"`
	Path           TextMatchLines `json:"path"`
	Submatches     []TextSubmatch `json:"submatches"`
}

// ---------------------------------------------------------------------------
// Session request parameters
// ---------------------------------------------------------------------------

// SessionChatParams is the request body of POST /session/{id}/message.
type SessionChatParams struct {
	ModelID    string          `json:"modelID"`
	ProviderID string          `json:"providerID"`
	Parts      []Part          `json:"parts"`
	MessageID  string          `json:"messageID,omitempty"`
	Mode       string          `json:"mode,omitempty"`
	System     string          `json:"system,omitempty"`
	Tools      map[string]bool `json:"tools,omitempty"`
}

// SessionInitParams is the request body of POST /session/{id}/init.
type SessionInitParams struct {
	MessageID  string `json:"messageID"`
	ModelID    string `json:"modelID"`
	ProviderID string `json:"providerID"`
}

// SessionRevertParams is the request body of POST /session/{id}/revert.
type SessionRevertParams struct {
	MessageID string `json:"messageID"`
	PartID    string `json:"partID,omitempty"`
}

// SessionSummarizeParams is the request body of POST
// /session/{id}/summarize.
type SessionSummarizeParams struct {
	ModelID    string `json:"modelID"`
	ProviderID string `json:"providerID"`
}

// SessionMessage pairs a message with its content parts, as returned
// by GET /session/{id}/message.
type SessionMessage struct {
	Info  Message `json:"info"`
	Parts []Part  `json:"parts"`
}
