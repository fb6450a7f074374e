// Copyright 2025 The opencode-go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package opencode

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Event is one event from the server's /event stream. The concrete
// type is determined by the wire discriminator; use a type switch or
// Kind to dispatch.
type Event interface {
	// Kind returns the wire discriminator of the event, for example
	// "message.updated".
	Kind() string
}

// Event discriminator values.
const (
	EventKindInstallationUpdated         = "installation.updated"
	EventKindInstallationUpdateAvailable = "installation.update-available"
	EventKindProjectUpdated              = "project.updated"
	EventKindServerConnected             = "server.connected"
	EventKindLspClientDiagnostics        = "lsp.client.diagnostics"
	EventKindFileEdited                  = "file.edited"
	EventKindFileWatcherUpdated          = "file.watcher.updated"
	EventKindMessageUpdated              = "message.updated"
	EventKindMessageRemoved              = "message.removed"
	EventKindMessagePartUpdated          = "message.part.updated"
	EventKindMessagePartRemoved          = "message.part.removed"
	EventKindSessionCreated              = "session.created"
	EventKindSessionUpdated              = "session.updated"
	EventKindSessionDeleted              = "session.deleted"
	EventKindSessionIdle                 = "session.idle"
	EventKindSessionError                = "session.error"
	EventKindPermissionAsked             = "permission.asked"
	EventKindPermissionReplied           = "permission.replied"
)

// EmptyProps is the payload of events that carry no data.
type EmptyProps struct{}

// InstallationUpdatedEvent reports that the installation was updated
// to a new version.
type InstallationUpdatedEvent struct {
	Type       string                   `json:"type"`
	Properties InstallationUpdatedProps `json:"properties"`
}

// InstallationUpdatedProps is the payload of an
// InstallationUpdatedEvent.
type InstallationUpdatedProps struct {
	Version string `json:"version"`
}

func (e *InstallationUpdatedEvent) Kind() string { return EventKindInstallationUpdated }

// InstallationUpdateAvailableEvent reports that a newer version is
// available for installation.
type InstallationUpdateAvailableEvent struct {
	Type       string                           `json:"type"`
	Properties InstallationUpdateAvailableProps `json:"properties"`
}

// InstallationUpdateAvailableProps is the payload of an
// InstallationUpdateAvailableEvent.
type InstallationUpdateAvailableProps struct {
	Version string `json:"version"`
}

func (e *InstallationUpdateAvailableEvent) Kind() string { return EventKindInstallationUpdateAvailable }

// ProjectUpdatedEvent reports that a project was updated. The project
// payload is open-ended and kept raw.
type ProjectUpdatedEvent struct {
	Type       string         `json:"type"`
	Properties jsontext.Value `json:"properties"`
}

func (e *ProjectUpdatedEvent) Kind() string { return EventKindProjectUpdated }

// ServerConnectedEvent is the first event on a freshly opened stream.
type ServerConnectedEvent struct {
	Type       string     `json:"type"`
	Properties EmptyProps `json:"properties"`
}

func (e *ServerConnectedEvent) Kind() string { return EventKindServerConnected }

// LspClientDiagnosticsEvent reports new diagnostics from an LSP server.
type LspClientDiagnosticsEvent struct {
	Type       string                    `json:"type"`
	Properties LspClientDiagnosticsProps `json:"properties"`
}

// LspClientDiagnosticsProps is the payload of an
// LspClientDiagnosticsEvent.
type LspClientDiagnosticsProps struct {
	Path     string `json:"path"`
	ServerID string `json:"serverID"`
}

func (e *LspClientDiagnosticsEvent) Kind() string { return EventKindLspClientDiagnostics }

// FileEditedEvent reports that a file was edited through the server.
type FileEditedEvent struct {
	Type       string          `json:"type"`
	Properties FileEditedProps `json:"properties"`
}

// FileEditedProps is the payload of a FileEditedEvent.
type FileEditedProps struct {
	File string `json:"file"`
}

func (e *FileEditedEvent) Kind() string { return EventKindFileEdited }

// FileWatcherUpdatedEvent reports a filesystem watcher notification.
type FileWatcherUpdatedEvent struct {
	Type       string                  `json:"type"`
	Properties FileWatcherUpdatedProps `json:"properties"`
}

// FileWatcherUpdatedProps is the payload of a FileWatcherUpdatedEvent.
type FileWatcherUpdatedProps struct {
	Event string `json:"event"` // "rename" or "change"
	File  string `json:"file"`
}

func (e *FileWatcherUpdatedEvent) Kind() string { return EventKindFileWatcherUpdated }

// MessageUpdatedEvent reports that a message was created or updated.
type MessageUpdatedEvent struct {
	Type       string              `json:"type"`
	Properties MessageUpdatedProps `json:"properties"`
}

// MessageUpdatedProps is the payload of a MessageUpdatedEvent.
type MessageUpdatedProps struct {
	Info Message `json:"info"`
}

func (e *MessageUpdatedEvent) Kind() string { return EventKindMessageUpdated }

// MessageRemovedEvent reports that a message was removed.
type MessageRemovedEvent struct {
	Type       string              `json:"type"`
	Properties MessageRemovedProps `json:"properties"`
}

// MessageRemovedProps is the payload of a MessageRemovedEvent.
type MessageRemovedProps struct {
	MessageID string `json:"messageID"`
	SessionID string `json:"sessionID"`
}

func (e *MessageRemovedEvent) Kind() string { return EventKindMessageRemoved }

// MessagePartUpdatedEvent reports that a message part was created or
// updated.
type MessagePartUpdatedEvent struct {
	Type       string                  `json:"type"`
	Properties MessagePartUpdatedProps `json:"properties"`
}

// MessagePartUpdatedProps is the payload of a MessagePartUpdatedEvent.
type MessagePartUpdatedProps struct {
	Part Part `json:"part"`
}

func (e *MessagePartUpdatedEvent) Kind() string { return EventKindMessagePartUpdated }

// MessagePartRemovedEvent reports that a message part was removed.
type MessagePartRemovedEvent struct {
	Type       string                  `json:"type"`
	Properties MessagePartRemovedProps `json:"properties"`
}

// MessagePartRemovedProps is the payload of a MessagePartRemovedEvent.
type MessagePartRemovedProps struct {
	SessionID string `json:"sessionID"`
	MessageID string `json:"messageID"`
	PartID    string `json:"partID"`
}

func (e *MessagePartRemovedEvent) Kind() string { return EventKindMessagePartRemoved }

// SessionCreatedEvent reports that a session was created.
type SessionCreatedEvent struct {
	Type       string           `json:"type"`
	Properties SessionInfoProps `json:"properties"`
}

func (e *SessionCreatedEvent) Kind() string { return EventKindSessionCreated }

// SessionUpdatedEvent reports that a session was updated.
type SessionUpdatedEvent struct {
	Type       string           `json:"type"`
	Properties SessionInfoProps `json:"properties"`
}

func (e *SessionUpdatedEvent) Kind() string { return EventKindSessionUpdated }

// SessionDeletedEvent reports that a session was deleted.
type SessionDeletedEvent struct {
	Type       string           `json:"type"`
	Properties SessionInfoProps `json:"properties"`
}

func (e *SessionDeletedEvent) Kind() string { return EventKindSessionDeleted }

// SessionInfoProps is the payload of session lifecycle events.
type SessionInfoProps struct {
	Info Session `json:"info"`
}

// SessionIdleEvent reports that a session finished processing.
type SessionIdleEvent struct {
	Type       string           `json:"type"`
	Properties SessionIdleProps `json:"properties"`
}

// SessionIdleProps is the payload of a SessionIdleEvent.
type SessionIdleProps struct {
	SessionID string `json:"sessionID"`
}

func (e *SessionIdleEvent) Kind() string { return EventKindSessionIdle }

// SessionErrorEvent reports an error raised within a session.
type SessionErrorEvent struct {
	Type       string            `json:"type"`
	Properties SessionErrorProps `json:"properties"`
}

// SessionErrorProps is the payload of a SessionErrorEvent.
type SessionErrorProps struct {
	Error     *SessionError `json:"error,omitempty"`
	SessionID string        `json:"sessionID,omitempty"`
}

func (e *SessionErrorEvent) Kind() string { return EventKindSessionError }

// PermissionAskedEvent reports a pending permission request. The
// request payload is open-ended and kept raw.
type PermissionAskedEvent struct {
	Type       string         `json:"type"`
	Properties jsontext.Value `json:"properties"`
}

func (e *PermissionAskedEvent) Kind() string { return EventKindPermissionAsked }

// PermissionRepliedEvent reports the outcome of a permission request.
type PermissionRepliedEvent struct {
	Type       string                 `json:"type"`
	Properties PermissionRepliedProps `json:"properties"`
}

// PermissionRepliedProps is the payload of a PermissionRepliedEvent.
type PermissionRepliedProps struct {
	SessionID string `json:"sessionID"`
	RequestID string `json:"requestID"`
	Reply     string `json:"reply"` // "once", "always", or "reject"
}

func (e *PermissionRepliedEvent) Kind() string { return EventKindPermissionReplied }

// UnmarshalEvent decodes one event from its wire form, dispatching on
// the "type" discriminator. Unknown discriminators are an error: the
// stream reader decides whether to skip or fail.
func UnmarshalEvent(data []byte) (Event, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	var ev Event
	switch probe.Type {
	case EventKindInstallationUpdated:
		ev = new(InstallationUpdatedEvent)
	case EventKindInstallationUpdateAvailable:
		ev = new(InstallationUpdateAvailableEvent)
	case EventKindProjectUpdated:
		ev = new(ProjectUpdatedEvent)
	case EventKindServerConnected:
		ev = new(ServerConnectedEvent)
	case EventKindLspClientDiagnostics:
		ev = new(LspClientDiagnosticsEvent)
	case EventKindFileEdited:
		ev = new(FileEditedEvent)
	case EventKindFileWatcherUpdated:
		ev = new(FileWatcherUpdatedEvent)
	case EventKindMessageUpdated:
		ev = new(MessageUpdatedEvent)
	case EventKindMessageRemoved:
		ev = new(MessageRemovedEvent)
	case EventKindMessagePartUpdated:
		ev = new(MessagePartUpdatedEvent)
	case EventKindMessagePartRemoved:
		ev = new(MessagePartRemovedEvent)
	case EventKindSessionCreated:
		ev = new(SessionCreatedEvent)
	case EventKindSessionUpdated:
		ev = new(SessionUpdatedEvent)
	case EventKindSessionDeleted:
		ev = new(SessionDeletedEvent)
	case EventKindSessionIdle:
		ev = new(SessionIdleEvent)
	case EventKindSessionError:
		ev = new(SessionErrorEvent)
	case EventKindPermissionAsked:
		ev = new(PermissionAskedEvent)
	case EventKindPermissionReplied:
		ev = new(PermissionRepliedEvent)
	default:
		return nil, fmt.Errorf("unknown event type: %q", probe.Type)
	}

	if err := json.Unmarshal(data, ev); err != nil {
		return nil, err
	}
	return ev, nil
}
