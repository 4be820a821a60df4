// Package wire carries gesture events and mode changes over a websocket as
// JSON messages.
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jeffwilliams/gesturemgr/internal/gesture"
	"github.com/jeffwilliams/gesturemgr/internal/rig"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

type MessageType string

const (
	MessageEvent MessageType = "event"
	MessageMode  MessageType = "mode"
)

// Message is one websocket text frame. Event messages name the target that
// produced the event and the event kind; mode messages name a mode.
type Message struct {
	Type     MessageType `json:"type"`
	Target   string      `json:"target,omitempty"`
	Kind     string      `json:"kind,omitempty"`
	TapCount int         `json:"tapCount,omitempty"`
	Position []float32   `json:"position,omitempty"`
	Mode     string      `json:"mode,omitempty"`
}

const messageSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["type"],
	"additionalProperties": false,
	"properties": {
		"type": {"enum": ["event", "mode"]},
		"target": {"enum": ["navigation", "manipulation", "interaction"]},
		"kind": {"enum": [
			"Tap",
			"NavigationStarted", "NavigationUpdated", "NavigationCompleted", "NavigationCanceled",
			"ManipulationStarted", "ManipulationUpdated", "ManipulationCompleted", "ManipulationCanceled",
			"SourcePressed", "SourceReleased"
		]},
		"tapCount": {"type": "integer", "minimum": 0, "maximum": 65535},
		"position": {"type": "array", "items": {"type": "number"}, "minItems": 3, "maxItems": 3},
		"mode": {"enum": ["navigation", "manipulation"]}
	},
	"allOf": [
		{
			"if": {"properties": {"type": {"const": "event"}}},
			"then": {"required": ["target", "kind"]}
		},
		{
			"if": {"properties": {"type": {"const": "mode"}}},
			"then": {"required": ["mode"]}
		}
	]
}`

var schema = jsonschema.MustCompileString("gesture-message.schema.json", messageSchema)

// Decode validates raw against the message schema and unmarshals it.
func Decode(raw []byte) (m Message, err error) {
	var payload any
	if err = json.Unmarshal(raw, &payload); err != nil {
		return m, fmt.Errorf("decode message: %w", err)
	}
	if err = schema.Validate(payload); err != nil {
		return m, fmt.Errorf("invalid message: %w", err)
	}
	if err = json.Unmarshal(raw, &m); err != nil {
		return m, fmt.Errorf("decode message: %w", err)
	}
	if m.Type == MessageEvent {
		if _, _, err = m.Event(); err != nil {
			return m, err
		}
	}
	return m, nil
}

func Encode(m Message) ([]byte, error) {
	return json.Marshal(m)
}

// EventMessage describes ev as produced by t.
func EventMessage(t rig.Target, ev gesture.Event) Message {
	m := Message{
		Type:     MessageEvent,
		Target:   t.String(),
		Kind:     ev.Kind.String(),
		TapCount: ev.TapCount,
	}
	if pos, ok := ev.Pose.TryGetPosition(); ok {
		m.Position = []float32{pos[0], pos[1], pos[2]}
	}
	return m
}

func ModeMessage(mode gesture.Mode) Message {
	return Message{Type: MessageMode, Mode: mode.String()}
}

// Event converts an event message. The kind must be one its target can
// produce.
func (m Message) Event() (t rig.Target, ev gesture.Event, err error) {
	if m.Type != MessageEvent {
		return t, ev, fmt.Errorf("message of type %q is not an event", m.Type)
	}

	t, err = rig.ParseTarget(m.Target)
	if err != nil {
		return
	}
	ev.Kind, err = gesture.ParseKind(m.Kind)
	if err != nil {
		return
	}

	if err = checkTarget(t, ev.Kind); err != nil {
		return
	}

	ev.TapCount = m.TapCount
	if len(m.Position) == 3 {
		ev.Pose = gesture.At(mgl32.Vec3{m.Position[0], m.Position[1], m.Position[2]})
	}
	return
}

func checkTarget(t rig.Target, k gesture.Kind) error {
	source := k == gesture.SourcePressed || k == gesture.SourceReleased
	if (t == rig.TargetInteraction) != source {
		return fmt.Errorf("%s events cannot come from the %s target", k, t)
	}
	if m, ok := k.Mode(); ok {
		want := rig.TargetNavigation
		if m == gesture.Manipulation {
			want = rig.TargetManipulation
		}
		if t != want {
			return fmt.Errorf("%s events cannot come from the %s target", k, t)
		}
	}
	return nil
}

func (m Message) GestureMode() (gesture.Mode, error) {
	return gesture.ParseMode(m.Mode)
}
