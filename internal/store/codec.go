package store

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

var (
	// ErrUnknownAction is returned for an unrecognised action type
	ErrUnknownAction = errors.New("unknown action")
	// ErrInvalidAction is returned when an action payload fails validation
	ErrInvalidAction = errors.New("invalid action")
)

// envelope is the wire form of an action
type envelope struct {
	Type    ActionType             `json:"type"`
	Payload sonic.NoCopyRawMessage `json:"payload,omitempty"`
}

// EncodeAction serialises a into a {"type", "payload"} envelope
func EncodeAction(a Action) ([]byte, error) {
	if a == nil {
		return nil, ErrUnknownAction
	}
	payload, err := sonic.ConfigStd.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", a.Type(), err)
	}
	return sonic.ConfigStd.Marshal(envelope{Type: a.Type(), Payload: payload})
}

// DecodeAction parses an envelope and validates its payload
func DecodeAction(data []byte) (Action, error) {
	var env envelope
	if err := sonic.ConfigStd.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}

	var (
		a   Action
		err error
	)
	switch env.Type {
	case TypeAddBoard:
		a, err = decodePayload[AddBoard](env.Payload)
	case TypeUpdateBoard:
		a, err = decodePayload[UpdateBoard](env.Payload)
	case TypeDeleteBoard:
		a, err = decodePayload[DeleteBoard](env.Payload)
	case TypeAddColumn:
		a, err = decodePayload[AddColumn](env.Payload)
	case TypeUpdateColumn:
		a, err = decodePayload[UpdateColumn](env.Payload)
	case TypeDeleteColumn:
		a, err = decodePayload[DeleteColumn](env.Payload)
	case TypeAddTask:
		a, err = decodePayload[AddTask](env.Payload)
	case TypeUpdateTask:
		a, err = decodePayload[UpdateTask](env.Payload)
	case TypeDeleteTask:
		a, err = decodePayload[DeleteTask](env.Payload)
	case TypeMoveTask:
		a, err = decodePayload[MoveTask](env.Payload)
	case TypeReorderTasks:
		a, err = decodePayload[ReorderTasks](env.Payload)
	case TypeToggleDarkMode:
		a, err = decodePayload[ToggleDarkMode](env.Payload)
	case TypeUpdateThemeColors:
		a, err = decodePayload[UpdateThemeColors](env.Payload)
	case TypeResetThemeColors:
		a, err = decodePayload[ResetThemeColors](env.Payload)
	case TypeLoadInitialData:
		a, err = decodePayload[LoadInitialData](env.Payload)
	case TypeClearAllData:
		a, err = decodePayload[ClearAllData](env.Payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Type)
	}
	if err != nil {
		return nil, err
	}
	if err := Validate(a); err != nil {
		return nil, err
	}
	return a, nil
}

func decodePayload[T Action](raw []byte) (Action, error) {
	var a T
	if len(raw) == 0 || string(raw) == "null" {
		return a, nil
	}
	if err := sonic.ConfigStd.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: %s payload: %v", ErrInvalidAction, a.Type(), err)
	}
	return a, nil
}

// Validate checks that an action carries the ids and records it needs.
// Reduce itself accepts anything; views call Validate at their boundary.
func Validate(a Action) error {
	var err error
	switch a := a.(type) {
	case AddBoard:
		err = a.Board.Validate()
	case UpdateBoard:
		err = a.Board.Validate()
	case DeleteBoard:
		err = requireID("boardId", a.BoardID)
	case AddColumn:
		err = a.Column.Validate()
	case UpdateColumn:
		err = a.Column.Validate()
	case DeleteColumn:
		err = requireID("columnId", a.ColumnID)
	case AddTask:
		err = a.Task.Validate()
	case UpdateTask:
		err = a.Task.Validate()
	case DeleteTask:
		err = requireID("taskId", a.TaskID)
	case MoveTask:
		err = requireID("taskId", a.TaskID)
		if err == nil {
			err = requireID("newColumnId", a.ColumnID)
		}
	case ReorderTasks:
		err = requireID("columnId", a.ColumnID)
	case nil:
		return ErrUnknownAction
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}
	return nil
}

func requireID(name, id string) error {
	if id == "" {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}
