package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/singhdivyam772/workflow-builder-assignment/internal/model"
)

// DefaultKey is the slot holding the serialized task list.
const DefaultKey = "tasks"

var ErrMalformedPayload = errors.New("stored task list is not a JSON array")

// Storage persists the whole task list as one unit.
type Storage interface {
	Load(ctx context.Context) ([]model.Task, error)
	Save(ctx context.Context, tasks []model.Task) error
}

// Encode serializes the task list. A nil list encodes as an empty array.
func Encode(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return b, nil
}

// Decode parses a stored slot. An empty slot or JSON null yields an empty list.
func Decode(b []byte) ([]model.Task, error) {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return []model.Task{}, nil
	}
	if !gjson.Valid(s) || !gjson.Parse(s).IsArray() {
		return nil, ErrMalformedPayload
	}
	var tasks []model.Task
	if err := json.Unmarshal([]byte(s), &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return DefaultKey
	}
	return key
}
