package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrSchema is returned when a list document doesn't match the expected shape
var ErrSchema = errors.New("invalid todo list schema")

// TodoItem is a single checkbox entry within a list
type TodoItem struct {
	Done  bool   `json:"done"`
	Title string `json:"title"`
}

// TodoList is a named list of items, one per list file
type TodoList struct {
	Name  string     `json:"name"`
	Items []TodoItem `json:"todo_list"`
}

// Collection is the ordered set of lists displayed by the client
type Collection []TodoList

const listSchemaJSON = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name", "todo_list"],
	"properties": {
		"name": {"type": "string"},
		"todo_list": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["done", "title"],
				"properties": {
					"done": {"type": "boolean"},
					"title": {"type": "string"}
				}
			}
		}
	}
}`

var listSchema = jsonschema.MustCompileString("todo_list.schema.json", listSchemaJSON)

// ParseTodoList decodes a single list document. Unknown fields are ignored, but
// every documented field must be present with the right type.
func ParseTodoList(b []byte) (TodoList, error) {
	if !utf8.Valid(b) {
		return TodoList{}, fmt.Errorf("%w: invalid utf-8", ErrSchema)
	}
	var doc interface{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return TodoList{}, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if err := listSchema.Validate(doc); err != nil {
		return TodoList{}, fmt.Errorf("%w: %s", ErrSchema, schemaErrorMessage(err))
	}

	l := TodoList{}
	if err := json.Unmarshal(b, &l); err != nil {
		return TodoList{}, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if l.Items == nil {
		l.Items = []TodoItem{}
	}
	return l, nil
}

// schemaErrorMessage reduces a validation error to its first leaf cause
func schemaErrorMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.InstanceLocation == "" {
		return ve.Message
	}
	return ve.InstanceLocation + ": " + ve.Message
}

// MarshalTodoList encodes a list in the on-disk format
func MarshalTodoList(l TodoList) ([]byte, error) {
	if l.Items == nil {
		l.Items = []TodoItem{}
	}
	return json.Marshal(l)
}

// Checkbox returns the line as it appears in the detail pane
func (i TodoItem) Checkbox() string {
	if i.Done {
		return "[x] " + i.Title
	}
	return "[ ] " + i.Title
}

// Markdown renders the list as a markdown checklist, headed by its name
func (l TodoList) Markdown() string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(l.Name)
	b.WriteString("\n")
	for _, i := range l.Items {
		b.WriteString("- ")
		b.WriteString(i.Checkbox())
		b.WriteString("\n")
	}
	return b.String()
}
