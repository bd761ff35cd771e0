package operations

import (
	"github.com/dotflex/dotflex/pkg/errors"
	"gopkg.in/yaml.v3"
)

// List is an ordered sequence of operations with a manifest encoding.
// Each element is a mapping with a single key, the kind's tag:
//
//	- copy_file: {from: "@r/features/zsh/.zshrc", to: "@t/.zshrc"}
//	- shell: {cmd: "echo hi"}
//	- script: {cmd: {file: "@r/bin/setup", args: ["--quiet"]}}
type List []Operation

// MarshalYAML implements yaml.Marshaler
func (l List) MarshalYAML() (interface{}, error) {
	out := make([]map[string]Operation, 0, len(l))
	for _, op := range l {
		out = append(out, map[string]Operation{op.Kind().String(): op})
	}
	return out, nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (l *List) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return errors.Newf(errors.ErrManifestParse, "line %d: expected a list of operations", value.Line).
			WithDetail("line", value.Line)
	}

	if len(value.Content) == 0 {
		*l = nil
		return nil
	}

	ops := make(List, 0, len(value.Content))
	for _, item := range value.Content {
		op, err := DecodeOperation(item)
		if err != nil {
			return err
		}
		ops = append(ops, op)
	}
	*l = ops
	return nil
}

// DecodeOperation decodes a single tagged operation node
func DecodeOperation(node *yaml.Node) (Operation, error) {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return nil, errors.Newf(errors.ErrManifestParse,
			"line %d: an operation must be a mapping with exactly one key", node.Line).
			WithDetail("line", node.Line)
	}

	key, body := node.Content[0], node.Content[1]
	switch key.Value {
	case TagCopyFile:
		var op CopyFile
		if err := decodeBody(body, key.Value, &op); err != nil {
			return nil, err
		}
		if op.From == "" || op.To == "" {
			return nil, missingField(key, "from and to")
		}
		return op, nil

	case TagAppendToFile:
		var op AppendToFile
		if err := decodeBody(body, key.Value, &op); err != nil {
			return nil, err
		}
		if op.From == "" || op.To == "" {
			return nil, missingField(key, "from and to")
		}
		return op, nil

	case TagShellString:
		var op ShellString
		if err := decodeBody(body, key.Value, &op); err != nil {
			return nil, err
		}
		if op.Cmd == "" {
			return nil, missingField(key, "cmd")
		}
		return op, nil

	case TagShellFile:
		var op ShellFile
		if err := decodeBody(body, key.Value, &op); err != nil {
			return nil, err
		}
		if op.Cmd.File() == "" {
			return nil, missingField(key, "cmd.file")
		}
		return op, nil

	default:
		return nil, errors.Newf(errors.ErrManifestParse, "line %d: unknown operation %q", key.Line, key.Value).
			WithDetail("line", key.Line).
			WithDetail("operation", key.Value)
	}
}

func decodeBody(body *yaml.Node, tag string, out interface{}) error {
	if body.Kind != yaml.MappingNode {
		return errors.Newf(errors.ErrManifestParse, "line %d: %s expects a mapping", body.Line, tag).
			WithDetail("line", body.Line).
			WithDetail("operation", tag)
	}
	if err := body.Decode(out); err != nil {
		return errors.Wrapf(err, errors.ErrManifestParse, "line %d: invalid %s", body.Line, tag).
			WithDetail("line", body.Line).
			WithDetail("operation", tag)
	}
	return nil
}

func missingField(key *yaml.Node, field string) error {
	return errors.Newf(errors.ErrManifestParse, "line %d: %s requires %s", key.Line, key.Value, field).
		WithDetail("line", key.Line).
		WithDetail("operation", key.Value)
}

type invocationYAML struct {
	File string   `yaml:"file"`
	Args []string `yaml:"args"`
}

// MarshalYAML implements yaml.Marshaler
func (i Invocation) MarshalYAML() (interface{}, error) {
	args := i.args
	if args == nil {
		args = []string{}
	}
	return invocationYAML{File: i.file, Args: args}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (i *Invocation) UnmarshalYAML(value *yaml.Node) error {
	var raw invocationYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*i = NewInvocation(raw.File, raw.Args...)
	return nil
}

type effectsYAML Effects

// UnmarshalYAML implements yaml.Unmarshaler. Empty lists decode as nil
// so decoded effects compare equal to constructed ones.
func (e *Effects) UnmarshalYAML(value *yaml.Node) error {
	var raw effectsYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*e = Effects{
		Generates: cloneStrings(raw.Generates),
		Clobbers:  cloneStrings(raw.Clobbers),
		Deletes:   cloneStrings(raw.Deletes),
	}
	return nil
}
