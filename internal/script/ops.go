package script

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dshills/textkernel/internal/engine"
)

// OpKind names a JSON script operation.
type OpKind string

// Operation kinds.
const (
	OpReplace        OpKind = "replace"
	OpInsert         OpKind = "insert"
	OpErase          OpKind = "erase"
	OpUndo           OpKind = "undo"
	OpRedo           OpKind = "redo"
	OpBegin          OpKind = "begin"
	OpEnd            OpKind = "end"
	OpBoundary       OpKind = "boundary"
	OpNarrow         OpKind = "narrow"
	OpWiden          OpKind = "widen"
	OpReadOnly       OpKind = "read_only"
	OpMarkUnmodified OpKind = "mark_unmodified"
)

// Op is one operation of a JSON script.
type Op struct {
	Kind OpKind

	// Region holds "from" and "to" for replace, erase and narrow. Insert
	// uses "at" as an empty region.
	Region engine.Region

	// Text is the inserted text of replace and insert.
	Text string

	// N is the step count of undo and redo. It defaults to one.
	N int

	// Flag is the "value" of read_only.
	Flag bool
}

// ParseOps parses a JSON script.
func ParseOps(data []byte) ([]Op, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, ErrNotArray
	}

	items := root.Array()
	ops := make([]Op, 0, len(items))
	for i, item := range items {
		op, err := parseOp(item)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func parseOp(item gjson.Result) (Op, error) {
	if !item.IsObject() {
		return Op{}, fmt.Errorf("%w: operation must be an object", ErrBadOperand)
	}

	op := Op{Kind: OpKind(item.Get("op").String()), N: 1}
	var err error
	switch op.Kind {
	case OpReplace:
		if op.Region, err = parseRegion(item); err != nil {
			return op, err
		}
		op.Text, err = parseText(item)
	case OpInsert:
		var at engine.Position
		if at, err = parsePosition(item, "at"); err != nil {
			return op, err
		}
		op.Region = engine.Reg(at, at)
		op.Text, err = parseText(item)
	case OpErase, OpNarrow:
		op.Region, err = parseRegion(item)
	case OpUndo, OpRedo:
		if n := item.Get("n"); n.Exists() {
			if n.Type != gjson.Number {
				return op, fmt.Errorf("%w: n must be a number", ErrBadOperand)
			}
			op.N = int(n.Int())
		}
	case OpReadOnly:
		v := item.Get("value")
		if !v.IsBool() {
			return op, fmt.Errorf("%w: value must be a boolean", ErrBadOperand)
		}
		op.Flag = v.Bool()
	case OpBegin, OpEnd, OpBoundary, OpWiden, OpMarkUnmodified:
	default:
		return op, fmt.Errorf("%w: %q", ErrUnknownOp, op.Kind)
	}
	return op, err
}

func parseRegion(item gjson.Result) (engine.Region, error) {
	from, err := parsePosition(item, "from")
	if err != nil {
		return engine.Region{}, err
	}
	to, err := parsePosition(item, "to")
	if err != nil {
		return engine.Region{}, err
	}
	return engine.Reg(from, to), nil
}

// parsePosition reads a [line, offset] pair.
func parsePosition(item gjson.Result, key string) (engine.Position, error) {
	v := item.Get(key)
	pair := v.Array()
	if !v.IsArray() || len(pair) != 2 || pair[0].Type != gjson.Number || pair[1].Type != gjson.Number {
		return engine.Position{}, fmt.Errorf("%w: %s must be [line, offset]", ErrBadOperand, key)
	}
	return engine.Pos(int(pair[0].Int()), int(pair[1].Int())), nil
}

func parseText(item gjson.Result) (string, error) {
	v := item.Get("text")
	if v.Type != gjson.String {
		return "", fmt.Errorf("%w: text must be a string", ErrBadOperand)
	}
	return v.String(), nil
}

// Apply performs ops on eng in order and stops at the first failure.
func Apply(eng *engine.Engine, ops []Op) error {
	for i, op := range ops {
		if err := apply(eng, op); err != nil {
			return fmt.Errorf("operation %d (%s): %w", i, op.Kind, err)
		}
	}
	return nil
}

func apply(eng *engine.Engine, op Op) error {
	var err error
	switch op.Kind {
	case OpReplace, OpInsert:
		_, err = eng.Replace(op.Region, op.Text)
	case OpErase:
		err = eng.Erase(op.Region)
	case OpUndo:
		_, err = eng.Undo(op.N)
	case OpRedo:
		_, err = eng.Redo(op.N)
	case OpBegin:
		err = eng.BeginCompoundChange()
	case OpEnd:
		eng.EndCompoundChange()
	case OpBoundary:
		err = eng.InsertUndoBoundary()
	case OpNarrow:
		err = eng.NarrowToRegion(op.Region)
	case OpWiden:
		eng.Widen()
	case OpReadOnly:
		eng.SetReadOnly(op.Flag)
	case OpMarkUnmodified:
		eng.MarkUnmodified()
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownOp, op.Kind)
	}
	return err
}

// RunJSON parses and applies a JSON script named name.
func RunJSON(eng *engine.Engine, name string, data []byte) error {
	ops, err := ParseOps(data)
	if err != nil {
		return &Error{Script: name, Err: err}
	}
	if err := Apply(eng, ops); err != nil {
		return &Error{Script: name, Err: err}
	}
	return nil
}
