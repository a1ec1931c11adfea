package engine

import (
	"encoding/json"
	"fmt"

	"github.com/amterp/swatch/internal/history"
)

// Operations are persisted as {"op": kind, "data": {...}} so the workspace
// file keeps undo/redo across invocations.
type record struct {
	Op   string          `json:"op"`
	Data json.RawMessage `json:"data"`
}

var opKinds = map[string]func() history.Operation{
	"insert":  func() history.Operation { return &insertOp{} },
	"delete":  func() history.Operation { return &deleteOp{} },
	"reorder": func() history.Operation { return &reorderOp{} },
	"rename":  func() history.Operation { return &renameOp{} },
	"set":     func() history.Operation { return &setColorsOp{} },
	"group":   func() history.Operation { return &groupAddOp{} },
	"ungroup": func() history.Operation { return &ungroupOp{} },
}

func kindOf(op history.Operation) (string, error) {
	switch op.(type) {
	case *insertOp:
		return "insert", nil
	case *deleteOp:
		return "delete", nil
	case *reorderOp:
		return "reorder", nil
	case *renameOp:
		return "rename", nil
	case *setColorsOp:
		return "set", nil
	case *groupAddOp:
		return "group", nil
	case *ungroupOp:
		return "ungroup", nil
	}
	return "", fmt.Errorf("operation %T cannot be persisted", op)
}

// EncodeOps converts operations to persisted records.
func EncodeOps(ops []history.Operation) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(ops))
	for _, op := range ops {
		kind, err := kindOf(op)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(op)
		if err != nil {
			return nil, fmt.Errorf("encoding %s operation: %w", kind, err)
		}
		raw, err := json.Marshal(record{Op: kind, Data: data})
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

// DecodeOps converts persisted records back to operations.
func DecodeOps(raws []json.RawMessage) ([]history.Operation, error) {
	out := make([]history.Operation, 0, len(raws))
	for i, raw := range raws {
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		mk, ok := opKinds[rec.Op]
		if !ok {
			return nil, fmt.Errorf("record %d: unknown operation %q", i, rec.Op)
		}
		op := mk()
		if err := json.Unmarshal(rec.Data, op); err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, rec.Op, err)
		}
		out = append(out, op)
	}
	return out, nil
}
