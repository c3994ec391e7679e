package script

import (
	"strings"

	"github.com/rivo/uniseg"
	"github.com/tidwall/sjson"

	"github.com/dshills/textkernel/internal/engine"
)

// Snapshot renders the state of eng as JSON:
//
//	{"id": "...", "revision": 3, "length": 10, "modified": true,
//	 "undoable": 1, "redoable": 0,
//	 "lines": [{"text": "hello", "newline": "lf", "graphemes": 5}]}
func Snapshot(eng *engine.Engine) ([]byte, error) {
	out := []byte(`{}`)
	var err error
	set := func(path string, value any) {
		if err == nil {
			out, err = sjson.SetBytes(out, path, value)
		}
	}

	set("id", eng.ID().String())
	set("revision", eng.Revision())
	set("length", eng.Length())
	set("modified", eng.IsModified())
	set("undoable", eng.NumberOfUndoableChanges())
	set("redoable", eng.NumberOfRedoableChanges())
	if err == nil {
		out, err = sjson.SetRawBytes(out, "lines", []byte(`[]`))
	}

	eng.Lines(func(_ int, text string, nl engine.Newline) bool {
		line := []byte(`{}`)
		line, err = sjson.SetBytes(line, "text", text)
		if err == nil {
			line, err = sjson.SetBytes(line, "newline", strings.ToLower(nl.String()))
		}
		if err == nil {
			line, err = sjson.SetBytes(line, "graphemes", uniseg.GraphemeClusterCount(text))
		}
		if err == nil {
			out, err = sjson.SetRawBytes(out, "lines.-1", line)
		}
		return err == nil
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}
