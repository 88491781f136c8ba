package workflow

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// shownTypeKeywords mark an unlinked input as editable even without a widget.
var shownTypeKeywords = []string{
	"IMAGE", "UPLOAD", "TEXT", "STRING", "PROMPT", "FILE", "URL",
	"COMBO", "BOOLEAN", "INT", "FLOAT", "NUMBER", "MASK",
}

// EditKey builds the address of the visibleIndex-th shown input of a node.
func EditKey(nodeID interface{}, visibleIndex int) string {
	return idString(nodeID) + "_" + strconv.Itoa(visibleIndex)
}

// ToEditMap checks that a decoded payload is an object of edits.
func ToEditMap(raw interface{}) (EditMap, error) {
	switch m := raw.(type) {
	case nil:
		return EditMap{}, nil
	case EditMap:
		return m, nil
	case map[string]interface{}:
		return EditMap(m), nil
	default:
		return nil, fmt.Errorf("%w: inputs is %s, not an object", ErrInvalidPayload, kindOf(raw))
	}
}

// Patch writes edited widget values into a copy of doc and returns it. The
// document passed in is never modified. Shapes the patcher cannot walk are
// reported as ErrInvalidPayload.
func Patch(doc Document, edits interface{}) (Document, error) {
	editMap, err := ToEditMap(edits)
	if err != nil {
		return nil, err
	}

	root, ok := doc.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: document is %s, not an object", ErrInvalidPayload, kindOf(doc))
	}

	patched := clone(root).(map[string]interface{})

	rawNodes := patched["nodes"]
	if isBlank(rawNodes) {
		return patched, nil
	}
	nodes, ok := rawNodes.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: nodes is %s, not an array", ErrInvalidPayload, kindOf(rawNodes))
	}

	for i, n := range nodes {
		node, ok := n.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: node %d is %s, not an object", ErrInvalidPayload, i, kindOf(n))
		}
		if err := patchNode(node, editMap); err != nil {
			return nil, fmt.Errorf("%w: node %v: %v", ErrInvalidPayload, node["id"], err)
		}
	}

	return patched, nil
}

func patchNode(node map[string]interface{}, edits EditMap) error {
	var values []interface{}
	if raw := node["widgets_values"]; raw != nil {
		v, ok := raw.([]interface{})
		if !ok {
			return fmt.Errorf("widgets_values is %s, not an array", kindOf(raw))
		}
		values = v
	}

	slots, err := slotList(node, "inputs")
	if err != nil {
		return err
	}

	written := false
	visibleIndex, valueIndex := 0, 0
	for i, s := range slots {
		slot, ok := s.(map[string]interface{})
		if !ok {
			return fmt.Errorf("input %d is %s, not an object", i, kindOf(s))
		}
		if slot["link"] != nil {
			continue
		}

		hasWidget := slot["widget"] != nil
		if !hasWidget && !typeIsEditable(slot["type"]) {
			continue
		}

		if value, ok := edits[EditKey(node["id"], visibleIndex)]; ok {
			if valueIndex < len(values) {
				values[valueIndex] = value
			} else {
				values = append(values, value)
			}
			written = true
		}

		// Only widget inputs own a position in widgets_values.
		if hasWidget {
			valueIndex++
		}
		visibleIndex++
	}

	if written {
		node["widgets_values"] = values
	}

	return nil
}

func typeIsEditable(raw interface{}) bool {
	t, ok := raw.(string)
	if !ok {
		return false
	}
	t = strings.ToUpper(t)
	for _, keyword := range shownTypeKeywords {
		if strings.Contains(t, keyword) {
			return true
		}
	}
	return false
}

// idString renders a node id for an edit key. A missing id renders as "" so
// the key carries no language-specific spelling of null.
func idString(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// clone deep copies the containers of a decoded document. Scalars are shared.
func clone(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = clone(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = clone(e)
		}
		return out
	default:
		return v
	}
}
