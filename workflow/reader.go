package workflow

import (
	"encoding/json"
	"fmt"
)

// Parse builds the display listing for every node in the document. It never
// fails: a malformed document produces an empty node list, whatever counts
// could be taken, and a diagnostic in ReadResult.Error.
func Parse(doc Document) ReadResult {
	result := ReadResult{Nodes: []ParsedNode{}}

	root, ok := doc.(map[string]interface{})
	if !ok {
		result.Error = fmt.Sprintf("parse error: document is %s, not an object", kindOf(doc))
		return result
	}

	nodes, nodesOk := root["nodes"].([]interface{})
	links, linksOk := root["links"].([]interface{})
	if nodesOk {
		result.Info.TotalNodes = len(nodes)
	}
	if linksOk {
		result.Info.TotalLinks = len(links)
	}

	parsed, err := parseNodes(root["nodes"])
	if err != nil {
		result.Error = "parse error: " + err.Error()
		return result
	}
	result.Nodes = parsed

	return result
}

func parseNodes(raw interface{}) ([]ParsedNode, error) {
	if isBlank(raw) {
		return []ParsedNode{}, nil
	}
	nodes, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("nodes is %s, not an array", kindOf(raw))
	}

	parsed := make([]ParsedNode, 0, len(nodes))
	for i, n := range nodes {
		node, ok := n.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("node %d is %s, not an object", i, kindOf(n))
		}

		inputs, err := widgetInputs(node)
		if err != nil {
			return nil, fmt.Errorf("node %v: %w", node["id"], err)
		}
		outputs, err := connectedOutputs(node)
		if err != nil {
			return nil, fmt.Errorf("node %v: %w", node["id"], err)
		}

		parsed = append(parsed, ParsedNode{
			NodeID:   node["id"],
			NodeType: node["type"],
			Inputs:   inputs,
			Outputs:  outputs,
		})
	}

	return parsed, nil
}

// widgetInputs keeps unlinked inputs carrying a widget with a non-empty name.
func widgetInputs(node map[string]interface{}) ([]InputField, error) {
	slots, err := slotList(node, "inputs")
	if err != nil {
		return nil, err
	}

	fields := []InputField{}
	for _, s := range slots {
		slot, ok := s.(map[string]interface{})
		if !ok {
			continue
		}
		if slot["link"] != nil {
			continue
		}
		widget, ok := slot["widget"].(map[string]interface{})
		if !ok {
			continue
		}
		name, ok := widget["name"].(string)
		if !ok || name == "" {
			continue
		}
		fields = append(fields, InputField{
			WidgetName: name,
			RawType:    typeTag(slot["type"]),
		})
	}

	return fields, nil
}

// connectedOutputs keeps outputs whose links field is present and not null.
// An empty links array still counts as connected.
func connectedOutputs(node map[string]interface{}) ([]string, error) {
	slots, err := slotList(node, "outputs")
	if err != nil {
		return nil, err
	}

	outputs := []string{}
	for _, s := range slots {
		slot, ok := s.(map[string]interface{})
		if !ok {
			continue
		}
		if slot["links"] == nil {
			continue
		}
		t, _ := slot["type"].(string)
		outputs = append(outputs, t)
	}

	return outputs, nil
}

func slotList(node map[string]interface{}, key string) ([]interface{}, error) {
	raw := node[key]
	if isBlank(raw) {
		return nil, nil
	}
	slots, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s is %s, not an array", key, kindOf(raw))
	}
	return slots, nil
}

// isBlank reports whether a container field counts as an empty list: null,
// false, zero, "" and {} all do.
func isBlank(raw interface{}) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == ""
	case json.Number:
		f, err := v.Float64()
		return err == nil && f == 0
	case float64:
		return v == 0
	case map[string]interface{}:
		return len(v) == 0
	case []interface{}:
		return len(v) == 0
	default:
		return false
	}
}

// typeTag renders a declared slot type as a string. Missing, null, false and
// empty values all become "".
func typeTag(raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if !v {
			return ""
		}
		return "true"
	case json.Number:
		if f, err := v.Float64(); err == nil && f == 0 {
			return ""
		}
		return v.String()
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}

func kindOf(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return "an object"
	case []interface{}:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number, float64, int, int64:
		return "a number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
