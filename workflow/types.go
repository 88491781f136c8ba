package workflow

import "errors"

var (
	ErrNotFound       = errors.New("workflow not found")
	ErrDecode         = errors.New("workflow is not valid json")
	ErrInvalidPayload = errors.New("invalid payload")
)

type (
	// Document is a decoded workflow graph. Objects are map[string]interface{},
	// arrays are []interface{} and numbers are json.Number.
	Document = interface{}

	// EditMap addresses widget values by "<nodeId>_<visibleIndex>".
	EditMap map[string]interface{}

	ReadResult struct {
		Nodes []ParsedNode `json:"nodes"`
		Info  WorkflowInfo `json:"workflow_info"`
		Error string       `json:"error,omitempty"`
	}

	WorkflowInfo struct {
		TotalNodes int `json:"total_nodes"`
		TotalLinks int `json:"total_links"`
	}

	ParsedNode struct {
		NodeID   interface{}  `json:"node_id"`
		NodeType interface{}  `json:"node_type"`
		Inputs   []InputField `json:"inputs"`
		Outputs  []string     `json:"outputs"`
	}

	InputField struct {
		WidgetName string `json:"widget_name"`
		RawType    string `json:"raw_type"`
	}

	// Entry describes a workflow file found under the workflows directory.
	Entry struct {
		Name     string `json:"name"`
		Filename string `json:"filename"`
		Path     string `json:"path"`
	}
)
