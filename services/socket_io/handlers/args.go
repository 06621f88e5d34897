package handlers

import (
	"encoding/json"
	"fmt"
)

// decodeArg converts a raw socket.io argument (generic map from the JSON
// parser) into a typed struct.
func decodeArg(arg interface{}, dst interface{}) error {
	data, err := json.Marshal(arg)
	if err != nil {
		return fmt.Errorf("error re-encoding argument: %v", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("error decoding argument: %v", err)
	}
	return nil
}

// firstArg returns args[0] or nil when the client sent nothing.
func firstArg(args []interface{}) interface{} {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}

func argString(args []interface{}, key string) string {
	m, ok := firstArg(args).(map[string]interface{})
	if !ok {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func argInt(args []interface{}, key string) int {
	m, ok := firstArg(args).(map[string]interface{})
	if !ok {
		return 0
	}
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	default:
		return 0
	}
}

func argBool(args []interface{}, key string) bool {
	m, ok := firstArg(args).(map[string]interface{})
	if !ok {
		return false
	}
	b, _ := m[key].(bool)
	return b
}
