package api

import (
	"encoding/json"
	"regexp"
	"strings"
)

var trainerIDRegex = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

var battleIDRegex = regexp.MustCompile(`^[0-9a-fA-F-]{36}$`)

func normalizeBattleID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeTimestamps recursively renames GORM model keys from CamelCase
// (ID, CreatedAt, UpdatedAt, DeletedAt) to snake_case so clients
// consistently receive snake_case keys.
func normalizeTimestamps(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeTimestamps(val)
		}
		for from, to := range map[string]string{"ID": "id", "CreatedAt": "created_at", "UpdatedAt": "updated_at", "DeletedAt": "deleted_at"} {
			if val, ok := vv[from]; ok {
				vv[to] = val
				delete(vv, from)
			}
		}
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeTimestamps(vv[i])
		}
		return vv
	default:
		return v
	}
}

// MarshalIntoSnakeTimestamps marshals the given value into JSON, then decodes
// into an interface{} and normalizes GORM keys to snake_case.
func MarshalIntoSnakeTimestamps(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return normalizeTimestamps(out), nil
}
