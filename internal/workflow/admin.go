package workflow

import (
	"encoding/json"

	"github.com/union-match/union-match/internal/models"
)

// IsAdmin accepts every admin-provisioning shape seen in the wild:
// app_metadata.roles containing "admin" (the canonical form), a single
// app_metadata.role field, or an is_admin flag in either metadata blob as
// boolean true or string "true". The extra paths are kept for migration
// compatibility.
func IsAdmin(user models.User) bool {
	appMeta := decodeMetadata(user.AppMetadata)
	userMeta := decodeMetadata(user.UserMetadata)

	if roles, ok := appMeta["roles"].([]interface{}); ok {
		for _, role := range roles {
			if role == "admin" {
				return true
			}
		}
	}

	if role, ok := appMeta["role"].(string); ok && role == "admin" {
		return true
	}

	return isTruthyFlag(appMeta["is_admin"]) || isTruthyFlag(userMeta["is_admin"])
}

func decodeMetadata(raw []byte) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}

	var meta map[string]interface{}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil
	}

	return meta
}

func isTruthyFlag(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}
