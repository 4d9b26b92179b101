package config

import (
	"os"
	"strconv"
	"strings"
)

// ApplyEnv overlays environment variables onto cfg. Unset variables leave
// the file values alone.
func ApplyEnv(cfg *Config) {
	if v := getEnv("WORKFLOW_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := getEnv("WORKFLOW_DATA_DIR"); v != "" {
		cfg.Server.DataDir = v
	}
	if v := getEnv("WORKFLOW_STATIC_DIR"); v != "" {
		cfg.Server.StaticDir = v
	}
	if v := getEnv("WORKFLOW_STORAGE"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := getEnv("WORKFLOW_STORAGE_KEY"); v != "" {
		cfg.Storage.Key = v
	}
	if v := getEnv("WORKFLOW_DATABASE_URL"); v != "" {
		cfg.Storage.DatabaseURL = v
	}
	if v, ok := getEnvBool("WORKFLOW_STRICT_APPROVAL_GUARD"); ok {
		cfg.Rules.ApprovalRequiresCompleteTaskDetails = v
	}
	if v, ok := getEnvBool("WORKFLOW_APPROVAL_COMMENT_REQUIRED"); ok {
		cfg.Rules.ApprovalCommentRequired = v
	}
	if v := getEnvInt("WORKFLOW_NOTIFICATIONS_MAX"); v > 0 {
		cfg.Notifications.MaxKept = v
	}
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getEnvInt(key string) int {
	val := getEnv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvBool(key string) (bool, bool) {
	switch strings.ToLower(getEnv(key)) {
	case "1", "true", "yes":
		return true, true
	case "0", "false", "no":
		return false, true
	default:
		return false, false
	}
}
