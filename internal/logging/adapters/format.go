package adapters

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"talentflow/internal/logging/types"
	"talentflow/internal/tenant"
)

// entryFields merges the entry's fields with the tenant scope found in its context
func entryFields(entry *types.LogEntry) map[string]interface{} {
	fields := make(map[string]interface{}, len(entry.Fields)+2)
	if entry.Context != nil {
		if scope, ok := tenant.FromContext(entry.Context); ok {
			fields["org_id"] = scope.OrganizationID
			if scope.UserID != "" {
				fields["user_id"] = scope.UserID
			}
		}
	}
	for k, v := range entry.Fields {
		fields[k] = v
	}
	return fields
}

// formatJSON formats the log entry as a single JSON object
func formatJSON(entry *types.LogEntry) (string, error) {
	logData := entryFields(entry)
	logData["level"] = entry.Level.String()
	logData["message"] = entry.Message
	logData["time"] = entry.Timestamp.Format(time.RFC3339)

	data, err := json.Marshal(logData)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// formatText formats the log entry as human-readable text with fields in key order
func formatText(entry *types.LogEntry, colorize func(string) string) string {
	timestamp := entry.Timestamp.Format("2006-01-02T15:04:05.000Z07:00")
	level := strings.ToUpper(entry.Level.String())
	if colorize != nil {
		level = colorize(level)
	}

	output := fmt.Sprintf("%s [%s] %s", timestamp, level, entry.Message)

	fields := entryFields(entry)
	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
		}
		output += " " + strings.Join(parts, " ")
	}

	return output
}

func format(formatName string, entry *types.LogEntry, colorize func(string) string) (string, error) {
	if strings.ToLower(formatName) == "text" {
		return formatText(entry, colorize), nil
	}
	return formatJSON(entry)
}
