// Package util provides small helpers shared by the service: environment
// lookups and logger construction.
//
//revive:disable-next-line:var-naming
package util

import (
	"os"
	"strconv"
	"strings"
)

// GetEnvDefault is a convenience function for handling env vars
func GetEnvDefault(key, defVal string) string {
	val, ex := os.LookupEnv(key) // get the env var
	if !ex {                     // not found return default
		return defVal
	}
	return val // return value for env var
}

// GetEnvInt returns the env var parsed as an int, or defVal when unset or unparsable
func GetEnvInt(key string, defVal int) int {
	val, ex := os.LookupEnv(key)
	if !ex {
		return defVal
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return defVal
	}
	return n
}

// SplitList splits a comma separated value and drops empty entries
func SplitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
