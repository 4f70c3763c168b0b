package helper

import (
	"os"
	"strconv"
	"time"
)

// GetEnv retrieves an environment variable or returns the default value
func GetEnv(key string, defaultValue ...string) string {
	value := os.Getenv(key)
	if value == "" && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// GetEnvAsIntWithDefault retrieves an environment variable as an integer with a default value
func GetEnvAsIntWithDefault(name string, defaultValue int) int {
	if val, ok := os.LookupEnv(name); ok {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// MillisToDuration converts a millisecond config value.
func MillisToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// SecondsToDuration converts a second config value.
func SecondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}
