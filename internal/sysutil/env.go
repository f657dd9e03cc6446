package sysutil

import "os"

// BoolEnv reports whether the environment variable key is set to exactly "1".
// Unset variables and any other value, including "true" and "", read as false.
func BoolEnv(key string) bool {
	val, ok := os.LookupEnv(key)
	return ok && val == "1"
}
