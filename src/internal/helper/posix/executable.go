// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"strings"
)

// DefaultExecutableName is used when argv[0] carries no usable name.
const DefaultExecutableName = "x5c-jwt-verifier"

// ExecutableName returns the base name of arg0 without a trailing ".exe".
//
// Both '/' and '\' are treated as separators, so a Windows path yields the
// same name on every operating system.
//
// Parameters:
//   - arg0: The program path as found in argv[0]
//
// Returns:
//   - string: Clean executable name, or DefaultExecutableName
func ExecutableName(arg0 string) string {
	parts := strings.FieldsFunc(arg0, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return DefaultExecutableName
	}

	name := strings.TrimSuffix(parts[len(parts)-1], ".exe")
	if name == "" || name == "." || name == ".." {
		return DefaultExecutableName
	}
	return name
}

// GetExecutableName returns ExecutableName for the running program.
func GetExecutableName() string {
	if len(os.Args) == 0 {
		return DefaultExecutableName
	}
	return ExecutableName(os.Args[0])
}
