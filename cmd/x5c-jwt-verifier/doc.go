// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// x5c-jwt-verifier is a command-line tool for verifying compact JWS tokens
// whose "x5c" header carries the signing certificate chain, and for printing
// what the verified payloads contain.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/x5c-jwt-verifier/cmd/x5c-jwt-verifier@latest
//
// # Usage
//
//	x5c-jwt-verifier json ROOT_CERT UPDATES_JWT KEYLIST_JWT [--format json|yaml]
//	x5c-jwt-verifier txt ROOT_CERT [RESPONSE_JWT]
//	x5c-jwt-verifier inspect ROOT_CERT TOKEN_JWT [--tree|--table|--json]
//
// # Global Flags
//
//	    --config    Configuration file (JSON or YAML); default $X5C_JWT_CONFIG_FILE
//	    --log-json  Write diagnostics as JSON lines on stderr
//	-v, --verbose   Log each verified token
//
// # Examples
//
// Print the active signing certificates grouped by key identifier:
//
//	x5c-jwt-verifier json root.pem updates.jwt keylist.jwt > keys.json
//
// Print revoked certificate identifiers from a token on standard input:
//
//	curl -s https://example.org/revocation.jwt | x5c-jwt-verifier txt root.pem
//
// Show the verified chain of a token as a markdown table:
//
//	x5c-jwt-verifier inspect --table root.pem updates.jwt
//
// # Exit Status
//
// 0 on success, 1 on any error and 130 when interrupted by a signal.
package main
