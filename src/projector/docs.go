// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package projector turns verified token payloads into command output.
//
// Payload fields are checked against embedded JSON schemas before they are
// read, so a token that verifies but carries an unexpected structure fails
// with [ErrPayloadShape] instead of producing partial output.
//
// Example usage:
//
//	p, err := projector.New(projector.Options{
//		CertsField:        "certs",
//		KeyIDField:        "keyId",
//		ActiveKeyIDsField: "activeKeyIds",
//		RevokedField:      "revokedCerts",
//		DropFields:        []string{"keyId", "subjectPublicKeyInfo"},
//	})
//	if err != nil {
//		return err
//	}
//
//	keys, err := p.KeysByID(updates, keylist)
//	if err != nil {
//		return err
//	}
//	return projector.Render(os.Stdout, keys, projector.FormatJSON, 2)
package projector
