// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/x5c-jwt-verifier/src/logger"
)

// decodeLines decodes every JSON line written to buf.
func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	scanner := bufio.NewScanner(strings.NewReader(buf.String()))
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry), "line %q", scanner.Text())
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func TestCLILogger(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Printf",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				log.Printf("verified %d tokens", 2)

				assert.Equal(t, "verified 2 tokens\n", buf.String())
			},
		},
		{
			name: "Println",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				log.Println("chain", "verified")

				assert.Equal(t, "chain verified\n", buf.String())
			},
		},
		{
			name: "SetOutput",
			testFunc: func(t *testing.T) {
				var buf1, buf2 bytes.Buffer
				log := logger.NewCLILogger()

				log.SetOutput(&buf1)
				log.Println("first")

				log.SetOutput(&buf2)
				log.Println("second")

				assert.Contains(t, buf1.String(), "first")
				assert.Contains(t, buf2.String(), "second")
				assert.NotContains(t, buf1.String(), "second")
			},
		},
		{
			name: "ConcurrentUsage",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				var wg sync.WaitGroup
				for i := range 20 {
					wg.Go(func() { log.Printf("message %d", i) })
				}
				wg.Wait()

				assert.Equal(t, 20, strings.Count(buf.String(), "\n"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestJSONLogger(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Printf",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewJSONLogger(&buf)

				log.Printf("verify %s: %v", "updates.jwt", "bad signature")

				entries := decodeLines(t, &buf)
				require.Len(t, entries, 1)
				assert.Equal(t, map[string]any{
					"level":   "info",
					"message": "verify updates.jwt: bad signature",
				}, entries[0])
			},
		},
		{
			name: "Println",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewJSONLogger(&buf)

				log.Println("revoked entries:", 3)

				entries := decodeLines(t, &buf)
				require.Len(t, entries, 1)
				assert.Equal(t, "revoked entries:3", entries[0]["message"])
			},
		},
		{
			name: "Special Characters",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewJSONLogger(&buf)

				msg := "subject \"CN=<Signer>\"\nissuer\tCN=Root & Co"
				log.Printf("%s", msg)

				assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "entry must stay on one line")
				entries := decodeLines(t, &buf)
				require.Len(t, entries, 1)
				assert.Equal(t, msg, entries[0]["message"])
			},
		},
		{
			name: "With Fields",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				base := logger.NewJSONLogger(&buf)
				child := base.With("command", "json").With("file", "keylist.jwt")

				child.Println("verified")
				base.Println("done")

				entries := decodeLines(t, &buf)
				require.Len(t, entries, 2)
				assert.Equal(t, "json", entries[0]["command"])
				assert.Equal(t, "keylist.jwt", entries[0]["file"])
				assert.NotContains(t, entries[1], "command", "parent must not gain child fields")
			},
		},
		{
			name: "Fields Cannot Override Message",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewJSONLogger(&buf).With("message", "spoofed")

				log.Println("real")

				entries := decodeLines(t, &buf)
				require.Len(t, entries, 1)
				assert.Equal(t, "real", entries[0]["message"])
			},
		},
		{
			name: "Unencodable Field",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewJSONLogger(&buf).With("fn", func() {})

				log.Println("still logged")

				entries := decodeLines(t, &buf)
				require.Len(t, entries, 1)
				assert.Equal(t, "still logged", entries[0]["message"])
			},
		},
		{
			name: "SetOutput Shared With Children",
			testFunc: func(t *testing.T) {
				var buf1, buf2 bytes.Buffer
				base := logger.NewJSONLogger(&buf1)
				child := base.With("k", "v")

				base.SetOutput(&buf2)
				child.Println("moved")

				assert.Empty(t, buf1.String())
				assert.Contains(t, buf2.String(), "moved")
			},
		},
		{
			name: "Nil Writer",
			testFunc: func(t *testing.T) {
				log := logger.NewJSONLogger(nil)
				assert.NotPanics(t, func() { log.Println("discarded") })

				log.SetOutput(nil)
				assert.NotPanics(t, func() { log.Printf("%d", 1) })
			},
		},
		{
			name: "ConcurrentUsage",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewJSONLogger(&buf)

				var wg sync.WaitGroup
				for i := range 50 {
					wg.Go(func() {
						log.With("worker", i).Printf("message %d", i)
					})
				}
				wg.Wait()

				assert.Len(t, decodeLines(t, &buf), 50)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		want    any
		wantErr bool
	}{
		{name: "Text", format: logger.FormatText, want: &logger.CLILogger{}},
		{name: "JSON", format: logger.FormatJSON, want: &logger.JSONLogger{}},
		{name: "Unknown", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := logger.New(tt.format, &buf)
			if tt.wantErr {
				assert.ErrorIs(t, err, logger.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, log)

			log.Println("hello")
			assert.Contains(t, buf.String(), "hello")
		})
	}

	t.Run("Nil Writer Uses Stderr", func(t *testing.T) {
		log, err := logger.New(logger.FormatText, nil)
		require.NoError(t, err)
		assert.NotNil(t, log)
	})
}
