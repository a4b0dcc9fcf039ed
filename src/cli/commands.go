// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	x509certs "github.com/H0llyW00dzZ/x5c-jwt-verifier/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/x5c-jwt-verifier/src/projector"
	"github.com/H0llyW00dzZ/x5c-jwt-verifier/src/source"
	"github.com/H0llyW00dzZ/x5c-jwt-verifier/src/verifier"
)

func (a *app) newJSONCommand(exeName string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "json ROOT_CERT UPDATES_JWT KEYLIST_JWT",
		Short: "Print active certificates grouped by key identifier",
		Long: `Verifies an updates token and a key list token against ROOT_CERT and
prints the certificate records of the updates token grouped by key identifier.
Only records whose identifier is listed as active in the key list are kept.`,
		Example: fmt.Sprintf("  %s json root.pem updates.jwt keylist.jwt\n  %s json --format yaml root.pem updates.jwt keylist.jwt", exeName, exeName),
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Output.Format
			}

			v, err := a.verifierFor(args[0])
			if err != nil {
				return err
			}

			updates, err := a.verifyToken(cmd, v, args[1])
			if err != nil {
				return err
			}
			keylist, err := a.verifyToken(cmd, v, args[2])
			if err != nil {
				return err
			}

			p, err := a.projector()
			if err != nil {
				return err
			}
			keys, err := p.KeysByID(updates.Payload, keylist.Payload)
			if err != nil {
				return err
			}

			return projector.Render(a.deps.Stdout, keys, format, a.cfg.Output.Indent)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: json or yaml (default from config)")
	return cmd
}

func (a *app) newTxtCommand(exeName string) *cobra.Command {
	return &cobra.Command{
		Use:   "txt ROOT_CERT [RESPONSE_JWT]",
		Short: "Print revoked certificate entries, one per line",
		Long: `Verifies a response token against ROOT_CERT and prints each entry of
its revoked certificate list on its own line. The token is read from standard
input when RESPONSE_JWT is omitted or "-".`,
		Example: fmt.Sprintf("  %s txt root.pem response.jwt\n  curl -s $URL | %s txt root.pem", exeName, exeName),
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenPath := source.Stdin
			if len(args) == 2 {
				tokenPath = args[1]
			}

			v, err := a.verifierFor(args[0])
			if err != nil {
				return err
			}
			result, err := a.verifyToken(cmd, v, tokenPath)
			if err != nil {
				return err
			}

			p, err := a.projector()
			if err != nil {
				return err
			}
			lines, err := p.RevokedList(result.Payload)
			if err != nil {
				return err
			}

			return projector.RenderLines(a.deps.Stdout, lines)
		},
	}
}

func (a *app) newInspectCommand(exeName string) *cobra.Command {
	var tree, table, asJSON, asPEM bool

	cmd := &cobra.Command{
		Use:   "inspect ROOT_CERT TOKEN_JWT",
		Short: "Show the verified certificate chain of a token",
		Long: `Verifies TOKEN_JWT against ROOT_CERT and renders the verified chain,
signing certificate first and trust anchor last. Nothing is printed for a
token that fails verification.`,
		Example: fmt.Sprintf("  %s inspect root.pem updates.jwt\n  %s inspect --table root.pem updates.jwt\n  %s inspect --pem root.pem updates.jwt > chain.pem", exeName, exeName, exeName),
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.verifierFor(args[0])
			if err != nil {
				return err
			}
			result, err := a.verifyToken(cmd, v, args[1])
			if err != nil {
				return err
			}

			switch {
			case table:
				_, err = fmt.Fprint(a.deps.Stdout, result.Chain.RenderTable())
			case asJSON:
				var data []byte
				if data, err = result.Chain.ToVisualizationJSON(); err != nil {
					return fmt.Errorf("failed to encode chain: %w", err)
				}
				_, err = fmt.Fprintln(a.deps.Stdout, string(data))
			case asPEM:
				_, err = a.deps.Stdout.Write(x509certs.New().EncodeMultiplePEM(result.Chain.Certs))
			default:
				_, err = fmt.Fprint(a.deps.Stdout, result.Chain.RenderASCIITree())
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&tree, "tree", "t", false, "display the chain as an ASCII tree (default)")
	cmd.Flags().BoolVar(&table, "table", false, "display the chain as a markdown table")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "display the chain as JSON")
	cmd.Flags().BoolVar(&asPEM, "pem", false, "write the chain as concatenated PEM blocks")
	cmd.MarkFlagsMutuallyExclusive("tree", "table", "json", "pem")
	return cmd
}

// verifierFor loads the trust anchor at path.
func (a *app) verifierFor(path string) (*verifier.Verifier, error) {
	anchor, err := a.deps.Anchors.LoadAnchor(path)
	if err != nil {
		return nil, err
	}
	a.debugf("Trust anchor %s: %s", path, anchor.Subject)
	return verifier.New(anchor), nil
}

// verifyToken loads and verifies the token at path. The command context is
// checked first so that an interrupted run stops between tokens.
func (a *app) verifyToken(cmd *cobra.Command, v *verifier.Verifier, path string) (*verifier.Result, error) {
	if err := cmd.Context().Err(); err != nil {
		return nil, err
	}

	token, err := a.deps.Tokens.LoadToken(path)
	if err != nil {
		return nil, err
	}

	result, err := v.VerifyDetailed(token)
	if err != nil {
		return nil, fmt.Errorf("verify %s: %w", displayPath(path), err)
	}
	a.debugf("Verified %s: signed by %q through %d link(s) to %q", displayPath(path),
		result.Chain.Leaf().Subject.CommonName, result.Chain.Links(), result.Chain.Anchor().Subject.CommonName)
	return result, nil
}

func (a *app) projector() (*projector.Projector, error) {
	return projector.New(projector.Options{
		CertsField:        a.cfg.Payload.CertsField,
		KeyIDField:        a.cfg.Payload.KeyIDField,
		ActiveKeyIDsField: a.cfg.Payload.ActiveKeyIDsField,
		RevokedField:      a.cfg.Payload.RevokedField,
		DropFields:        a.cfg.Projection.DropFields,
	})
}

func displayPath(path string) string {
	if path == "" || path == source.Stdin {
		return "<stdin>"
	}
	return path
}
