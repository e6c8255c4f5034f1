package main

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/golden-vcr/gap-auth/hmac"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type signOptions struct {
	Method        string
	URL           string
	Headers       []string
	Body          string
	Algorithm     string
	Secret        string
	ShowCanonical bool
}

func newSignCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Prints the Gap-Signature for a described request",
		Long: "Prints the Gap-Signature header value that the proxy would attach to the " +
			"described request. A Content-Length header is assumed for a non-empty body " +
			"unless one is given explicitly.",
		Args:    cobra.NoArgs,
		PreRunE: bindFlags(v),
		RunE: func(cmd *cobra.Command, args []string) error {
			headers, err := cmd.Flags().GetStringArray("header")
			if err != nil {
				return err
			}
			opts := signOptions{
				Method:        v.GetString("method"),
				URL:           v.GetString("url"),
				Headers:       headers,
				Body:          v.GetString("body"),
				Algorithm:     v.GetString("algorithm"),
				Secret:        v.GetString("secret"),
				ShowCanonical: v.GetBool("canonical"),
			}
			return runSign(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().String("method", http.MethodGet, "HTTP method of the request")
	cmd.Flags().String("url", "/", "request URI: path plus optional query string")
	cmd.Flags().StringArray("header", nil, "request header as 'Name: value'; may be repeated")
	cmd.Flags().String("body", "", "raw request body")
	cmd.Flags().String("algorithm", "sha1", "digest algorithm")
	cmd.Flags().String("secret", "", "secret key shared with the backend (required)")
	cmd.Flags().Bool("canonical", false, "also print the canonical string that is signed")
	return cmd
}

func runSign(w io.Writer, opts signOptions) error {
	if opts.Secret == "" {
		return errNoSecret
	}
	if !hmac.IsSupportedAlgorithm(opts.Algorithm) {
		return fmt.Errorf("%w: %q (supported: %s)", hmac.ErrUnsupportedAlgorithm, opts.Algorithm, strings.Join(hmac.SupportedAlgorithms(), ", "))
	}

	req, err := http.NewRequest(opts.Method, opts.URL, strings.NewReader(opts.Body))
	if err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	for _, h := range opts.Headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return fmt.Errorf("invalid header %q: expected 'Name: value'", h)
		}
		req.Header.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	if opts.Body != "" && req.Header.Get("Content-Length") == "" {
		req.Header.Set("Content-Length", strconv.Itoa(len(opts.Body)))
	}

	signable := hmac.HTTPRequest(req)
	signature, err := hmac.RequestSignature(signable, []byte(opts.Body), opts.Algorithm, opts.Secret)
	if err != nil {
		return err
	}
	if opts.ShowCanonical {
		fmt.Fprintf(w, "%q\n", hmac.StringToSign(signable))
	}
	fmt.Fprintln(w, signature)
	return nil
}
