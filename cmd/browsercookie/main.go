// Command browsercookie extracts cookies from local browser profiles and
// prints them as name=value lines, JSON, or a ready-to-use HTTP Cookie
// header value.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rmarren/browsercookie"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		patterns     []string
		attributes   []string
		browsers     []string
		storePath    string
		headerDomain string
		asJSON       bool
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:           "browsercookie",
		Short:         "Extract cookies from local browser profiles",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := zap.NewNop()
			if verbose {
				dev, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				defer func() { _ = dev.Sync() }()
				logger = dev
			}

			if len(attributes) > len(patterns) {
				return fmt.Errorf("%d --attribute flags for %d --regexp flags", len(attributes), len(patterns))
			}

			builder := browsercookie.NewBuilder()
			for i, pattern := range patterns {
				attr := browsercookie.AttributeName
				if i < len(attributes) {
					parsed, err := browsercookie.ParseAttribute(attributes[i])
					if err != nil {
						return err
					}
					attr = parsed
				}
				re, err := regexp.Compile(pattern)
				if err != nil {
					return fmt.Errorf("bad --regexp %q: %w", pattern, err)
				}
				builder.WithRegexp(re, attr)
				logger.Debug("filter added", zap.String("pattern", pattern), zap.Stringer("attribute", attr))
			}
			for _, name := range browsers {
				b, err := browsercookie.ParseBrowser(name)
				if err != nil {
					return err
				}
				builder.WithBrowser(b)
			}
			if storePath != "" {
				builder.WithMasterPath(storePath)
				logger.Debug("store discovery overridden", zap.String("path", storePath))
			}

			jar, err := builder.Build().Find(cmd.Context())
			if err != nil {
				return err
			}
			logger.Debug("extraction finished", zap.Int("cookies", jar.Len()))

			out := cmd.OutOrStdout()
			switch {
			case headerDomain != "":
				re, err := regexp.Compile(headerDomain)
				if err != nil {
					return fmt.Errorf("bad --header pattern %q: %w", headerDomain, err)
				}
				fmt.Fprintln(out, jar.ToHeader(re))
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(jar.Cookies())
			default:
				for _, c := range jar.Cookies() {
					fmt.Fprintf(out, "%s=%s\n", c.Name, c.Value)
				}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&patterns, "regexp", "r", nil, "filter pattern; cookies matching any pattern are kept")
	flags.StringArrayVarP(&attributes, "attribute", "a", nil, "attribute the matching --regexp is applied to (name, value, domain, path)")
	flags.StringArrayVarP(&browsers, "browser", "b", nil, "browser to read (default: all supported)")
	flags.StringVar(&storePath, "store", "", "read this store file or profile directory instead of discovering profiles; pair with a single --browser, since every requested browser reads the same path")
	flags.StringVar(&headerDomain, "header", "", "print an HTTP Cookie header for cookies whose domain matches this pattern")
	flags.BoolVar(&asJSON, "json", false, "print cookies as JSON")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}
