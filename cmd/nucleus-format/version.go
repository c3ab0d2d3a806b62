package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"nucleus-format/internal/version"
)

var (
	versionNameColor  = color.New(color.FgCyan, color.Bold)
	versionValueColor = color.New(color.FgYellow, color.Bold)
)

func newVersionCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderVersion(cmd.OutOrStdout(), full)
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "include commit hash and build date")
	return cmd
}

func renderVersion(out io.Writer, full bool) {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	fmt.Fprintf(out, "%s %s\n", versionNameColor.Sprint("nucleus-format"), versionValueColor.Sprint(v))
	if full {
		fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(version.GitCommit))
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(version.BuildDate))
	}
}

func valueOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return s
}
