package cmd

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X .../cmd.version=v1.2.0 -X .../cmd.commit=abc1234".
var (
	version = "(devel)"
	commit  = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, build commit and Go runtime",
	Run: func(cmd *cobra.Command, args []string) {
		writeVersion(cmd.OutOrStdout(), version, buildCommit(commit))
	},
}

func writeVersion(w io.Writer, version, commit string) {
	if commit == "" {
		commit = "unknown"
	}
	fmt.Fprintf(w, "mathpractice %s\n", version)
	fmt.Fprintf(w, "commit:  %s\n", commit)
	fmt.Fprintf(w, "go:      %s\n", runtime.Version())
}

// buildCommit prefers the ldflags value and falls back to the VCS
// revision the Go toolchain stamps into the binary.
func buildCommit(ldflags string) string {
	if ldflags != "" {
		return shortRev(ldflags)
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return shortRev(s.Value)
		}
	}
	return ""
}

func shortRev(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
