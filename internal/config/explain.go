// ABOUTME: Human-readable rendering of effective configuration
// ABOUTME: Used by the --show-config CLI flag to show merged settings and their sources

package config

import (
	"fmt"
	"strings"
)

// Explain renders a human-readable summary of the effective settings.
func Explain(s *Settings) string {
	if s == nil {
		s = Defaults()
	}

	var b strings.Builder

	b.WriteString("=== Search ===\n")
	fmt.Fprintf(&b, "  Workspace:      %s\n", s.Workspace)
	fmt.Fprintf(&b, "  MaxResults:     %d\n", s.MaxResults)
	fmt.Fprintf(&b, "  Workers:        %d\n", s.Workers)
	fmt.Fprintf(&b, "  FollowSymlinks: %t\n", s.FollowSymlinks)
	if len(s.SkipDirs) > 0 {
		fmt.Fprintf(&b, "  SkipDirs:       %s\n", strings.Join(s.SkipDirs, ", "))
	} else {
		b.WriteString("  SkipDirs:       (none)\n")
	}
	if s.Timeout > 0 {
		fmt.Fprintf(&b, "  Timeout:        %s\n", s.Timeout)
	} else {
		b.WriteString("  Timeout:        (none)\n")
	}

	b.WriteString("\n=== Output ===\n")
	fmt.Fprintf(&b, "  Format:         %s\n", s.Format)
	fmt.Fprintf(&b, "  LogLevel:       %s\n", s.LogLevel)

	b.WriteString("\n=== Sources ===\n")
	if len(s.Sources) == 0 {
		b.WriteString("  (defaults only)\n")
	}
	for _, src := range s.Sources {
		fmt.Fprintf(&b, "  %s\n", src)
	}
	fmt.Fprintf(&b, "  env: %s_*\n", EnvPrefix)

	return b.String()
}
