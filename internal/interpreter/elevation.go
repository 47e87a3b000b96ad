// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interpreter

import (
	"slices"
	"strings"
)

// Elevation verbs.
const (
	VerbRunAs = "runas" // Windows administrator run-as.
	VerbSudo  = "sudo"  // POSIX superuser prefix.
	VerbNone  = "none"  // Explicitly disables elevation in configuration.
)

var posixFamily = []string{
	"aix", "android", "darwin", "dragonfly", "freebsd", "illumos",
	"ios", "linux", "netbsd", "openbsd", "solaris",
}

// VerbFor returns the elevation verb of a platform.
// Platforms without a known mechanism get an empty verb: elevation is best-effort.
func VerbFor(goos string) string {
	switch {
	case goos == GOOSWindows:
		return VerbRunAs
	case slices.Contains(posixFamily, goos):
		return VerbSudo
	default:
		return ""
	}
}

// ElevationStrategy builds the concrete invocation of a launch spec.
type ElevationStrategy interface {
	Wrap(spec LaunchSpec) (program string, args []string)
}

// StrategyFor returns the strategy for a verb. An empty verb means no elevation,
// "runas" uses the Windows UAC prompt and any other verb is used as a prefix command,
// so "sudo", "doas" or "pkexec" all work.
func StrategyFor(verb string) ElevationStrategy {
	switch verb {
	case "", VerbNone:
		return NoElevation{}
	case VerbRunAs:
		return RunAsElevation{}
	default:
		return PrefixElevation{Command: verb}
	}
}

// NoElevation runs the interpreter directly.
type NoElevation struct{}

// Wrap implements ElevationStrategy.
func (NoElevation) Wrap(spec LaunchSpec) (string, []string) {
	return spec.Program, slices.Clone(spec.Args)
}

// PrefixElevation runs the interpreter through a privilege command such as sudo.
type PrefixElevation struct {
	Command string
	Args    []string // Extra arguments for the prefix command itself.
}

// Wrap implements ElevationStrategy.
func (p PrefixElevation) Wrap(spec LaunchSpec) (string, []string) {
	return p.Command, slices.Concat(p.Args, []string{spec.Program}, spec.Args)
}

// RunAsElevation asks Windows to start the interpreter as administrator
// through PowerShell's Start-Process, waiting for it and forwarding its exit code.
// The elevated process starts in System32 whatever -WorkingDirectory says, so
// relative script references are made absolute against the script directory.
type RunAsElevation struct {
	Shell string // Defaults to powershell.exe.
}

// Wrap implements ElevationStrategy.
func (r RunAsElevation) Wrap(spec LaunchSpec) (string, []string) {
	shell := r.Shell
	if shell == "" {
		shell = "powershell.exe"
	}

	sb := strings.Builder{}
	sb.WriteString("$p = Start-Process -FilePath ")
	sb.WriteString(psQuote(spec.Program))

	if len(spec.Args) > 0 {
		quoted := make([]string, len(spec.Args))
		for i, a := range spec.Args {
			quoted[i] = psQuote(winArg(absoluteRef(a, spec.Dir)))
		}

		sb.WriteString(" -ArgumentList ")
		sb.WriteString(strings.Join(quoted, ","))
	}

	if spec.Dir != "" {
		sb.WriteString(" -WorkingDirectory ")
		sb.WriteString(psQuote(spec.Dir))
	}

	sb.WriteString(" -Verb RunAs -Wait -PassThru; exit $p.ExitCode")

	return shell, []string{"-NoProfile", "-NonInteractive", "-Command", sb.String()}
}

// absoluteRef rewrites .\name or ./name to dir\name.
func absoluteRef(arg, dir string) string {
	if dir == "" {
		return arg
	}

	for _, prefix := range []string{`.\`, "./"} {
		rest, ok := strings.CutPrefix(arg, prefix)
		if ok && rest != "" && !strings.ContainsAny(rest, `\/`) {
			return strings.TrimRight(dir, `\/`) + `\` + rest
		}
	}

	return arg
}

// winArg double quotes an argument that Start-Process would otherwise split on
// whitespace when it joins the argument list into one command line.
func winArg(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"") {
		return s
	}

	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// psQuote returns a PowerShell single quoted literal.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
