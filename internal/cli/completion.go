package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes one flag for completion script generation.
type FlagCompletion struct {
	Long      string   // long name without "--"
	Short     string   // short name without "-"
	Help      string   // description
	Values    []string // suggested values; nil for booleans
	ValueName string   // zsh value label
	IsFile    bool     // takes a path
	IsEngine  bool     // values come from the engine registry
}

// flagRegistry drives every generator; adding a flag here is enough.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "threads", Short: "t", Help: "Number of worker threads", ValueName: "count"},
	{Long: "iterations", Short: "n", Help: "Number of series terms", Values: []string{"10", "100", "1000", "10000", "70522"}, ValueName: "terms"},
	{Long: "precision", Short: "p", Help: "Float precision in bits", Values: []string{"1024", "4096", "65536", "3321929"}, ValueName: "bits"},
	{Long: "precision-bytes", Help: "Float precision in bytes", ValueName: "bytes"},
	{Long: "engine", Help: "Reduction engine", IsEngine: true, ValueName: "engine"},
	{Long: "backend", Help: "Integer backend", Values: []string{"big", "gmp"}, ValueName: "backend"},
	{Long: "check", Short: "c", Help: "Check digits against the reference"},
	{Long: "reference", Help: "Reference digit file", IsFile: true, ValueName: "file"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "quiet", Short: "q", Help: "Print only the digits"},
	{Long: "verbose", Short: "v", Help: "Print run details"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "tui", Help: "Show the interactive dashboard"},
	{Long: "lenient", Help: "Fall back to default iterations"},
	{Long: "metrics-addr", Help: "Prometheus metrics address", Values: []string{":9090", "127.0.0.1:9090"}, ValueName: "addr"},
	{Long: "gc", Help: "Garbage collector control", Values: []string{"auto", "aggressive", "disabled"}, ValueName: "mode"},
	{Long: "calibrate", Help: "Measure the best thread count"},
	{Long: "calibration-profile", Help: "Calibration profile file", IsFile: true, ValueName: "file"},
	{Long: "config", Help: "YAML run profile", IsFile: true, ValueName: "file"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell ("bash", "zsh" or
// "fish"). engines lists the registry names offered for --engine.
func GenerateCompletion(out io.Writer, shell string, engines []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(engines)
	case "zsh":
		script = zshCompletion(engines)
	case "fish":
		script = fishCompletion(engines)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func engineWords(engines []string) string {
	return strings.Join(append(append([]string(nil), engines...), "all"), " ")
}

func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func bashCompletion(engines []string) string {
	var opts []string
	var cases strings.Builder
	var files []string
	for _, f := range flagRegistry {
		names := flagNames(f)
		opts = append(opts, names...)
		switch {
		case f.IsFile:
			files = append(files, names...)
		case f.IsEngine:
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W \"${engines}\" -- \"${cur}\") )\n            return 0\n            ;;\n", strings.Join(names, "|"))
		case len(f.Values) > 0:
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n", strings.Join(names, "|"), strings.Join(f.Values, " "))
		}
	}
	if len(files) > 0 {
		fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n", strings.Join(files, "|"))
	}

	return fmt.Sprintf(`# Bash completion script for picalc
# Add this to your ~/.bashrc or ~/.bash_completion

_picalc_completions() {
    local cur prev opts engines
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"
    engines="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _picalc_completions picalc
`, strings.Join(opts, " "), engineWords(engines), cases.String())
}

func zshCompletion(engines []string) string {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	return fmt.Sprintf(`#compdef picalc

# Zsh completion script for picalc
# Place this file in a directory of $fpath as _picalc

_picalc() {
    local -a engines
    engines=(%s)

    _arguments -s \
%s \
        '1:threads:' '2:iterations:' '3:precision bytes:'
}

_picalc "$@"
`, engineWords(engines), strings.Join(args, " \\\n"))
}

func zshArgEntry(f FlagCompletion) string {
	suffix := ""
	switch {
	case f.IsFile:
		suffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsEngine:
		suffix = fmt.Sprintf(":%s:($engines)", f.ValueName)
	case len(f.Values) > 0:
		suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		suffix = fmt.Sprintf(":%s:", f.ValueName)
	}
	if f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, suffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, suffix)
}

func fishCompletion(engines []string) string {
	lines := []string{
		"# Fish completion script for picalc",
		"# Add this to ~/.config/fish/completions/picalc.fish",
		"",
		"complete -c picalc -f",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, engineWords(engines)))
	}
	return strings.Join(lines, "\n") + "\n"
}

func fishCompleteLine(f FlagCompletion, engineList string) string {
	parts := []string{"complete -c picalc"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))
	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsEngine:
		parts = append(parts, fmt.Sprintf("-xa '%s'", engineList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}
