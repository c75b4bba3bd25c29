package cli

import (
	"fmt"
	"io"
	"strings"
)

// completionProgram is the command name the scripts complete.
const completionProgram = "nttmul"

// FlagCompletion describes a CLI flag for shell completion generation.
// Every shell generator reads flagRegistry, so a new flag needs a single
// entry there.
type FlagCompletion struct {
	Long      string   // long flag name without "--"
	Short     string   // short flag without "-"
	Help      string   // description text
	Values    []string // suggested values (nil = boolean or free-form)
	ValueName string   // label for the value in zsh
	IsFile    bool     // the flag takes a file path
	IsEngine  bool     // values come from the engine registry
	Section   string   // fish comment group
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message", Section: "Help and version"},
	{Long: "version", Help: "Show version information", Section: "Help and version"},
	{Short: "a", Help: "First operand", ValueName: "digits", Section: "Operands"},
	{Short: "b", Help: "Second operand", ValueName: "digits", Section: "Operands"},
	{Long: "input", Help: "File holding both operands", IsFile: true, ValueName: "file", Section: "Operands"},
	{Long: "engine", Help: "Multiplication engine", IsEngine: true, ValueName: "engine", Section: "Engine"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"30s", "1m", "5m", "10m"}, ValueName: "duration", Section: "Engine"},
	{Long: "max-digits", Help: "Largest accepted operand", Values: []string{"10000", "100000", "1000000"}, ValueName: "digits", Section: "Engine"},
	{Long: "auto-threshold", Help: "Auto engine crossover in digits", Values: []string{"32", "48", "64", "128"}, ValueName: "digits", Section: "Engine"},
	{Long: "calibrate", Help: "Measure the auto engine crossover", Section: "Calibration"},
	{Long: "calibration-profile", Help: "Calibration profile file", IsFile: true, ValueName: "file", Section: "Calibration"},
	{Long: "chart", Help: "HTML chart of calibration timings", IsFile: true, ValueName: "file", Section: "Calibration"},
	{Long: "verbose", Short: "v", Help: "Debug logging", Section: "Output"},
	{Long: "details", Short: "d", Help: "Show performance details", Section: "Output"},
	{Long: "quiet", Short: "q", Help: "Print only the product", Section: "Output"},
	{Long: "log-level", Help: "Log level", Values: []string{"trace", "debug", "info", "warn", "error", "disabled"}, ValueName: "level", Section: "Output"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file", Section: "Output"},
	{Long: "json", Help: "Print the result as JSON", Section: "Output"},
	{Long: "no-color", Help: "Disable colors", Section: "Output"},
	{Long: "interactive", Help: "Start the interactive shell", Section: "Modes"},
	{Long: "tui", Help: "Start the terminal dashboard", Section: "Modes"},
	{Long: "server", Help: "Start the HTTP server", Section: "Modes"},
	{Long: "port", Help: "HTTP server port", Values: []string{"8080", "9090"}, ValueName: "port", Section: "Modes"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell", Section: "Completion"},
}

// GenerateCompletion writes the completion script for shell to out.
// engines lists the registered engine names.
func GenerateCompletion(out io.Writer, shell string, engines []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, engines)
	case "zsh":
		return generateZshCompletion(out, engines)
	case "fish":
		return generateFishCompletion(out, engines)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, engines)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

func engineList(engines []string) string {
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

func generateBashCompletion(out io.Writer, engines []string) error {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		names := flagNames(f)
		opts = append(opts, names...)

		var body string
		switch {
		case f.IsEngine:
			body = `COMPREPLY=( $(compgen -W "${engines}" -- "${cur}") )`
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n",
			strings.Join(names, "|"), body)
	}

	script := fmt.Sprintf(`# Bash completion script for %[1]s
# Add this to your ~/.bashrc or ~/.bash_completion

_%[1]s_completions() {
    local cur prev opts engines
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%[2]s"
    engines="%[3]s"

    case "${prev}" in
%[4]s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _%[1]s_completions %[1]s
`, completionProgram, strings.Join(opts, " "), engineList(engines), cases.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

func generateZshCompletion(out io.Writer, engines []string) error {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef %[1]s

# Zsh completion script for %[1]s
# Add this to your ~/.zshrc or place in $fpath

_%[1]s() {
    local -a engines
    engines=(%[2]s)

    _arguments -s \
%[3]s
}

_%[1]s "$@"
`, completionProgram, engineList(engines), strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats f as a zsh _arguments spec.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsEngine:
		valueSuffix = fmt.Sprintf(":%s:($engines)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	switch {
	case f.Long != "" && f.Short != "":
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	case f.Long != "":
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
	default:
		return fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, valueSuffix)
	}
}

func generateFishCompletion(out io.Writer, engines []string) error {
	lines := []string{
		"# Fish completion script for " + completionProgram,
		"# Add this to ~/.config/fish/completions/" + completionProgram + ".fish",
		"",
		"complete -c " + completionProgram + " -f",
	}

	section := ""
	for _, f := range flagRegistry {
		if f.Section != section {
			section = f.Section
			lines = append(lines, "", "# "+section)
		}
		lines = append(lines, fishCompleteLine(f, engineList(engines)))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats f as a fish complete command.
func fishCompleteLine(f FlagCompletion, engines string) string {
	parts := []string{"complete -c " + completionProgram}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsEngine:
		parts = append(parts, fmt.Sprintf("-xa '%s'", engines))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

func generatePowerShellCompletion(out io.Writer, engines []string) error {
	var options, cases []string
	for _, f := range flagRegistry {
		for _, name := range flagNames(f) {
			options = append(options, fmt.Sprintf("        @{Name = '%s'; Description = '%s' }", name, f.Help))
		}

		var values []string
		switch {
		case f.IsEngine:
			values = strings.Fields(engineList(engines))
		case len(f.Values) > 0 && !f.IsFile:
			values = f.Values
		default:
			continue
		}
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = "'" + v + "'"
		}
		cases = append(cases, fmt.Sprintf("        '--%s' { $values = @(%s) }", f.Long, strings.Join(quoted, ", ")))
	}

	script := fmt.Sprintf(`# PowerShell completion script for %[1]s
# Add this to your $PROFILE

Register-ArgumentCompleter -Native -CommandName %[1]s -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%[2]s
    )

    $prev = $commandAst.CommandElements[-1].ToString()
    if ($wordToComplete -ne '') {
        $prev = $commandAst.CommandElements[-2].ToString()
    }

    $values = $null
    switch ($prev) {
%[3]s
    }

    if ($values) {
        $values | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, completionProgram, strings.Join(options, ",\n"), strings.Join(cases, "\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion powershell generation failed: %w", err)
	}
	return nil
}
