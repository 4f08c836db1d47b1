package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridglob/pkg/element"
	"github.com/matzehuels/gridglob/pkg/ident"
	pkgio "github.com/matzehuels/gridglob/pkg/io"
	"github.com/matzehuels/gridglob/pkg/pipeline"
)

// documentExtensions are offered when completing a document argument.
var documentExtensions = []string{"json", "yaml", "yml", "toml"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for gridglob.

Completions cover subcommands, flag values (formats, tie-break axes, ID
styles), and layout documents by extension.

Bash:
  $ source <(gridglob completion bash)

Zsh:
  $ gridglob completion zsh > "${fpath[1]}/_gridglob"

Fish:
  $ gridglob completion fish > ~/.config/fish/completions/gridglob.fish

PowerShell:
  PS> gridglob completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeDocuments completes a single layout document argument.
func completeDocuments(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return documentExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completeFormats completes a comma-separated list of output formats,
// skipping formats already listed.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	listed := map[string]bool{}
	for _, f := range strings.Split(prefix, ",") {
		listed[strings.TrimSpace(f)] = true
	}

	var out []string
	for _, f := range pipeline.FormatNames() {
		if !listed[f] {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// registerEngineCompletions wires value completions for the engine and
// document flags that cmd defines.
func registerEngineCompletions(cmd *cobra.Command) {
	fixed := func(name string, values ...string) {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
		}
	}
	fixed("tie-break", element.AxisRow.String(), element.AxisColumn.String())
	fixed("id-style", ident.StyleSequential, ident.StyleUUID)

	inputs := make([]string, 0, len(pkgio.Formats))
	for _, f := range pkgio.Formats {
		inputs = append(inputs, string(f))
	}
	fixed("input-format", inputs...)

	if cmd.Flags().Lookup("format") != nil {
		_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	}
}
