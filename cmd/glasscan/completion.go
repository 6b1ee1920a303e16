package glasscan

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate a shell completion script",
		Long: `Write a completion script for the given shell to stdout. Once loaded,
the shell completes glasscan subcommands, flags, and detector IDs for
--enable and --disable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
		Example: `  # Load for the current bash session
  source <(glasscan completion bash)

  # Install permanently for zsh
  glasscan completion zsh > "${fpath[1]}/_glasscan"

  # Install permanently for fish
  glasscan completion fish > ~/.config/fish/completions/glasscan.fish

  # PowerShell, current session
  glasscan completion powershell | Out-String | Invoke-Expression`,
	}
	rootCmd.AddCommand(cmd)
}
