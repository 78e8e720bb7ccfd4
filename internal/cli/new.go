package cli

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/pyboot-dev/pyboot/internal/bootstrap"
	"github.com/pyboot-dev/pyboot/internal/config"
	"github.com/pyboot-dev/pyboot/internal/plan"
	"github.com/pyboot-dev/pyboot/internal/platform"
	"github.com/pyboot-dev/pyboot/internal/sanitize"
	"github.com/pyboot-dev/pyboot/internal/signature"
	"github.com/pyboot-dev/pyboot/internal/venv"
	"github.com/pyboot-dev/pyboot/internal/writer"
	"github.com/spf13/cobra"
)

var (
	newBackend string
	newPython  string
	newForce   bool
	newGit     bool
)

func init() {
	newCmd.Flags().StringVar(&newBackend, "backend", "", "Build backend: setuptools or hatch (default from config)")
	newCmd.Flags().StringVar(&newPython, "python", "", "Python version for uv, e.g. 3.11 (requires uv)")
	newCmd.Flags().BoolVar(&newForce, "force", false, "Overwrite an existing non-empty directory")
	newCmd.Flags().BoolVar(&newGit, "git", false, "Initialize a git repository after scaffolding")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <folder>",
	Short: "Bootstrap a Python src-layout project",
	Long: `Create a new Python project: src-layout package skeleton, packaging
manifest, virtual environment, and optionally a git repository.

Examples:
  pyboot new my_project
  pyboot new my_api --backend hatch --python 3.11
  pyboot new sandbox --force --git`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := args[0]

		backendToken := newBackend
		if backendToken == "" {
			backendToken = config.Get(config.KeyBackend)
		}
		backend, err := plan.ParseBackend(backendToken)
		if err != nil {
			return err
		}

		python := newPython
		if python == "" {
			python = config.Get(config.KeyPython)
		}

		git := newGit
		if !cmd.Flags().Changed("git") {
			git = config.GetBool(config.KeyGit)
		}

		// Map SIGINT/SIGTERM to context cancellation so the engine's
		// rollback runs before the process exits.
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sigs, sigWarning := signature.LoadOrDefault(config.SignaturesPath())
		if sigWarning != "" {
			printWarning("%s", sigWarning)
		}

		printStep("Creating project %q with backend %q...", folder, backend)

		outcome, err := bootstrap.New(sigs).Run(ctx, bootstrap.Options{
			Folder:  folder,
			Backend: backend,
			Python:  python,
			Force:   newForce,
			Git:     git,
		})
		if err != nil {
			reportFailure(err)
			return err
		}

		for _, w := range outcome.Warnings {
			printWarning("%s", w)
		}

		printSuccess("Project created: %s (environment: %s mode)", outcome.Root, outcome.Mode)
		for _, p := range outcome.CreatedPaths {
			printDim("%s", p)
		}
		if outcome.GitInitialized {
			printSuccess("Git repository initialized on branch main")
		}

		printNextSteps(outcome)
		return nil
	},
}

// reportFailure prints one terminal status line for the failure class before
// the error itself is surfaced by main.
func reportFailure(err error) {
	switch {
	case errors.Is(err, bootstrap.ErrCancelled):
		printError("Cancelled; target directory restored to its previous state")
	case errors.Is(err, sanitize.ErrInvalidName):
		printError("Invalid project name")
	case errors.Is(err, writer.ErrAlreadyExists):
		printError("Target directory is not empty")
	case errors.Is(err, venv.ErrProvision):
		printError("Environment provisioning failed; scaffold rolled back")
	default:
		printError("Project creation failed; target directory restored")
	}
}

// printNextSteps mirrors the environment mode in the install hint: an
// environment created in copy mode needs the same flag for editable
// installs.
func printNextSteps(outcome *bootstrap.Outcome) {
	printPlain("\nNext steps:")
	printPlain("  cd %s", outcome.Root)
	printPlain("  %s", platform.ActivateCommand())

	switch outcome.Mode {
	case venv.ModeFast:
		printPlain("  uv pip install -e .")
	case venv.ModeSafeFallback:
		printPlain("  uv pip install -e . --link-mode=copy")
	default:
		printPlain("  pip install -e .")
	}

	printPlain("  %s", outcome.Name)
}
