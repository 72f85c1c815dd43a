package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [project-name]",
	Short: "Initialize a new analysis project",
	Long: `Initialize a new staylens analysis project.

This command creates:
- A project directory
- A staylens.yaml configuration with the default analysis settings
- A README with getting started instructions

Examples:
  staylens init hotel-study          # Create a new project
  staylens init --force hotel-study  # Overwrite an existing directory`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		projectName := "staylens-project"
		if len(args) > 0 {
			projectName = args[0]
		}
		initializeProject(projectName)
	},
}

var force bool

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite existing project directory")
}

var projectNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func initializeProject(projectName string) {
	if !projectNameRe.MatchString(projectName) {
		Error("Project name must contain only letters, numbers, hyphens, and underscores")
		os.Exit(1)
	}

	if _, err := os.Stat(projectName); err == nil && !force {
		Error(fmt.Sprintf("Directory %s already exists, use --force to overwrite", projectName))
		os.Exit(1)
	}

	Info(fmt.Sprintf("Creating new staylens project: %s", projectName))

	if err := os.MkdirAll(projectName, 0755); err != nil {
		Error(fmt.Sprintf("Failed to create project directory: %v", err))
		os.Exit(1)
	}

	files := map[string]string{
		"staylens.yaml": projectConfig,
		"README.md":     fmt.Sprintf(projectReadme, projectName),
	}
	for name, content := range files {
		path := filepath.Join(projectName, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			Error(fmt.Sprintf("Failed to write %s: %v", name, err))
			os.Exit(1)
		}
	}

	Success(fmt.Sprintf("Project %s created", projectName))
	Info("Next: drop your bookings CSV into the project and run 'staylens analyze bookings.csv'")
}

const projectConfig = `# staylens analysis configuration
log-level: disabled
output: text

# Pipeline settings; flags on 'staylens analyze' take precedence.
seed: 123
sample-size: 1000
train-frac: 0.7
trees: 500
`

const projectReadme = `# %s

A staylens analysis project.

## Getting started

1. Place your bookings CSV in this directory.
2. Validate it: staylens validate bookings.csv
3. Run the analysis: staylens analyze bookings.csv
4. Open staylens-report/report.md

Settings live in staylens.yaml and can be overridden with flags.
`
