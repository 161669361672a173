// Command gobdd is a companion CLI to the gobdd library. Step definitions
// are Go code, and Go links them into a binary at compile time rather than
// importing them dynamically the way lettuce's own CLI imports a features
// directory's steps.py at run time, so `run` loads step definitions from
// Go plugins (-buildmode=plugin) built separately and found via the
// --steps glob, each exporting a
// `RegisterSteps(*gobdd.Suite)` function; `list` needs no steps at all.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"plugin"

	"github.com/spf13/cobra"

	"github.com/loom-bdd/gobdd"
	"github.com/loom-bdd/gobdd/config"
	"github.com/loom-bdd/gobdd/gherkin"
)

// version is set at build time via ldflags, following ormasoftchile-gert's
// cmd/gert/main.go convention.
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gobdd",
	Short: "A Gherkin step runner",
	Long:  "gobdd parses feature files and either lists the scenarios a glob/tag filter selects, or resolves and runs them against steps loaded from compiled Go plugins.",
}

var (
	configPath string
	tagFilter  []string
	stepsGlob  string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".gobdd.yml", "path to the suite configuration file")
	rootCmd.PersistentFlags().StringSliceVar(&tagFilter, "tags", nil, "tag expressions to filter scenarios (name, -name, ~name, -~name)")
	runCmd.Flags().StringVar(&stepsGlob, "steps", "steps/*.so", "glob of compiled Go plugins (-buildmode=plugin) each exporting RegisterSteps(*gobdd.Suite)")
	rootCmd.AddCommand(listCmd, runCmd, versionCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List the scenarios a glob pattern would run, without executing them",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	path := cfg.FeaturesPath
	if len(args) == 1 {
		path = args[0]
	}

	paths, err := filepath.Glob(path)
	if err != nil {
		return fmt.Errorf("bad features path %q: %w", path, err)
	}

	tags := tagFilter
	if len(tags) == 0 {
		tags = cfg.Tags
	}

	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		ft, err := gherkin.ParseFeature(string(raw), p)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", p, ft.Name)
		for _, sc := range ft.Scenarios {
			if !gherkin.MatchesTags(sc.Tags, tags) {
				continue
			}
			fmt.Printf("  - %s\n", sc.Name)
		}
	}
	return nil
}

var runCmd = &cobra.Command{
	Use:   "run [path]",
	Short: "Parse, resolve and execute scenarios against steps loaded from compiled plugins",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	path := cfg.FeaturesPath
	if len(args) == 1 {
		path = args[0]
	}
	tags := tagFilter
	if len(tags) == 0 {
		tags = cfg.Tags
	}

	opts := []func(*gobdd.SuiteOptions){gobdd.WithFeaturesPath(path), gobdd.WithTags(tags)}
	if cfg.CaseSensitive {
		opts = append(opts, gobdd.WithCaseSensitiveSteps())
	}
	suite := gobdd.NewSuite(opts...)

	if err := loadStepPlugins(suite, stepsGlob); err != nil {
		return err
	}

	result, err := suite.Run()
	if err != nil {
		return err
	}
	printRunResult(result)
	if !result.Passed {
		return fmt.Errorf("gobdd: run failed (%d failed, %d undefined)", result.StepsFailed, result.StepsUndefined)
	}
	return nil
}

// loadStepPlugins opens every plugin glob matches and calls its exported
// RegisterSteps function against suite, the Go analog of lettuce's dynamic
// import of a features directory's step modules.
func loadStepPlugins(suite *gobdd.Suite, glob string) error {
	paths, err := filepath.Glob(glob)
	if err != nil {
		return fmt.Errorf("gobdd: bad steps glob %q: %w", glob, err)
	}
	for _, p := range paths {
		pl, err := plugin.Open(p)
		if err != nil {
			return fmt.Errorf("gobdd: loading step plugin %s: %w", p, err)
		}
		sym, err := pl.Lookup("RegisterSteps")
		if err != nil {
			return fmt.Errorf("gobdd: plugin %s has no RegisterSteps symbol: %w", p, err)
		}
		register, ok := sym.(func(*gobdd.Suite))
		if !ok {
			return fmt.Errorf("gobdd: plugin %s's RegisterSteps must be func(*gobdd.Suite)", p)
		}
		register(suite)
	}
	return nil
}

func printRunResult(result *gobdd.RunResult) {
	for _, fr := range result.Features {
		fmt.Println(fr.Name)
		for _, sr := range fr.Scenarios {
			status := "passed"
			if !sr.Passed {
				status = "failed"
			}
			fmt.Printf("  %s: %s\n", sr.Name, status)
			for _, sf := range sr.StepsFailed {
				fmt.Printf("    FAILED %s: %s\n", sf.Sentence, sf.Failure.Cause)
			}
			for _, su := range sr.StepsUndefined {
				fmt.Printf("    UNDEFINED %s\n", su.Sentence)
			}
		}
	}
	fmt.Printf("\n%d steps, %d passed, %d failed, %d skipped, %d undefined\n",
		result.TotalSteps, result.StepsPassed, result.StepsFailed, result.StepsSkipped, result.StepsUndefined)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gobdd version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}
