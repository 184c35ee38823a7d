package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/oasmodels"
	"github.com/erraggy/oasmodels/config"
	"github.com/erraggy/oasmodels/generator"
	"github.com/erraggy/oasmodels/internal/cliutil"
)

// DefaultJobsDir is the directory read when generate is given no arguments.
const DefaultJobsDir = "jobs"

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Output  string
	Workers int
	DryRun  bool
	Strict  bool
	Verbose bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Output, "o", "", "root directory output directories are resolved against (default: current directory)")
	fs.StringVar(&flags.Output, "output", "", "root directory output directories are resolved against (default: current directory)")
	fs.IntVar(&flags.Workers, "j", 0, "number of jobs run at once (0 = one per CPU)")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "report the files that would be written without writing them")
	fs.BoolVar(&flags.Strict, "strict", false, "treat warnings as errors")
	fs.BoolVar(&flags.Verbose, "v", false, "enable debug logging")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable debug logging")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasmodels generate [flags] [job-file|job-dir ...]\n\n")
		Writef(output, "Generate model files for every job. Without arguments, every job file\n")
		Writef(output, "in ./%s is run.\n\n", DefaultJobsDir)
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasmodels generate\n")
		Writef(output, "  oasmodels generate jobs/petstore.yaml\n")
		Writef(output, "  oasmodels generate -o ./app -j 4 jobs/\n")
		Writef(output, "  oasmodels generate --dry-run -v jobs/petstore.yaml\n")
		Writef(output, "\nExit Codes:\n")
		Writef(output, "  0    All jobs succeeded\n")
		Writef(output, "  1    At least one job failed (or produced warnings with --strict)\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	fs, flags := SetupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{DefaultJobsDir}
	}
	jobs, err := LoadJobs(paths)
	if err != nil {
		return err
	}

	g := generator.New()
	g.UserAgent = oasmodels.UserAgent()
	g.Workers = flags.Workers
	g.Logger = NewLogger(os.Stderr, flags.Verbose)

	results := g.RunJobs(context.Background(), jobs)

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			Writef(os.Stderr, "Error: %v\n", r.Err)
			continue
		}
		if err := reportResult(r.Result, flags); err != nil {
			failed++
			Writef(os.Stderr, "Error: job %s: %v\n", r.Job.Name, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %s failed", failed, cliutil.Count(len(results), "job"))
	}
	return nil
}

// reportResult writes a job's files (unless dry-run) and prints its summary.
func reportResult(res *generator.Result, flags *GenerateFlags) error {
	if !flags.DryRun {
		if err := res.WriteFilesTo(flags.Output); err != nil {
			return err
		}
	}

	verb := "Wrote"
	if flags.DryRun {
		verb = "Would write"
	}
	Writef(os.Stdout, "%s: %s %s (%s) to %s", res.Job, verb, cliutil.Count(len(res.Files), "file"), res.Target, outputRoot(flags.Output))
	if len(res.Skipped) > 0 {
		Writef(os.Stdout, ", skipped %s", cliutil.Count(len(res.Skipped), "schema"))
	}
	if res.HasWarnings() {
		Writef(os.Stdout, ", %s", cliutil.Count(res.WarningCount, "warning"))
	}
	Writef(os.Stdout, " (load %v, generate %v)\n", res.LoadTime, res.GenerateTime)
	if flags.DryRun {
		for _, f := range res.Files {
			Writef(os.Stdout, "  %s\n", filepath.Join(flags.Output, f.Path()))
		}
	}

	if flags.Strict && res.HasWarnings() {
		return fmt.Errorf("%s with --strict", cliutil.Count(res.WarningCount, "warning"))
	}
	return nil
}

func outputRoot(output string) string {
	if output == "" {
		return "."
	}
	return output
}

// LoadJobs loads the job files named by paths. A directory contributes every
// job file it holds.
func LoadJobs(paths []string) ([]*config.Job, error) {
	var jobs []*config.Job
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("loading jobs: %w", err)
		}
		if info.IsDir() {
			dirJobs, err := config.LoadDir(path)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, dirJobs...)
			continue
		}
		job, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
