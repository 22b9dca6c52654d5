package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/buildplan/internal/app"
	bpoutput "github.com/specialistvlad/buildplan/internal/output"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("buildplan", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
buildplan - Resolves a front-end build configuration into a build plan.

Usage:
  buildplan [options] [PROJECT_PATH]

Arguments:
  PROJECT_PATH
    Path to a single .hcl project file or a project directory. Defaults to
    the current directory. Dotenv files are read from the same directory.

Options:
`)
		flagSet.PrintDefaults()
		fmt.Fprint(output, `
Extensions (enable with an extension "<name>" {} block in the project file):
`)
		app.DescribeExtensions(output)
	}

	projectFlag := flagSet.String("project", "", "Path to the project file or directory.")
	pFlag := flagSet.String("p", "", "Path to the project file or directory (shorthand).")
	modeFlag := flagSet.String("mode", "", "Build mode, overrides NODE_ENV. Options: 'development' or 'production'.")
	formatFlag := flagSet.String("format", "json", "Output format. Options: 'json' or 'yaml'.")
	outFlag := flagSet.String("out", "", "Write the build plan to this file instead of stdout.")
	revisionFlag := flagSet.String("revision", app.RevisionStatic, "Revision source. Options: 'static', 'env' or 'git'.")
	buildFlag := flagSet.Bool("build", false, "Run esbuild with the resolved plan.")
	var entries stringList
	flagSet.Var(&entries, "entry", "Entry point for -build. May be repeated.")
	outDirFlag := flagSet.String("outdir", "dist", "Output directory for -build.")
	watchFlag := flagSet.Bool("watch", false, "Re-resolve whenever a project or dotenv file changes.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *projectFlag != "" {
		path = *projectFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one project path, got %d", flagSet.NArg())}
	}
	slog.Debug("Project path determined.", "path", path)

	format, err := bpoutput.ParseFormat(*formatFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ProjectPath: path,
		Mode:        *modeFlag,
		Format:      format,
		OutPath:     *outFlag,
		Revision:    strings.ToLower(*revisionFlag),
		Build:       *buildFlag,
		EntryPoints: entries,
		OutDir:      *outDirFlag,
		Watch:       *watchFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
