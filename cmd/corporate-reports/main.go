package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/corporate-reports/internal/common"
	"github.com/ternarybob/corporate-reports/internal/edinet"
)

// app holds the state shared by subcommands once the root command has
// loaded configuration.
type app struct {
	configFiles []string
	config      *common.Config
	logger      arbor.ILogger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "corporate-reports",
		Short:         "EDINET filing retrieval, extraction, valuation and report assembly",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringArrayVarP(&a.configFiles, "config", "c", nil,
		"Configuration file path (can be specified multiple times, later files override earlier ones)")

	root.AddCommand(
		newEdinetCmd(a),
		newExtractCmd(a),
		newValuationCmd(a),
		newReportCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration (defaults -> files -> .env -> env) and initializes the logger.
func (a *app) setup() error {
	if len(a.configFiles) == 0 {
		if _, err := os.Stat(common.DefaultConfigFile); err == nil {
			a.configFiles = append(a.configFiles, common.DefaultConfigFile)
		}
	}

	config, err := common.LoadFromFiles(a.configFiles...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.config = config
	a.logger = common.InitLogger(config)
	common.CrashLogDir = filepath.Dir(config.Logging.File)

	a.logger.Debug().
		Strs("config_files", a.configFiles).
		Str("log_level", config.Logging.Level).
		Strs("log_output", config.Logging.Output).
		Msg("Configuration loaded")

	return nil
}

func main() {
	defer common.RecoverWithCrashFile()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		if errors.Is(err, edinet.ErrRemoteCall) {
			writeCompactJSON(stderr, statusMessage{Status: "error", Message: err.Error()})
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

type statusMessage struct {
	Status    string   `json:"status"`
	Message   string   `json:"message,omitempty"`
	File      string   `json:"file,omitempty"`
	Extracted []string `json:"extracted,omitempty"`
}

// writeCompactJSON writes v on one line with non-ASCII and HTML characters unescaped.
func writeCompactJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(w, "{\"status\":\"error\",\"message\":%q}\n", err.Error())
	}
}
