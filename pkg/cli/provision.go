package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jtitra/labkit/pkg/logging"
	"github.com/jtitra/labkit/pkg/provision"
	"github.com/jtitra/labkit/pkg/template"
)

var (
	codeServerPort    int
	codeServerWorkDir string
	serviceName       string
	serviceUnitFile   string
	provisionRepo     string
	provisionLogFile  string
)

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Provision the lab host",
	Long: `Provision sets up the VM students work on. These commands write under
/etc and /tmp and talk to systemd, so they expect to run as root.`,
}

// provisionLogger builds the provisioner's logger from the persistent
// log flags. With --log-file, records also land in that file as JSON,
// so the workshop transcript survives the session. The returned func
// closes the file sink and must run after the command finishes.
func provisionLogger() (*slog.Logger, func(), error) {
	cfg := logging.Config{
		Level:  logging.ParseLevel(logLevel),
		Format: logging.ParseFormat(logFormat),
	}
	if provisionLogFile == "" {
		return logging.New(cfg), func() {}, nil
	}
	log, closer, err := logging.NewTee(cfg, provisionLogFile)
	if err != nil {
		return nil, nil, err
	}
	return log, func() { _ = closer.Close() }, nil
}

func newProvisioner() (*provision.Provisioner, func(), error) {
	log, done, err := provisionLogger()
	if err != nil {
		return nil, nil, err
	}
	opts := []provision.Option{provision.WithLogger(log)}
	if provisionRepo != "" {
		opts = append(opts, provision.WithFetcher(template.NewFetcher(template.WithRepo(provisionRepo))))
	}
	return provision.New(opts...), done, nil
}

var provisionCodeServerCmd = &cobra.Command{
	Use:   "code-server",
	Short: "Install and start code-server",
	Long: `Code-server installs the editor if missing, writes its settings and
systemd unit from the workshop assets, starts the service, and
installs the Terraform extension.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prov, done, err := newProvisioner()
		if err != nil {
			return err
		}
		defer done()
		if err := prov.SetupCodeServer(cmd.Context(), codeServerPort, codeServerWorkDir); err != nil {
			return err
		}
		printResult(map[string]any{"port": codeServerPort, "workDir": codeServerWorkDir}, func() {
			fmt.Printf("code-server is up on port %d.\n", codeServerPort)
		})
		return nil
	},
}

var provisionServiceCmd = &cobra.Command{
	Use:   "service",
	Short: "Create and start a systemd service",
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := os.ReadFile(serviceUnitFile)
		if err != nil {
			return fmt.Errorf("failed to read unit file: %w", err)
		}
		prov, done, err := newProvisioner()
		if err != nil {
			return err
		}
		defer done()
		if err := prov.CreateSystemdService(cmd.Context(), serviceName, string(unit)); err != nil {
			return err
		}
		printResult(map[string]string{"service": serviceName}, func() {
			fmt.Printf("Service '%s' is enabled and running.\n", serviceName)
		})
		return nil
	},
}

var provisionRunCmd = &cobra.Command{
	Use:   "run <command>",
	Short: "Run a shell command with logged outcome",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prov, done, err := newProvisioner()
		if err != nil {
			return err
		}
		defer done()
		out, err := prov.RunCommand(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printResult(map[string]string{"command": args[0], "output": string(out)}, func() {
			os.Stdout.Write(out)
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(provisionCmd)
	provisionCmd.AddCommand(provisionCodeServerCmd)
	provisionCmd.AddCommand(provisionServiceCmd)
	provisionCmd.AddCommand(provisionRunCmd)

	provisionCmd.PersistentFlags().StringVar(&provisionRepo, "repo", "", "GitHub repo serving workshop assets (default "+template.DefaultRepo+")")
	provisionCmd.PersistentFlags().StringVar(&provisionLogFile, "log-file", "", "also append JSON log records to this file")

	provisionCodeServerCmd.Flags().IntVar(&codeServerPort, "port", 8443, "port code-server listens on")
	provisionCodeServerCmd.Flags().StringVar(&codeServerWorkDir, "work-dir", "/root/workspace", "directory code-server opens")

	provisionServiceCmd.Flags().StringVar(&serviceName, "name", "", "service name (required)")
	provisionServiceCmd.Flags().StringVar(&serviceUnitFile, "unit-file", "", "unit file to install (required)")
	provisionServiceCmd.MarkFlagRequired("name")
	provisionServiceCmd.MarkFlagRequired("unit-file")
}
