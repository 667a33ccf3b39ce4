package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tape-escape/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tape-escape SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game session with a level picker.
Progress is stored per server and keyed by SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tape-escape/host_key

Examples:
  tape-escape serve                           # Listen on the configured address
  tape-escape serve --ssh :2222               # Listen on port 2222
  tape-escape serve --host-key ./my_host_key  # Use specific host key
  tape-escape serve --db ./progress.db        # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address host:port (overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting, e.g. 30m (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) {
	e := loadEnv()
	lvls := e.loadLevels()

	cfg := tui.SSHServerConfig{
		Address:      e.cfg.SSH.Address,
		HostKeyPath:  e.cfg.SSH.HostKey,
		DBPath:       e.cfg.Storage.Path,
		IdleTimeout:  e.cfg.SSH.IdleTimeout,
		Levels:       lvls,
		Rules:        e.rules,
		HistoryDepth: e.cfg.History.Depth,
		Theme:        tui.NewTheme(e.cfg.Theme),
	}
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = flagIdleTimeout
	}

	logger := e.logger.WithPrefix("tape-escape-ssh")

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting tape-escape SSH server on %s with %d levels\n", cfg.Address, len(lvls))
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// port returns the port part of a listen address.
func port(addr string) string {
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		return addr[i+1:]
	}
	return addr
}

