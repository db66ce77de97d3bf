package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/marcoviana/awsvault/internal/config"
	"github.com/marcoviana/awsvault/internal/vault"
	"github.com/marcoviana/awsvault/internal/version"
)

var (
	cfg          config.Config
	logger       zerolog.Logger
	masterSecret string
	accountFlag  string
)

func printLogo() {
	// Gradient colors (Blue -> Purple -> Pink)
	ascii := []string{
		`   █████╗ ██╗    ██╗███████╗██╗   ██╗ █████╗ ██╗   ██╗██╗  ████████╗`,
		`  ██╔══██╗██║    ██║██╔════╝██║   ██║██╔══██╗██║   ██║██║  ╚══██╔══╝`,
		`  ███████║██║ █╗ ██║███████╗██║   ██║███████║██║   ██║██║     ██║   `,
		`  ██╔══██║██║███╗██║╚════██║╚██╗ ██╔╝██╔══██║██║   ██║██║     ██║   `,
		`  ██║  ██║╚███╔███╔╝███████║ ╚████╔╝ ██║  ██║╚██████╔╝███████╗██║   `,
		`  ╚═╝  ╚═╝ ╚══╝╚══╝ ╚══════╝  ╚═══╝  ╚═╝  ╚═╝ ╚═════╝ ╚══════╝╚═╝   `,
	}

	fmt.Println()
	for _, line := range ascii {
		for i, char := range line {
			ratio := float64(i) / float64(len(line))

			var r, g, b int
			if ratio < 0.5 {
				sub := ratio * 2
				r = int(0*(1-sub) + 170*sub)
				g = int(176*(1-sub) + 0*sub)
				b = 255
			} else {
				sub := (ratio - 0.5) * 2
				r = int(170*(1-sub) + 255*sub)
				g = 0
				b = int(255*(1-sub) + 128*sub)
			}

			fmt.Printf("\x1b[38;2;%d;%d;%dm%c\x1b[0m", r, g, b, char)
		}
		fmt.Println()
	}
	fmt.Println("\x1b[1m  Encrypted multi-account AWS credential vault\x1b[0m")
	fmt.Println()
}

var rootCmd = &cobra.Command{
	Use:   "awsvault",
	Short: "awsvault stores AWS credentials for multiple accounts, encrypted at rest",
	Long: `awsvault manages credentials for multiple AWS accounts in a single
encrypted store. The encryption key lives in the system keychain, never
next to the credentials. Accounts are validated against STS before they
are accepted, and service commands (ec2, s3, iam, lambda) run through
the validated session of a connected account.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		logger = newLogger(cfg)
		version.CheckForUpdates(cfg.ConfigDir)
	},
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	l := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)
	if cfg.Logging.Pretty {
		l = l.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return l
}

// openStore resolves the master key and opens the encrypted store.
func openStore() (*vault.Store, error) {
	secret, err := vault.LoadKey(cfg, masterSecret)
	if err != nil {
		return nil, err
	}
	key, err := vault.DeriveKey(secret)
	if err != nil {
		return nil, err
	}
	verifier := vault.NewSTSVerifier(cfg.IdentityTimeout(), logger)
	return vault.NewStore(cfg, key, verifier, logger), nil
}

func openVault() (*vault.Store, *vault.Coordinator, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	verifier := vault.NewSTSVerifier(cfg.IdentityTimeout(), logger)
	return store, vault.NewCoordinator(store, verifier, logger), nil
}

// Execute runs the CLI
func Execute() {
	if len(os.Args) <= 1 || (len(os.Args) > 1 && os.Args[1] == "help") {
		printLogo()
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&masterSecret, "secret", "", "Master encryption secret (default: AWSVAULT_KEY env or system keychain)")
	rootCmd.PersistentFlags().StringVar(&accountFlag, "account", "", "Account to connect for service commands")
}
