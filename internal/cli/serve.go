package cli

import (
	"github.com/ktsarnakliyski/JobSpresso/internal/ai"
	"github.com/ktsarnakliyski/JobSpresso/internal/config"
	"github.com/ktsarnakliyski/JobSpresso/internal/server"
	"github.com/ktsarnakliyski/JobSpresso/internal/voice"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the assessment API. The server provides
endpoints for assessing and generating job descriptions, managing and
extracting voice profiles, and checking service health.

Configuration is read from the config file and environment variables; the
flags below override the corresponding settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().String("port", "", "Port to listen on (overrides config)")
	serveCmd.Flags().String("host", "", "Host to bind to (overrides config)")
	serveCmd.Flags().String("tls-mode", "", "TLS mode: disabled or server (overrides config)")
	serveCmd.Flags().String("cert-file", "", "Path to TLS certificate file (overrides config)")
	serveCmd.Flags().String("key-file", "", "Path to TLS private key file (overrides config)")

	// Bind flags to viper so they override file and environment settings
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.tls.mode", serveCmd.Flags().Lookup("tls-mode"))
	_ = viper.BindPFlag("server.tls.certFile", serveCmd.Flags().Lookup("cert-file"))
	_ = viper.BindPFlag("server.tls.keyFile", serveCmd.Flags().Lookup("key-file"))
}

func runServe(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)

	// Flag overrides land in viper after LoadConfig has run, so re-read them here
	if port := viper.GetString("server.port"); port != "" {
		cfg.Server.Port = port
	}
	if host := viper.GetString("server.host"); host != "" {
		cfg.Server.Host = host
	}
	if mode := viper.GetString("server.tls.mode"); mode != "" {
		cfg.Server.TLS.Mode = mode
	}
	if certFile := viper.GetString("server.tls.certFile"); certFile != "" {
		cfg.Server.TLS.CertFile = certFile
	}
	if keyFile := viper.GetString("server.tls.keyFile"); keyFile != "" {
		cfg.Server.TLS.KeyFile = keyFile
	}

	// Vault-held secrets override anything from file or environment
	if err := config.ApplyVaultSecrets(cfg, logger); err != nil {
		return err
	}

	store, err := voice.NewStore(cfg.Voices.ProfilesDir, logger)
	if err != nil {
		return err
	}

	facade, err := ai.NewFacade(cfg, logger)
	if err != nil {
		return err
	}

	serverCfg := server.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        Version,
		TLSConfig:      cfg.Server.TLS,
		APIKeys:        cfg.Server.APIKeys,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxRequestSize: cfg.App.MaxFileSize,
		RateLimit:      &cfg.Server.RateLimit,
	}

	srv := server.NewServer(cfg, serverCfg, facade, store, logger)
	return srv.Start()
}
