package cli

import (
	"context"
	"fmt"

	"github.com/ktsarnakliyski/JobSpresso/internal/ai"
	"github.com/ktsarnakliyski/JobSpresso/internal/assessment"
	"github.com/ktsarnakliyski/JobSpresso/internal/common"
	"github.com/ktsarnakliyski/JobSpresso/internal/errors"
	"github.com/ktsarnakliyski/JobSpresso/internal/types"
	"github.com/ktsarnakliyski/JobSpresso/internal/voice"

	"github.com/spf13/cobra"
)

var assessConfig common.CommandConfig
var assessVoiceProfile string

type assessInput struct {
	jobDescription string
	profile        *types.VoiceProfile
}

var assessCmd = &cobra.Command{
	Use:   "assess [job-description-file]",
	Short: "Assess a job description and generate an improved version",
	Long: `Assess a job description file across six quality categories and produce
an overall score, per-category findings, question coverage, and an improved
rewrite of the text. Use --voice-profile to score and rewrite against a
specific brand voice.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if assessConfig.OutputFormat == "" {
			assessConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(assessConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAssess(cmd.Context(), args)
	},
}

func init() {
	assessCmd.Flags().StringVarP(&assessConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	assessCmd.Flags().StringVar(&assessConfig.OutputFormat, "format", "", "Output format (json, text, markdown)")
	assessCmd.Flags().StringVar(&assessVoiceProfile, "voice-profile", "", "Voice profile ID to assess against (default: the default profile)")

	_ = assessCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return cfg.App.SupportedFormats, cobra.ShellCompDirectiveNoFileComp
	})
}

func runAssess(ctx context.Context, args []string) error {
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)
	assessConfig.MaxFileSize = cfg.App.MaxFileSize

	profile, err := resolveVoiceProfile(cfg.Voices.ProfilesDir, assessVoiceProfile, logger)
	if err != nil {
		return err
	}

	facade, err := ai.NewFacade(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize AI services: %w", err)
	}
	defer func() {
		if err := facade.Close(); err != nil {
			logger.Warn("Failed to close AI services", "error", err)
		}
	}()

	assessor := assessment.NewService(facade, logger)

	createInput := func(contents []string) (assessInput, error) {
		return assessInput{jobDescription: contents[0], profile: profile}, nil
	}

	operation := func(ctx context.Context, input assessInput) (*types.AssessmentResult, error) {
		return assessor.Analyze(ctx, input.jobDescription, input.profile)
	}

	logDetails := func(input assessInput, cmdCfg common.CommandConfig) {
		kv := []any{
			"input_length", len(input.jobDescription),
			"output_format", cmdCfg.OutputFormat,
		}
		if input.profile != nil {
			kv = append(kv, "voice_profile", input.profile.ID)
		}
		logger.Info("Starting job description assessment", kv...)
	}

	return common.RunFileCommand(ctx, logger, assessConfig, args, createInput, operation, logDetails)
}

// resolveVoiceProfile loads the named profile from the profiles directory, or
// the default profile when id is empty. A missing directory is not an error
// when no explicit profile was requested.
func resolveVoiceProfile(dir, id string, logger *errors.Logger) (*types.VoiceProfile, error) {
	store, err := voice.NewStore(dir, logger)
	if err != nil {
		if id == "" {
			logger.Debug("No voice profiles available, assessing without a profile", "dir", dir)
			return nil, nil
		}
		return nil, err
	}
	if id == "" {
		return store.Default(), nil
	}
	return store.Get(id)
}
