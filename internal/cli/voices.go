package cli

import (
	"fmt"

	"github.com/ktsarnakliyski/JobSpresso/internal/voice"

	"github.com/spf13/cobra"
)

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List the available voice profiles",
	Long: `List the voice profiles found in the configured profiles directory.
The default profile is marked; it is used by assessments that do not request
a profile explicitly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		logger := getLoggerFromContext(cmd.Context())

		store, err := voice.NewStore(cfg.Voices.ProfilesDir, logger)
		if err != nil {
			return err
		}

		profiles := store.List()
		if len(profiles) == 0 {
			fmt.Printf("No voice profiles found in %s\n", cfg.Voices.ProfilesDir)
			return nil
		}

		fmt.Printf("Voice profiles (%d):\n", len(profiles))
		for _, p := range profiles {
			marker := " "
			if p.IsDefault {
				marker = "*"
			}
			fmt.Printf("  %s %-24s %s (formality: %d)\n", marker, p.ID, p.Name, p.ToneFormality)
		}
		return nil
	},
}
