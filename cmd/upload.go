package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// uploadCmd uploads a profile image for the logged-in account.
func uploadCmd() *cobra.Command {
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a profile image",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			uploadImage(cmd, args[0], !noProgress)
		},
	}

	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Do not show the upload progress bar")

	return cmd
}

func uploadImage(cmd *cobra.Command, filePath string, showProgress bool) {
	if _, err := os.Stat(filePath); err != nil {
		cmd.PrintErrln("Error: Cannot read the image file. Please check the path and try again.")
		log.Error().Err(err).Str("path", filePath).Msg("Image file is not readable.")
		return
	}

	manager, api, ok := requireSession(cmd)
	if !ok {
		return
	}

	url, err := api.UploadProfileImage(cmd.Context(), filePath, showProgress)
	if err != nil {
		reportRequestError(cmd, manager, err)
		return
	}

	cmd.Println("Image uploaded successfully.")
	if url != "" {
		cmd.Println("URL:", url)
	}
}
