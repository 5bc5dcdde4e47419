package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/yt-batch/internal/download"
)

// newInfoCmd builds the metadata-only subcommand
func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info URL",
		Short: "Show video metadata without downloading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := download.FetchInfo(cmd.Context(), args[0])
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
				return &exitError{code: ExitFailed, err: err}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title:       %s\n", info.Title)
			fmt.Fprintf(out, "Uploader:    %s\n", info.Uploader)
			fmt.Fprintf(out, "Duration:    %s\n", info.DurationString())
			fmt.Fprintf(out, "Views:       %d\n", info.ViewCount)
			fmt.Fprintf(out, "Upload date: %s\n", info.UploadDate)
			return nil
		},
	}
}
