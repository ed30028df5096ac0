package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/apictl/client"
	"github.com/s0up4200/apictl/response"
	"github.com/s0up4200/apictl/transfer"
)

var downloadOutput string

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download <path>",
	Short: "Download a file response",
	Long: `GET a path and save the body as a file. The file is written to
download.temp_folder_path unless --output names a directory to move it to.`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "directory to move the downloaded file to")
}

func runDownload(cmd *cobra.Command, args []string) error {
	value, _, err := apiClient.Call(cmd.Context(), client.Request{
		Path:       args[0],
		ReturnType: "File",
	})
	if err != nil {
		return err
	}

	file, ok := value.(*response.File)
	if !ok || file == nil {
		return fmt.Errorf("empty response body, nothing downloaded")
	}

	if downloadOutput != "" {
		if err := moveFile(file, downloadOutput); err != nil {
			return err
		}
	}

	logger.Info().Str("path", file.Path).Int64("bytes", file.Size).Msg("Downloaded")
	return writeValue(cmd.OutOrStdout(), file)
}

// moveFile moves file into dir and updates its path
func moveFile(file *response.File, dir string) error {
	target, err := transfer.Move(file.Path, dir)
	if err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", file.Path, dir, err)
	}
	file.Path = target
	return nil
}
