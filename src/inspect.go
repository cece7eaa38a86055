package main

import (
	"fmt"

	"github.com/contre95/rattlesnake/src/infra/artwork"
	"github.com/contre95/rattlesnake/src/infra/tag"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the metadata of a single audio file",
		Long: `Inspect reads one audio file and prints every tag field it carries,
plus the decoded dimensions of the embedded artwork when present.`,
		Args: cobra.ExactArgs(1),
		RunE: runInspectCmd,
	}
}

func runInspectCmd(cmd *cobra.Command, args []string) error {
	if _, err := setup(cmd); err != nil {
		return err
	}

	reader := tag.NewReader()
	tags, err := reader.ReadTags(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	tags.Pretty()

	if len(tags.Picture) > 0 {
		info, err := artwork.NewService().Describe(tags.Picture)
		if err != nil {
			fmt.Printf("%-20s : %d bytes (undecodable: %v)\n", "Artwork", len(tags.Picture), err)
			return nil
		}
		fmt.Printf("%-20s : %dx%d %s, %d bytes\n", "Artwork", info.Width, info.Height, info.Format, info.Bytes)
	}
	return nil
}
