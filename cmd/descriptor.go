package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/apictl/descriptor"
)

// descriptorCmd represents the descriptor command
var descriptorCmd = &cobra.Command{
	Use:               "descriptor <type>",
	Short:             "Parse a return type and print its structure",
	Example:           `  apictl descriptor 'Hash<String, Array<Pet>>'`,
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: skipInit,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := descriptor.Parse(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, d.String())
		printDescriptor(out, d, 1)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(descriptorCmd)
}

func printDescriptor(w io.Writer, d descriptor.Descriptor, depth int) {
	indent := strings.Repeat("  ", depth)
	switch d.Kind {
	case descriptor.Model:
		fmt.Fprintf(w, "%s%s %s\n", indent, d.Kind, d.Name)
	case descriptor.Array, descriptor.Map:
		fmt.Fprintf(w, "%s%s\n", indent, d.Kind)
		printDescriptor(w, *d.Elem, depth+1)
	default:
		fmt.Fprintf(w, "%s%s\n", indent, d.Kind)
	}
}
