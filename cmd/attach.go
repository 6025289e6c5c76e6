package cmd

import (
	"fmt"
	"strings"

	"github.com/pders01/prochist/internal/config"
	"github.com/pders01/prochist/internal/history"
	"github.com/spf13/cobra"
)

var (
	attachFields      []string
	attachParents     []string
	attachDescription string
)

var attachCmd = &cobra.Command{
	Use:   "attach <file>",
	Short: "Attach processing history to a data file",
	Long: `Attach a processing history record to the given file.

The record combines automatically harvested fields (timestamp, login,
host, working directory, command line, tool versions) with any fields
given on the command line. Each --parent file contributes its entire
stored lineage, so the new history describes the file's whole ancestry.

Composite files (VRT) take their parentage from their component files;
giving them explicit parents is an error.

Examples:
  prochist attach result.tif --description "NDVI composite" --parent b04.tif --parent b08.tif
  prochist attach merged.tif --field sensor=S2A --parent scene1.tif
  prochist attach mosaic.vrt`,
	Args: cobra.ExactArgs(1),
	RunE: runAttach,
}

func init() {
	rootCmd.AddCommand(attachCmd)

	attachCmd.Flags().StringArrayVar(&attachFields, "field", []string{}, "Extra field as key=value (repeatable)")
	attachCmd.Flags().StringSliceVar(&attachParents, "parent", []string{}, "Parent file whose lineage to absorb (repeatable)")
	attachCmd.Flags().StringVar(&attachDescription, "description", "", "Short description of the file")
}

func runAttach(cmd *cobra.Command, args []string) error {
	target := args[0]

	fields := history.Record{}
	for k, v := range config.ExtraFields() {
		fields[k] = v
	}
	for _, kv := range attachFields {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return fmt.Errorf("invalid field %q (use key=value)", kv)
		}
		fields[k] = v
	}
	if attachDescription != "" {
		fields["description"] = attachDescription
	}

	if err := history.WriteHistory(fields, attachParents, target); err != nil {
		return err
	}

	fmt.Printf("Attached processing history to %s (%d parents)\n", target, len(attachParents))
	return nil
}
