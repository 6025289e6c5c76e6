package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alpkeskin/gotoon"
	"github.com/pders01/prochist/internal/config"
	"github.com/pders01/prochist/internal/history"
	"github.com/spf13/cobra"
)

var (
	viewAncestor     string
	viewParents      bool
	viewWholeLineage bool
	viewWidth        int
	viewJSON         bool
	viewToon         bool
)

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Show the processing history stored in a data file",
	Long: `Display the processing history of the given file.

By default the file's own metadata record is shown. Use --ancestor to
show a specific ancestor instead, named either by filename or, when a
filename matches several ancestors, by full key literal. Use --parents
for the direct parent list, or --whole-lineage for every parent
relationship in the lineage.

Examples:
  prochist view result.tif
  prochist view result.tif --ancestor b04.tif
  prochist view result.tif --ancestor "('b04.tif', '2025-06-01 10:30:00+1000')"
  prochist view result.tif --whole-lineage
  prochist view result.tif --json`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().StringVar(&viewAncestor, "ancestor", "", "Show this ancestor instead of the file itself")
	viewCmd.Flags().BoolVar(&viewParents, "parents", false, "Show the parent list instead of the metadata record")
	viewCmd.Flags().BoolVar(&viewWholeLineage, "whole-lineage", false, "Show all parent relationships for the whole lineage")
	viewCmd.Flags().IntVarP(&viewWidth, "width", "w", 0, "Display width in characters (default from config)")
	viewCmd.Flags().BoolVar(&viewJSON, "json", false, "Output as JSON")
	viewCmd.Flags().BoolVar(&viewToon, "toon", false, "Output in LLM-friendly toon format")
}

func runView(cmd *cobra.Command, args []string) error {
	lineage, err := history.ReadHistory(args[0])
	if err != nil {
		return err
	}
	if lineage == nil {
		fmt.Printf("No processing history found in %s\n", args[0])
		return nil
	}

	// Output JSON if requested
	if viewJSON {
		output, err := json.MarshalIndent(lineage.Document(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	// Output Toon if requested
	if viewToon {
		output, err := gotoon.Encode(lineage.Document())
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	if viewWholeLineage {
		displayWholeLineage(lineage)
		return nil
	}

	key := history.CurrentKey
	if viewAncestor != "" {
		key, err = lineage.ResolveAncestor(viewAncestor)
		if err != nil {
			var ambiguous *history.AmbiguousAncestorError
			if errors.As(err, &ambiguous) {
				fmt.Println("Multiple ancestors match. Specify a full key literal:")
				for _, match := range ambiguous.Matches {
					fmt.Printf("    %q\n", match.String())
				}
				return nil
			}
			return err
		}
	}

	if viewParents {
		displayParents(key, lineage)
		return nil
	}
	displayRecord(lineage.MetadataByKey[key], displayWidth())
	return nil
}

func displayWidth() int {
	if viewWidth > 0 {
		return viewWidth
	}
	return config.ViewWidth()
}

// displayRecord prints a metadata record as a simple text table, one
// field per row, wrapping long values under an indent aligned past the
// field name.
func displayRecord(record history.Record, width int) {
	fieldNames := make([]string, 0, len(record))
	for name := range record {
		fieldNames = append(fieldNames, name)
	}
	sort.Strings(fieldNames)

	for _, name := range fieldNames {
		row := fmt.Sprintf("%s: %v", name, record[name])
		indent := strings.Repeat(" ", len(name)+2)
		for _, line := range wrap(row, width, indent) {
			fmt.Println(line)
		}
	}
}

// wrap greedily breaks row into lines no wider than width, prefixing
// continuation lines with indent.
func wrap(row string, width int, indent string) []string {
	words := strings.Fields(row)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = indent + word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}

func displayParents(key history.Key, lineage *history.Lineage) {
	fmt.Println(key.String())
	parents := lineage.ParentsByKey[key]
	if len(parents) == 0 {
		fmt.Println("     No parents")
		return
	}
	for _, parent := range parents {
		fmt.Printf("     %s\n", parent.String())
	}
}

func displayWholeLineage(lineage *history.Lineage) {
	for _, key := range lineage.Keys() {
		displayParents(key, lineage)
	}
}
