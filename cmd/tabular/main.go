package main

import (
	"os"

	"github.com/spf13/cobra"
)

func addCommands(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "preview file",
		Short: "Show the first rows of a delimited file",
		Args:  cobra.ExactArgs(1),
		Run:   preview}
	cmd.Flags().IntP("rows", "n", 5, "number of rows to show")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "summary file",
		Short: "Report column names, types, non-missing counts and memory",
		Args:  cobra.ExactArgs(1),
		Run:   summary}
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "describe file",
		Short: "Report descriptive statistics for the numeric columns",
		Args:  cobra.ExactArgs(1),
		Run:   describe}
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "select file column+",
		Short: "Project the named columns",
		Args:  cobra.MinimumNArgs(2),
		Run:   selectColumns}
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "filter file expression",
		Short: "Keep rows matching a condition, e.g. 'loyalty_score > 7.5'",
		Args:  cobra.ExactArgs(2),
		Run:   filterRows}
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "range file start end",
		Short: "Select rows by index label, inclusive of both endpoints",
		Args:  cobra.ExactArgs(3),
		Run:   labelRange}
	cmd.Flags().StringP("columns", "c", "", "comma-separated columns to keep")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "sort file column",
		Short: "Reorder rows by the named column",
		Args:  cobra.ExactArgs(2),
		Run:   sortRows}
	cmd.Flags().Bool("desc", false, "sort descending")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "derive file name numerator denominator",
		Short: "Add a ratio column computed from two numeric columns",
		Args:  cobra.ExactArgs(4),
		Run:   derive}
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "export file output",
		Short: "Write the table as an Arrow IPC file",
		Args:  cobra.ExactArgs(2),
		Run:   export}
	root.AddCommand(cmd)
}

func main() {
	root := &cobra.Command{
		Use:   "tabular",
		Short: "Inspect, select and transform delimited tabular data",
	}
	addCommands(root)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
