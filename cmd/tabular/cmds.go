package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tabular/internal/arrowio"
	"tabular/internal/engine"
)

func fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	os.Exit(1)
}

func showJSON(v interface{}) {
	e := json.NewEncoder(os.Stdout)
	e.SetIndent("", "  ")
	e.Encode(v)
}

func loadTable(path string) *engine.Table {
	t, err := engine.Load(path)
	if err != nil {
		fatal("%v", err)
	}
	return t
}

func preview(cmd *cobra.Command, args []string) {
	n, _ := cmd.Flags().GetInt("rows")
	t := loadTable(args[0])
	showJSON(t.Preview(n).View())
}

func summary(cmd *cobra.Command, args []string) {
	t := loadTable(args[0])
	showJSON(t.Summary())
}

func describe(cmd *cobra.Command, args []string) {
	t := loadTable(args[0])
	showJSON(t.Describe())
}

func selectColumns(cmd *cobra.Command, args []string) {
	t := loadTable(args[0])
	sub, err := t.Project(args[1:]...)
	if err != nil {
		fatal("%v", err)
	}
	showJSON(sub.View())
}

func filterRows(cmd *cobra.Command, args []string) {
	t := loadTable(args[0])
	cond, err := engine.ParseCondition(args[1])
	if err != nil {
		fatal("%v", err)
	}
	sub, err := t.FilterWhere(cond)
	if err != nil {
		fatal("%v", err)
	}
	showJSON(sub.View())
}

func labelRange(cmd *cobra.Command, args []string) {
	t := loadTable(args[0])
	start, err := strconv.Atoi(args[1])
	if err != nil {
		fatal("start label %q is not an integer", args[1])
	}
	end, err := strconv.Atoi(args[2])
	if err != nil {
		fatal("end label %q is not an integer", args[2])
	}
	var names []string
	if raw, _ := cmd.Flags().GetString("columns"); raw != "" {
		names = strings.Split(raw, ",")
	}
	sub, err := t.LabelRange(start, end, names...)
	if err != nil {
		fatal("%v", err)
	}
	showJSON(sub.View())
}

func sortRows(cmd *cobra.Command, args []string) {
	t := loadTable(args[0])
	desc, _ := cmd.Flags().GetBool("desc")
	sorted, err := t.Sort(args[1], !desc)
	if err != nil {
		fatal("%v", err)
	}
	showJSON(sorted.View())
}

func derive(cmd *cobra.Command, args []string) {
	t := loadTable(args[0])
	if err := t.AddDerivedColumn(args[1], engine.Ratio(args[2], args[3])); err != nil {
		fatal("%v", err)
	}
	showJSON(t.View())
}

func export(cmd *cobra.Command, args []string) {
	t := loadTable(args[0])
	f, err := os.Create(args[1])
	if err != nil {
		fatal("%v", err)
	}
	defer f.Close()
	if err := arrowio.WriteIPC(t, f); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Wrote %d rows, %d columns to %s\n", t.NumRows(), t.NumCols(), args[1])
}
