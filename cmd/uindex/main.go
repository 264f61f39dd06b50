package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cazalla/uindex/pkg/uindex"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var grammarPath, knowledgePath string

	root := &cobra.Command{
		Use:   "uindex",
		Short: "uindex tells and asks facts against a configurable reference grammar",
	}
	root.PersistentFlags().StringVar(&grammarPath, "grammar", "examples/grammars/isa.yaml", "path to a grammar spec YAML file")
	root.PersistentFlags().StringVar(&knowledgePath, "knowledge", "", "path to a file of facts to tell before running the command (default: none)")

	openDB := func() (*uindex.DB, error) {
		spec, err := loadSpec(grammarPath)
		if err != nil {
			return nil, err
		}
		db := uindex.New(uindex.NewReferenceBridge(spec))
		if knowledgePath != "" {
			knowledge, err := os.ReadFile(knowledgePath)
			if err != nil {
				return nil, fmt.Errorf("read knowledge file: %w", err)
			}
			db.Tell(string(knowledge))
		}
		return db, nil
	}

	root.AddCommand(newTellCmd(openDB))
	root.AddCommand(newAskCmd(openDB))
	return root
}

func loadSpec(path string) (*uindex.Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	spec, err := uindex.LoadSpec(f)
	if err != nil {
		return nil, fmt.Errorf("load grammar: %w", err)
	}
	return spec, nil
}

func newTellCmd(openDB func() (*uindex.DB, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "tell <facts>",
		Short: "add facts to a knowledge base and print ok (no count of new facts is reported)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			db.Tell(args[0])
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func newAskCmd(openDB func() (*uindex.DB, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <query>",
		Short: "evaluate a conjunctive query and print every matching",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}

			results := db.Ask(args[0])
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no matches")
				return nil
			}
			for _, m := range results {
				fmt.Fprintln(cmd.OutOrStdout(), formatMatching(m))
			}
			return nil
		},
	}
}

// formatMatching renders a Matching as "<X1>=alice, <X2>=bob" with
// variables in a stable, sorted order so CLI output is deterministic
// despite Matching being backed by a map.
func formatMatching(m uindex.Matching) string {
	vars := make([]*uindex.Segment, 0, len(m))
	for v := range m {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Text < vars[j].Text })

	parts := make([]string, 0, len(vars))
	for _, v := range vars {
		parts = append(parts, fmt.Sprintf("%s=%s", v.Text, m[v].Text))
	}
	return strings.Join(parts, ", ")
}
