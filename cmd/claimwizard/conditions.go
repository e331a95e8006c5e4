package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/liliang-cn/claimwizard/internal/catalog"
	"github.com/liliang-cn/claimwizard/internal/claim"
	"github.com/liliang-cn/claimwizard/internal/domain"
)

var conditionsEvidence bool

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			PaddingLeft(4)
)

var conditionsCmd = &cobra.Command{
	Use:   "conditions [query]",
	Short: "Search the condition catalog",
	Long: `List the conditions offered by the wizard, filtered by name or
description. With --evidence the condition query dataset is searched instead
and symptoms and required evidence are shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load()
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}

		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		out := cmd.OutOrStdout()
		if conditionsEvidence {
			printConditionInfo(out, query, cat.Query(query))
			return nil
		}
		printConditions(out, query, claim.Filter(cat.Conditions(), query))
		return nil
	},
}

func init() {
	conditionsCmd.Flags().BoolVarP(&conditionsEvidence, "evidence", "e", false, "Search the condition query dataset with required evidence")
}

func printConditions(w io.Writer, query string, conditions []domain.Condition) {
	fmt.Fprintln(w, headerStyle.Render(header("Conditions", query, len(conditions))))
	if len(conditions) == 0 {
		fmt.Fprintln(w, descStyle.Render("  No conditions match your search."))
		return
	}
	for _, c := range conditions {
		fmt.Fprintf(w, "  %s %s\n", idStyle.Render(fmt.Sprintf("#%d", c.ID)), nameStyle.Render(c.Name))
		fmt.Fprintf(w, "    %s\n", descStyle.Render(c.Description))
	}
}

func printConditionInfo(w io.Writer, query string, infos []domain.ConditionInfo) {
	fmt.Fprintln(w, headerStyle.Render(header("Condition evidence", query, len(infos))))
	if len(infos) == 0 {
		fmt.Fprintln(w, descStyle.Render("  No conditions match your search."))
		return
	}
	for _, info := range infos {
		fmt.Fprintf(w, "  %s  %s\n", nameStyle.Render(info.Name), descStyle.Render(info.Description))
		fmt.Fprintf(w, "    Symptoms: %s\n", strings.Join(info.Symptoms, ", "))
		fmt.Fprintln(w, "    Required evidence:")
		for _, e := range info.RequiredEvidence {
			fmt.Fprintln(w, itemStyle.Render("• "+e))
		}
	}
}

func header(title, query string, n int) string {
	if query == "" {
		return fmt.Sprintf("%s (%d)", title, n)
	}
	return fmt.Sprintf("%s matching %q (%d)", title, query, n)
}
