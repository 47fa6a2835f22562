package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plaide-ai/intake/internal/model"
)

var (
	createTitle    string
	createClient   string
	createCaseType string
)

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "Manage cases",
}

var casesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cases",
	RunE: func(cmd *cobra.Command, args []string) error {
		cases, err := a.caseClient.List(cmd.Context())
		if err != nil {
			return err
		}
		a.store.SetCases(cases)

		if len(cases) == 0 {
			fmt.Println("No cases.")
			return nil
		}
		for _, c := range cases {
			fmt.Printf("%s  %-10s  %-12s  %d file(s)  %s\n",
				c.ID, c.Status, c.CaseType, c.EvidenceCount, c.Title)
		}
		return nil
	},
}

var casesCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Create a new case",
	Example: `  intake cases create --title "Dupont c. Martin" --client "M. Dupont" --type travail`,
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := a.caseClient.Create(cmd.Context(), &model.CreateCaseRequest{
			Title:      createTitle,
			ClientName: createClient,
			CaseType:   model.CaseType(createCaseType),
		})
		if err != nil {
			return err
		}

		// The list is server truth; refetch instead of inserting locally.
		if cases, err := a.caseClient.List(cmd.Context()); err == nil {
			a.store.SetCases(cases)
		}

		fmt.Printf("Created case %s (%s)\n", created.ID, created.Title)
		return nil
	},
}

var casesGetCmd = &cobra.Command{
	Use:   "get <case-id>",
	Short: "Show one case, including its synthesis when available",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := a.caseClient.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		a.store.SetCurrentCase(c)

		fmt.Printf("Case:     %s\n", c.Title)
		fmt.Printf("Client:   %s\n", c.ClientName)
		fmt.Printf("Type:     %s\n", c.CaseType)
		fmt.Printf("Status:   %s\n", c.Status)
		fmt.Printf("Evidence: %d file(s)\n", c.EvidenceCount)
		if c.Synthesis != nil {
			fmt.Printf("\nSynthesis:\n%s\n", c.Synthesis.Summary)
			for _, st := range c.Synthesis.Strengths {
				fmt.Printf("  + %s (%s)\n", st.Text, st.Source)
			}
			for _, wk := range c.Synthesis.Weaknesses {
				fmt.Printf("  - %s (%s)\n", wk.Text, wk.Source)
			}
		}
		return nil
	},
}

var casesDeleteCmd = &cobra.Command{
	Use:   "delete <case-id>",
	Short: "Delete a case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := a.caseClient.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		if cases, err := a.caseClient.List(cmd.Context()); err == nil {
			a.store.SetCases(cases)
		}
		fmt.Println("Case deleted.")
		return nil
	},
}

func init() {
	casesCreateCmd.Flags().StringVar(&createTitle, "title", "", "case title")
	casesCreateCmd.Flags().StringVar(&createClient, "client", "", "client name")
	casesCreateCmd.Flags().StringVar(&createCaseType, "type", string(model.CaseTypeOther), "case type (travail, famille, immobilier, commercial, penal, autre)")
	casesCreateCmd.MarkFlagRequired("title")
	casesCreateCmd.MarkFlagRequired("client")

	casesCmd.AddCommand(casesListCmd)
	casesCmd.AddCommand(casesCreateCmd)
	casesCmd.AddCommand(casesGetCmd)
	casesCmd.AddCommand(casesDeleteCmd)
}
