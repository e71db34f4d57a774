package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xavierca1/ligue-outbound/internal/entity"
	"github.com/xavierca1/ligue-outbound/internal/infra/database"
	"github.com/xavierca1/ligue-outbound/internal/usecase"
)

func newMigrateCmd(openDB DBOpener, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.MigrateUp(db); err != nil {
				return err
			}
			outputFn().Success("Migrations applied")
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.MigrateDown(db, steps); err != nil {
				return err
			}
			outputFn().Success(fmt.Sprintf("Rolled back %d migration(s)", steps))
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")

	cmd.AddCommand(up, down)
	return cmd
}

func newTenantCmd(openDB DBOpener, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Manage tenants",
	}

	var name string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a tenant with the default cadence and print its API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenant, apiKey, err := entity.NewTenant(name)
			if err != nil {
				return err
			}

			db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.NewTenantRepository(db).Create(cmd.Context(), tenant); err != nil {
				return err
			}
			if err := database.NewCadencePolicyRepository(db).Upsert(cmd.Context(), entity.DefaultCadencePolicy(tenant.ID)); err != nil {
				return err
			}

			out := outputFn()
			out.Success("Tenant created. Store the API key now, it is not shown again.")
			out.Print(
				[]string{"ID", "NAME", "API_KEY"},
				[][]string{{tenant.ID, tenant.Name, apiKey}},
				map[string]string{"id": tenant.ID, "name": tenant.Name, "apiKey": apiKey},
			)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "Tenant name")
	create.MarkFlagRequired("name")

	cmd.AddCommand(create)
	return cmd
}

func newSequenceCmd(openDB DBOpener, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sequence",
		Short: "Run the sequencing engine",
	}

	var tenantID string
	run := &cobra.Command{
		Use:   "run",
		Short: "Run one sequencing pass for a tenant (no dispatch)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			uc := usecase.NewRunSequenceUseCase(
				database.NewLeadRepository(db),
				database.NewCadencePolicyRepository(db),
			)
			summary, err := uc.Execute(cmd.Context(), tenantID, usecase.SystemClock{})
			if err != nil {
				return err
			}

			out := outputFn()
			out.Success(fmt.Sprintf("dead=%d emails=%d calls=%d",
				summary.DeadLeads, summary.EmailsQueued, summary.CallsQueued))
			out.Print([]string{"LEAD_ID", "ACTION", "STEP", "ERROR"}, actionRows(summary.Actions), summary)
			return nil
		},
	}
	run.Flags().StringVar(&tenantID, "tenant", "", "Tenant ID")
	run.MarkFlagRequired("tenant")

	cmd.AddCommand(run)
	return cmd
}

func actionRows(actions []usecase.Action) [][]string {
	rows := make([][]string, len(actions))
	for i, a := range actions {
		step := ""
		if a.Step > 0 {
			step = strconv.Itoa(a.Step)
		}
		rows[i] = []string{a.LeadID, string(a.Action), step, a.Error}
	}
	return rows
}

func newScoreCmd(outputFn func() *Output) *cobra.Command {
	var in usecase.ScoreInput

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a lead profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			score := usecase.ScoreLead(in)
			outputFn().Print(
				[]string{"SCORE"},
				[][]string{{strconv.Itoa(score)}},
				map[string]int{"score": score},
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "Job title")
	cmd.Flags().StringVar(&in.CompanySize, "company-size", "", `Company size bucket, e.g. "51,200"`)
	cmd.Flags().StringVar(&in.Location, "location", "", "Location")
	return cmd
}
