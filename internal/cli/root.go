package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gearguard/internal/board"
	"gearguard/internal/cli/formatter"
	"gearguard/internal/domain"
)

// NewRootCmd creates the top-level "gearguard" command. With no subcommand
// on an interactive terminal it launches the TUI; otherwise the plain
// subcommands print tables suitable for scripts and pipes.
func NewRootCmd(state *SharedState) *cobra.Command {
	root := &cobra.Command{
		Use:           "gearguard",
		Short:         "Maintenance management dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				return RunTUI(state)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newEquipmentCmd(state),
		newRequestsCmd(state),
		newTeamsCmd(state),
		newStatsCmd(state),
	)

	return root
}

func newEquipmentCmd(state *SharedState) *cobra.Command {
	var category, department string
	cmd := &cobra.Command{
		Use:   "equipment",
		Short: "List equipment",
		RunE: func(cmd *cobra.Command, args []string) error {
			category = strings.ToUpper(category)
			if category != "" && !domain.ValidCategories[category] {
				return fmt.Errorf("unknown category %q", category)
			}
			var (
				list []domain.Equipment
				err  error
			)
			if department != "" {
				list, err = state.API.EquipmentByDepartment(cmd.Context(), department)
			} else {
				list, err = state.API.ListEquipment(cmd.Context())
			}
			if err != nil {
				return err
			}
			list = domain.FilterEquipment(list, "", domain.Category(category))

			rows := make([][]string, 0, len(list))
			for _, eq := range list {
				rows = append(rows, []string{
					strconv.Itoa(eq.ID),
					eq.Name,
					eq.SerialNumber,
					string(eq.Category),
					eq.Department,
					formatter.Coalesce(eq.MaintenanceTeamName),
					formatter.ScrapBadge(eq.IsScrapped),
					fmt.Sprintf("%d/%d", eq.OpenRequestCount, eq.RequestCount),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"ID", "NAME", "SERIAL", "CATEGORY", "DEPT", "TEAM", "STATUS", "REQS"},
				rows,
			))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "filter by category (MACHINE, VEHICLE, COMPUTER, TOOL, OTHER)")
	cmd.Flags().StringVar(&department, "department", "", "filter by department")
	return cmd
}

func newRequestsCmd(state *SharedState) *cobra.Command {
	var stage string
	var teamID int
	cmd := &cobra.Command{
		Use:   "requests",
		Short: "List maintenance requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				list []domain.MaintenanceRequest
				err  error
			)
			switch {
			case stage != "":
				list, err = state.API.RequestsByStage(cmd.Context(), domain.Stage(strings.ToUpper(stage)))
			case teamID != 0:
				list, err = state.API.RequestsByTeam(cmd.Context(), teamID)
			default:
				list, err = state.API.ListRequests(cmd.Context())
			}
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(list))
			for _, r := range list {
				rows = append(rows, []string{
					strconv.Itoa(r.ID),
					formatter.Truncate(r.Subject, 32),
					r.EquipmentName,
					formatter.StageBadge(r.Stage),
					formatter.PriorityBadge(r.Priority),
					string(r.RequestType),
					formatter.ShortDate(r.ScheduledDate),
					formatter.Coalesce(r.AssignedTechnicianName),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"ID", "SUBJECT", "EQUIPMENT", "STAGE", "PRIORITY", "TYPE", "SCHEDULED", "TECHNICIAN"},
				rows,
			))
			if stage == "" {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(BoardSummary(list)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&stage, "stage", "", "filter by stage (NEW, IN_PROGRESS, REPAIRED, SCRAP)")
	cmd.Flags().IntVar(&teamID, "team", 0, "filter by maintenance team id")
	return cmd
}

func newTeamsCmd(state *SharedState) *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List maintenance teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := state.API.ListTeams(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(list))
			for _, t := range list {
				rows = append(rows, []string{
					strconv.Itoa(t.ID),
					t.Name,
					strconv.Itoa(t.TechnicianCount),
					formatter.Truncate(t.Description, 48),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"ID", "NAME", "TECHNICIANS", "DESCRIPTION"},
				rows,
			))
			return nil
		},
	}
}

func newStatsCmd(state *SharedState) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show request statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := state.API.RequestStatistics(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total requests: %d\n", stats.TotalRequests)
			fmt.Fprintf(out, "Overdue:        %d\n\n", stats.Overdue)

			rows := make([][]string, 0, len(domain.Stages))
			for _, s := range domain.Stages {
				rows = append(rows, []string{s.Label(), strconv.Itoa(stats.ByStage[s])})
			}
			fmt.Fprintln(out, formatter.RenderTable([]string{"STAGE", "COUNT"}, rows))
			return nil
		},
	}
}

// BoardSummary renders the per-stage card counts as a one-line summary.
// Used by scripts that want the kanban shape without the TUI.
func BoardSummary(requests []domain.MaintenanceRequest) string {
	counts := board.CountByStage(requests)
	parts := make([]string, 0, len(domain.Stages))
	for _, s := range domain.Stages {
		parts = append(parts, fmt.Sprintf("%s:%d", s.Label(), counts[s]))
	}
	return strings.Join(parts, "  ")
}
