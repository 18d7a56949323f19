package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/models"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func printProjects(w io.Writer, format string, projects []models.Project) error {
	switch format {
	case outputJSON:
		if projects == nil {
			projects = []models.Project{}
		}
		return writeJSON(w, projects)
	case outputTable, "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tDEADLINE\tASSIGNEE\tBUDGET")
		for _, p := range projects {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				p.ID, p.Name, p.Status, p.Deadline, p.AssignedTeamMember, formatBudget(p.Budget))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q (want table or json)", format)
	}
}

func printProject(w io.Writer, format string, p models.Project) error {
	switch format {
	case outputJSON:
		return writeJSON(w, p)
	case outputTable, "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "id:\t%d\n", p.ID)
		fmt.Fprintf(tw, "name:\t%s\n", p.Name)
		fmt.Fprintf(tw, "status:\t%s\n", p.Status)
		fmt.Fprintf(tw, "deadline:\t%s\n", p.Deadline)
		fmt.Fprintf(tw, "assignee:\t%s\n", p.AssignedTeamMember)
		fmt.Fprintf(tw, "budget:\t%s\n", formatBudget(p.Budget))
		fmt.Fprintf(tw, "created:\t%s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(tw, "updated:\t%s\n", p.UpdatedAt.Format("2006-01-02 15:04:05"))
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q (want table or json)", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatBudget(b float64) string {
	return strconv.FormatFloat(b, 'f', 2, 64)
}
