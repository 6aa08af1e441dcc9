// Package export renders solve reports as JSON, CSV or aligned text.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/kilianp07/cobreuse/core/report"
)

// Formats lists the names accepted by Write.
var Formats = []string{"text", "json", "csv"}

// Write renders rep in the named format.
func Write(w io.Writer, format string, rep report.Report) error {
	switch format {
	case "json":
		return WriteJSON(w, rep)
	case "csv":
		return WriteCSV(w, rep)
	case "text", "":
		return WriteText(w, rep)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteJSON writes the report to w in JSON format.
func WriteJSON(w io.Writer, rep report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

var csvHeader = []string{"wave", "op", "type", "success", "launcher_row", "launcher_col", "fire_time", "absolute_time", "reason"}

// WriteCSV writes one row per assignment. Wave and operation indices are
// zero based like the JSON output; optional columns are left empty.
func WriteCSV(w io.Writer, rep report.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, a := range rep.Assignments {
		rec := []string{
			strconv.Itoa(a.WaveIndex),
			strconv.Itoa(a.OpIndex),
			a.Type.String(),
			strconv.FormatBool(a.Success),
			optInt(a.LauncherRow),
			optInt(a.LauncherCol),
			optInt(a.FireTime),
			strconv.Itoa(a.AbsoluteTime),
			a.Reason,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText prints the assignments, the next-available list and the summary
// as aligned columns.
func WriteText(w io.Writer, rep report.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OP\tTYPE\tTIME\tRESULT\tLAUNCHER\tFIRE")
	for _, a := range rep.Assignments {
		result, launcher, fire := "ok", "-", "-"
		if !a.Success {
			result = "failed: " + a.Reason
		}
		if a.LauncherRow != nil {
			launcher = fmt.Sprintf("%d-%d", *a.LauncherRow, *a.LauncherCol)
		}
		if a.FireTime != nil {
			fire = strconv.Itoa(*a.FireTime)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n", a.Ref(), a.Type, a.AbsoluteTime, result, launcher, fire)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprint(w, "next available:")
	for _, na := range rep.NextAvailable {
		fmt.Fprintf(w, " %s@%d", na.Position, na.Time)
	}
	fmt.Fprintln(w)

	s := rep.Summary
	bound := strconv.FormatFloat(s.UpperBound, 'f', 2, 64)
	if !s.BoundExact {
		bound = "<= " + bound
	}
	_, err := fmt.Fprintf(w, "fires %d ok / %d failed, plants %d / %d, removes %d / %d, prefix %d, bound %s\n",
		s.FiresOK, s.FiresFailed, s.PlantsOK, s.PlantsFailed, s.RemovesOK, s.RemovesFailed, s.Prefix, bound)
	return err
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
