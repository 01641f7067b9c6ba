// Writer implementation printing run summaries to STDOUT
package results

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"tdeo-sim/internal/delivery"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	lowStyle    = cellStyle.Foreground(lipgloss.Color("11"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	totalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// lowMargin is how far, in percentage points, a node may fall below its
// target before its row is highlighted.
const lowMargin = 5.0

// StdoutWriter prints a table per run on a terminal and JSON otherwise.
type StdoutWriter struct {
	out      io.Writer
	colorize bool
}

// NewStdoutWriter creates a StdoutWriter writing to os.Stdout.
func NewStdoutWriter() *StdoutWriter {
	return &StdoutWriter{out: os.Stdout, colorize: term.IsTerminal(int(os.Stdout.Fd()))}
}

// WriteRun prints one run.
func (w *StdoutWriter) WriteRun(run *delivery.Run) error {
	if !w.colorize {
		data, err := json.Marshal(run)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w.out, string(data))
		return err
	}

	rows := make([][]string, 0, len(run.Nodes))
	for _, n := range run.Nodes {
		rows = append(rows, []string{
			strconv.Itoa(n.Node),
			strconv.FormatFloat(n.DistanceM, 'f', -1, 64),
			strconv.Itoa(n.Sent),
			strconv.Itoa(n.Received),
			strconv.FormatFloat(n.TargetRate, 'f', 2, 64),
			strconv.FormatFloat(n.SuccessRate, 'f', 2, 64),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Node", "Distance(m)", "Sent", "Received", "Target(%)", "Success(%)").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(run.Nodes) && run.Nodes[row].SuccessRate < run.Nodes[row].TargetRate-lowMargin {
				return lowStyle
			}
			return cellStyle
		})

	title := titleStyle.Render(fmt.Sprintf("Run %s  power=%s mW", run.ID, strconv.FormatFloat(run.Params.TransmitPowerMW, 'f', -1, 64)))
	total := totalStyle.Render(fmt.Sprintf("Total: %d/%d received, %.2f%% success",
		run.Aggregate.TotalReceived, run.Aggregate.TotalSent, run.Aggregate.SuccessRate))
	_, err := fmt.Fprintln(w.out, lipgloss.JoinVertical(lipgloss.Left, title, t.Render(), total))
	return err
}
