package results

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"

	"tdeo-sim/internal/delivery"
)

// DefaultGreptimeTable receives one row per node and run.
const DefaultGreptimeTable = "delivery_results"

const defaultGreptimePort = 4001

type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes node results to GreptimeDB via the ingester client.
type GreptimeDBWriter struct {
	client  greptimeClient
	table   string
	timeout time.Duration
}

// NewGreptimeDBWriter connects to endpoint (host or host:port).
func NewGreptimeDBWriter(endpoint, database, tableName string) (*GreptimeDBWriter, error) {
	host, port, err := splitEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	if database == "" {
		database = "public"
	}
	if tableName == "" {
		tableName = DefaultGreptimeTable
	}
	cfg := greptime.NewConfig(host).WithPort(port).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("greptime client: %w", err)
	}
	return &GreptimeDBWriter{client: client, table: tableName, timeout: 10 * time.Second}, nil
}

func splitEndpoint(endpoint string) (string, int, error) {
	if endpoint == "" {
		return "", 0, errors.New("empty GreptimeDB endpoint")
	}
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		return endpoint, defaultGreptimePort, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid GreptimeDB port %q: %w", portStr, err)
	}
	return host, port, nil
}

// WriteRun inserts one row per node, tagged with the run id and node index.
func (w *GreptimeDBWriter) WriteRun(run *delivery.Run) error {
	if len(run.Nodes) == 0 {
		return nil
	}
	tbl, err := w.buildTable(run)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	if _, err := w.client.Write(ctx, tbl); err != nil {
		slog.Error("greptime write failed", "table", w.table, "run_id", run.ID, "err", err)
		return err
	}
	slog.Debug("greptime wrote rows", "table", w.table, "run_id", run.ID, "rows", len(run.Nodes))
	return nil
}

func (w *GreptimeDBWriter) buildTable(run *delivery.Run) (*table.Table, error) {
	tbl, err := table.New(w.table)
	if err != nil {
		return nil, err
	}
	err = errors.Join(
		tbl.AddTagColumn("run_id", types.STRING),
		tbl.AddTagColumn("node", types.INT64),
		tbl.AddFieldColumn("power_mw", types.FLOAT64),
		tbl.AddFieldColumn("sent", types.INT64),
		tbl.AddFieldColumn("received", types.INT64),
		tbl.AddFieldColumn("success_pct", types.FLOAT64),
		tbl.AddFieldColumn("target_pct", types.FLOAT64),
		tbl.AddFieldColumn("distance_m", types.FLOAT64),
		tbl.AddFieldColumn("type", types.STRING),
		tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND),
	)
	if err != nil {
		return nil, err
	}
	for _, n := range run.Nodes {
		if err := tbl.AddRow(
			run.ID,
			int64(n.Node),
			run.Params.TransmitPowerMW,
			int64(n.Sent),
			int64(n.Received),
			n.SuccessRate,
			n.TargetRate,
			n.DistanceM,
			TypeSimulated,
			run.Timestamp,
		); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}
