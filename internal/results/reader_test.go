package results

import (
	"path/filepath"
	"strings"
	"testing"

	"tdeo-sim/internal/config"
)

func TestReadCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	for _, p := range []float64{2, 5} {
		if err := Export(path, sampleRows(), config.Default().Params(p)); err != nil {
			t.Fatalf("Export: %v", err)
		}
	}
	recs, err := ReadCSVFile(path)
	if err != nil {
		t.Fatalf("ReadCSVFile: %v", err)
	}
	if len(recs) != 8 {
		t.Fatalf("got %d records", len(recs))
	}
	first := recs[0]
	if first.PowerMW != 2 || first.Node != 1 || first.Sent != 598 || first.Received != 180 || first.SuccessPct != 30.10 || first.DistanceM != 25 || first.Type != TypeSimulated {
		t.Errorf("unexpected first record %+v", first)
	}
	if recs[4].PowerMW != 5 {
		t.Errorf("record 4 power = %v", recs[4].PowerMW)
	}
}

func TestReadCSVLegacyHeader(t *testing.T) {
	in := "Potencia(mW),No,Enviados,Recebidos,Sucesso(%),Distancia(m),Tipo\n" +
		"2,1,598,170,28.43,25,SIMULATED\n" +
		"Potencia(mW),No,Enviados,Recebidos,Sucesso(%),Distancia(m),Tipo\n" +
		"5,1,598,330,55.18,25,SIMULATED\n"
	recs, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(recs) != 2 || recs[1].Received != 330 {
		t.Errorf("unexpected records %+v", recs)
	}
}

func TestReadCSVErrors(t *testing.T) {
	cases := map[string]string{
		"short row":  "2,1,598\n",
		"bad number": "2,x,598,170,28.43,25,SIMULATED\n",
	}
	for name, in := range cases {
		if _, err := ReadCSV(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if _, err := ReadCSVFile(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestGroupRuns(t *testing.T) {
	recs := []Record{
		{PowerMW: 2, Node: 1, Sent: 10, Received: 3},
		{PowerMW: 2, Node: 2, Sent: 10, Received: 2},
		{PowerMW: 2, Node: 1, Sent: 10, Received: 4},
		{PowerMW: 5, Node: 1, Sent: 10, Received: 6},
		{PowerMW: 5, Node: 2, Sent: 0, Received: 0},
	}
	runs := GroupRuns(recs, config.Default().Params(1))
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if len(runs[0].Nodes) != 2 || runs[0].Aggregate.TotalReceived != 5 {
		t.Errorf("run 0 = %+v", runs[0].Aggregate)
	}
	if runs[2].Params.TransmitPowerMW != 5 || runs[2].Aggregate.SuccessRate != 60 {
		t.Errorf("run 2 = %+v", runs[2])
	}
	if runs[0].ID == runs[1].ID {
		t.Errorf("runs share an id")
	}
}

func TestReplayCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	for _, p := range []float64{2, 2, 10} {
		if err := Export(path, sampleRows(), config.Default().Params(p)); err != nil {
			t.Fatalf("Export: %v", err)
		}
	}
	w := &collectWriter{}
	n, err := ReplayCSVFile(path, config.Default().Params(1), w)
	if err != nil {
		t.Fatalf("ReplayCSVFile: %v", err)
	}
	if n != 3 || len(w.runs) != 3 {
		t.Fatalf("replayed %d runs, writer got %d", n, len(w.runs))
	}
	if w.runs[2].Params.TransmitPowerMW != 10 {
		t.Errorf("last run power = %v", w.runs[2].Params.TransmitPowerMW)
	}
	if _, err := ReplayCSVFile(filepath.Join(t.TempDir(), "missing.csv"), config.Default().Params(1), w); err == nil {
		t.Errorf("expected error for missing file")
	}
}
