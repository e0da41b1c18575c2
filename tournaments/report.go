package tournaments

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer dumps tournament results as CSV files into a timestamped run
// directory, one file for the per-match records and one for the final
// standings.
type Writer struct {
	baseDir string
}

// NewWriter creates the run directory under baseDir.
func NewWriter(baseDir string) (*Writer, error) {
	dir := filepath.Join(baseDir, time.Now().UTC().Format(time.RFC3339))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating report directory: %w", err)
	}
	return &Writer{baseDir: dir}, nil
}

// Dir returns the run directory reports are written into.
func (w *Writer) Dir() string {
	return w.baseDir
}

// WriteMatches writes one row per finished match.
func (w *Writer) WriteMatches(records []MatchRecord) error {
	f, err := os.Create(filepath.Join(w.baseDir, "matches.csv"))
	if err != nil {
		return fmt.Errorf("creating match report: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"round", "seed", "first", "second", "winner", "turns", "replay", "duration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing match report header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Round),
			strconv.FormatUint(r.Seed, 10),
			r.First,
			r.Second,
			r.Winner,
			strconv.Itoa(r.Turns),
			r.Replay,
			r.Elapsed.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing match report row: %w", err)
		}
	}
	return writer.Error()
}

// WriteStandings writes the aggregated result table.
func (w *Writer) WriteStandings(cfg Config, standings Standings) error {
	f, err := os.Create(filepath.Join(w.baseDir, "standings.csv"))
	if err != nil {
		return fmt.Errorf("creating standings report: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"agent", "kind", "wins", "games", "draws"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing standings header: %w", err)
	}
	for _, a := range cfg.Agents {
		row := []string{
			a.Name,
			a.Kind,
			strconv.Itoa(standings.Wins[a.Name]),
			strconv.Itoa(standings.Games),
			strconv.Itoa(standings.Draws),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing standings row: %w", err)
		}
	}
	return writer.Error()
}

// WriteReports writes every report the run produces.
func (w *Writer) WriteReports(cfg Config, standings Standings) error {
	if err := w.WriteMatches(standings.Matches); err != nil {
		return err
	}
	return w.WriteStandings(cfg, standings)
}
