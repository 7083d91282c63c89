package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/reflow/internal/config"
	"github.com/san-kum/reflow/internal/growth"
	"github.com/san-kum/reflow/internal/sim"
)

const (
	metadataFile   = "metadata.json"
	curvesFile     = "curves.csv"
	populationFile = "population.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

// Store keeps one directory per headless run. Runs are output records: the
// curves are exported for inspection, never loaded back into a simulation.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	Config    *config.Config     `json:"config"`
	Final     sim.Stats          `json:"final"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
	Artifacts []string           `json:"artifacts,omitempty"`
}

// Run is everything a headless render produces.
type Run struct {
	Preset     string
	Seed       int64
	Config     *config.Config
	Curves     []growth.Curve
	Population []sim.Stats
	Metrics    map[string]float64
}

// Save writes a new run directory and returns its id.
func (s *Store) Save(run Run) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", run.Preset, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    run.Preset,
		Timestamp: now,
		Seed:      run.Seed,
		Frames:    len(run.Population),
		Config:    run.Config,
		Metrics:   run.Metrics,
	}
	if n := len(run.Population); n > 0 {
		meta.Final = run.Population[n-1]
	}

	if err := s.writeMetadata(runID, &meta); err != nil {
		return "", err
	}
	if err := writeCurves(filepath.Join(runDir, curvesFile), run.Curves); err != nil {
		return "", err
	}
	if err := writePopulation(filepath.Join(runDir, populationFile), run.Population); err != nil {
		return "", err
	}

	return runID, nil
}

// ArtifactPath returns where a named artifact of runID lives.
func (s *Store) ArtifactPath(runID, name string) string {
	return filepath.Join(s.baseDir, runID, name)
}

// AddArtifact records name in the run's metadata.
func (s *Store) AddArtifact(runID, name string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	meta.Artifacts = append(meta.Artifacts, name)
	return s.writeMetadata(runID, meta)
}

func (s *Store) writeMetadata(runID string, meta *RunMetadata) error {
	f, err := os.Create(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeCurves(path string, curves []growth.Curve) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"curve", "segment", "x", "y", "angle", "hue", "active", "reason"}); err != nil {
		return err
	}
	for ci, c := range curves {
		for si, seg := range c.Segments {
			row := []string{
				strconv.Itoa(ci),
				strconv.Itoa(si),
				strconv.FormatFloat(seg.Pos.X, 'f', 6, 64),
				strconv.FormatFloat(seg.Pos.Y, 'f', 6, 64),
				strconv.FormatFloat(seg.Angle, 'f', 6, 64),
				strconv.FormatFloat(c.Hue, 'f', 6, 64),
				strconv.FormatBool(c.Active),
				c.Reason.String(),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func writePopulation(path string, pop []sim.Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"frame", "curves", "active", "segments"}); err != nil {
		return err
	}
	for _, s := range pop {
		row := []string{
			strconv.Itoa(s.Frame),
			strconv.Itoa(s.Curves),
			strconv.Itoa(s.Active),
			strconv.Itoa(s.Segments),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadPopulation reads back the per-frame population table of a run.
func (s *Store) LoadPopulation(runID string) ([]sim.Stats, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, populationFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Stats{}, nil
	}

	out := make([]sim.Stats, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		var vals [4]int
		ok := true
		for i := range vals {
			v, err := strconv.Atoi(record[i])
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		out = append(out, sim.Stats{Frame: vals[0], Curves: vals[1], Active: vals[2], Segments: vals[3]})
	}
	return out, nil
}
