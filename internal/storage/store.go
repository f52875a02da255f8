package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/discwalk/internal/walk"
)

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
	Mode      string             `json:"mode"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Region    walk.Region        `json:"region"`
	Radius    float64            `json:"radius"`
	Step      float64            `json:"step"`
	Delta     uint8              `json:"delta"`
	Frames    int                `json:"frames"`
	Renders   int                `json:"renders"`
	Advances  int                `json:"advances"`
	Draws     int                `json:"draws"`
	Output    string             `json:"output,omitempty"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// Point is one rendered tick of a run.
type Point struct {
	Tick  int
	X, Y  float64
	Color walk.RGB
}

// Recorder buffers the rendered trail of a run. It implements driver.Observer.
type Recorder struct {
	Points []Point
	limit  int
}

// NewRecorder keeps at most limit points, dropping the oldest. Zero keeps all.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

func (r *Recorder) OnTick(tick int, s walk.Snapshot) {
	r.Points = append(r.Points, Point{Tick: tick, X: s.X, Y: s.Y, Color: s.Color})
	if r.limit > 0 && len(r.Points) > r.limit {
		r.Points = r.Points[len(r.Points)-r.limit:]
	}
}

func (s *Store) Save(meta RunMetadata, trail []Point) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Mode, meta.Timestamp.UnixNano())
	}
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trail.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"tick", "x", "y", "r", "g", "b"}); err != nil {
		return "", err
	}
	for _, p := range trail {
		row := []string{
			strconv.Itoa(p.Tick),
			strconv.FormatFloat(p.X, 'f', 6, 64),
			strconv.FormatFloat(p.Y, 'f', 6, 64),
			strconv.Itoa(int(p.Color.R)),
			strconv.Itoa(int(p.Color.G)),
			strconv.Itoa(int(p.Color.B)),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns stored runs, oldest first.
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTrail(runID string) ([]Point, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trail.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 6

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Point{}, nil
	}

	points := make([]Point, 0, len(records)-1)
	for i, rec := range records[1:] {
		p, err := parsePoint(rec)
		if err != nil {
			return nil, fmt.Errorf("trail row %d: %w", i+1, err)
		}
		points = append(points, p)
	}
	return points, nil
}

func parsePoint(rec []string) (Point, error) {
	var p Point
	var err error
	if p.Tick, err = strconv.Atoi(rec[0]); err != nil {
		return p, err
	}
	if p.X, err = strconv.ParseFloat(rec[1], 64); err != nil {
		return p, err
	}
	if p.Y, err = strconv.ParseFloat(rec[2], 64); err != nil {
		return p, err
	}
	var ch [3]uint64
	for i := range ch {
		if ch[i], err = strconv.ParseUint(rec[3+i], 10, 8); err != nil {
			return p, err
		}
	}
	p.Color = walk.RGB{R: walk.Channel(ch[0]), G: walk.Channel(ch[1]), B: walk.Channel(ch[2])}
	return p, nil
}

type ExportData struct {
	Meta  RunMetadata   `json:"meta"`
	Trail []ExportPoint `json:"trail"`
}

type ExportPoint struct {
	Tick  int     `json:"tick"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
}

// ExportJSON writes a run and its trail as one JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, trail []Point) error {
	data := ExportData{Meta: meta, Trail: make([]ExportPoint, len(trail))}
	for i, p := range trail {
		data.Trail[i] = ExportPoint{Tick: p.Tick, X: p.X, Y: p.Y, Color: p.Color.String()}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ImportJSON reads a document written by ExportJSON.
func ImportJSON(r io.Reader) (RunMetadata, []Point, error) {
	var data ExportData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return RunMetadata{}, nil, fmt.Errorf("decode export: %w", err)
	}
	trail := make([]Point, len(data.Trail))
	for i, p := range data.Trail {
		c, err := walk.ParseRGB(p.Color)
		if err != nil {
			return RunMetadata{}, nil, fmt.Errorf("trail point %d: %w", i, err)
		}
		trail[i] = Point{Tick: p.Tick, X: p.X, Y: p.Y, Color: c}
	}
	return data.Meta, trail, nil
}

// Channels splits a trail into per-channel series for plotting.
func Channels(trail []Point) (r, g, b []float64) {
	r = make([]float64, len(trail))
	g = make([]float64, len(trail))
	b = make([]float64, len(trail))
	for i, p := range trail {
		r[i], g[i], b[i] = float64(p.Color.R), float64(p.Color.G), float64(p.Color.B)
	}
	return r, g, b
}
