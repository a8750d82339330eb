package memory

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fullstackquiz/quiz-service/internal/models"
	"github.com/fullstackquiz/quiz-service/internal/validator"
)

// questionFields is the row contract shared by every bank format:
// text;opt1;opt2;opt3;opt4;correctIndex
const questionFields = 6

// Loader builds the in-memory question store from the question banks on
// disk. Load failures degrade the affected topic instead of failing startup:
// a quiz service with fewer topics beats one that will not boot.
type Loader struct {
	dataDir   string
	logger    *slog.Logger
	validator *validator.Validator
}

func NewLoader(dataDir string, logger *slog.Logger, v *validator.Validator) *Loader {
	return &Loader{dataDir: dataDir, logger: logger, validator: v}
}

// LoadStore reads every source the manifest names and returns the completed
// store. The store contains an entry for every manifest topic, possibly empty.
func (l *Loader) LoadStore(manifest *Manifest) *QuestionStore {
	pools := make(map[string][]models.Question, len(manifest.Topics))
	for _, spec := range manifest.Topics {
		key := strings.ToLower(spec.Key)
		pool := pools[key]
		for _, source := range spec.Sources {
			pool = append(pool, l.loadSource(key, source)...)
		}
		pools[key] = pool
		l.logger.Info("Loaded questions for topic", "topic", key, "count", len(pool))
	}
	return NewQuestionStore(pools)
}

func (l *Loader) loadSource(topic string, source SourceSpec) []models.Question {
	switch {
	case source.File != "":
		return l.loadFile(topic, filepath.Join(l.dataDir, source.File), source.Header)
	case source.Dir != "":
		return l.loadDir(topic, filepath.Join(l.dataDir, source.Dir), source.Header)
	default:
		l.logger.Warn("Topic source names neither file nor dir", "topic", topic)
		return nil
	}
}

// loadDir loads every bank in a directory in filename order. A missing
// directory is normal: the conventional layout probes data/{topic}/ whether
// or not it exists.
func (l *Loader) loadDir(topic, dir string, header *bool) []models.Question {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Error("Failed to read question bank directory",
				"topic", topic, "dir", dir, "error", err)
		}
		return nil
	}

	var questions []models.Question
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv", ".xlsx":
			questions = append(questions, l.loadFile(topic, filepath.Join(dir, entry.Name()), header)...)
		}
	}
	return questions
}

func (l *Loader) loadFile(topic, path string, header *bool) []models.Question {
	rows, err := l.readRows(path)
	if err != nil {
		l.logger.Error("Failed to load question bank",
			"topic", topic, "file", path, "error", err)
		return nil
	}

	questions := l.parseRows(topic, path, rows, header)
	l.logger.Info("Loaded question bank",
		"topic", topic, "file", filepath.Base(path), "count", len(questions))
	return questions
}

func (l *Loader) readRows(path string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readExcelRows(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readDelimitedRows(f)
}

func readDelimitedRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1 // row width is checked per row, not by the reader
	reader.LazyQuotes = true
	return reader.ReadAll()
}

// parseRows converts raw rows into validated questions, skipping anything
// malformed. One bad row must not cost the rest of the file.
func (l *Loader) parseRows(topic, path string, rows [][]string, header *bool) []models.Question {
	questions := make([]models.Question, 0, len(rows))
	for i, row := range rows {
		if header != nil {
			if *header && i == 0 {
				continue
			}
		} else if isHeaderRow(row) {
			continue
		}

		q, err := parseQuestionRow(row)
		if err != nil {
			l.logger.Warn("Skipping malformed question row",
				"topic", topic, "file", filepath.Base(path), "row", i+1, "error", err)
			continue
		}
		if err := l.validator.ValidateStruct(q); err != nil {
			l.logger.Warn("Skipping invalid question row",
				"topic", topic, "file", filepath.Base(path), "row", i+1, "error", err)
			continue
		}
		questions = append(questions, q)
	}
	return questions
}

func parseQuestionRow(row []string) (models.Question, error) {
	if len(row) < questionFields {
		return models.Question{}, fmt.Errorf("expected %d fields, got %d", questionFields, len(row))
	}

	correctIndex, err := strconv.Atoi(strings.TrimSpace(row[5]))
	if err != nil {
		return models.Question{}, fmt.Errorf("correct index %q is not a number", row[5])
	}

	return models.Question{
		Text:         row[0],
		Options:      []string{row[1], row[2], row[3], row[4]},
		CorrectIndex: correctIndex,
	}, nil
}

// isHeaderRow sniffs rows that look like a header instead of data. The banks
// are hand-edited and may or may not carry one; the markers cover the English
// and Polish headers seen in existing banks. An explicit header flag in the
// manifest bypasses this heuristic entirely.
func isHeaderRow(row []string) bool {
	if len(row) < questionFields {
		return false
	}
	first := strings.ToLower(row[0])
	last := strings.ToLower(row[5])
	return strings.Contains(first, "question") ||
		strings.Contains(first, "pytanie") ||
		strings.Contains(last, "correct") ||
		strings.Contains(last, "index") ||
		strings.Contains(last, "indeks")
}
