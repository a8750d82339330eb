package memory

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/fullstackquiz/quiz-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestLoader(t *testing.T, dataDir string) *Loader {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLoader(dataDir, logger, validator.New())
}

func writeBank(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, dir, "spring-questions.csv",
		"What is IoC?;Inversion of Control;Input Output Control;Integrated Object Control;Interface Oriented Configuration;0\n")

	store := newTestLoader(t, dir).LoadStore(&Manifest{Topics: []TopicSpec{
		{Key: "spring", Sources: []SourceSpec{{File: "spring-questions.csv"}}},
	}})

	questions := store.GetByTopic("spring")
	require.Len(t, questions, 1)
	assert.Equal(t, "What is IoC?", questions[0].Text)
	assert.Equal(t, []string{
		"Inversion of Control",
		"Input Output Control",
		"Integrated Object Control",
		"Interface Oriented Configuration",
	}, questions[0].Options)
	assert.Equal(t, 0, questions[0].CorrectIndex)
}

func TestLoadStore_SkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, dir, "spring-questions.csv",
		"broken row;only;four;fields\n"+
			"Q1;a;b;c;d;0\n"+
			"Q2;a;b;c;d;1\n"+
			"Q3;a;b;c;d;2\n"+
			"Q4;a;b;c;d;3\n"+
			"Q5;a;b;c;d;0\n")

	store := newTestLoader(t, dir).LoadStore(&Manifest{Topics: []TopicSpec{
		{Key: "spring", Sources: []SourceSpec{{File: "spring-questions.csv"}}},
	}})

	assert.Equal(t, 5, store.CountByTopic("spring"))
}

func TestLoadStore_SkipsNonNumericAndOutOfRangeIndex(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, dir, "spring-questions.csv",
		"Q1;a;b;c;d;zero\n"+
			"Q2;a;b;c;d;7\n"+
			"Q3;a;b;c;d;3\n")

	store := newTestLoader(t, dir).LoadStore(&Manifest{Topics: []TopicSpec{
		{Key: "spring", Sources: []SourceSpec{{File: "spring-questions.csv"}}},
	}})

	questions := store.GetByTopic("spring")
	require.Len(t, questions, 1)
	assert.Equal(t, "Q3", questions[0].Text)
}

func TestLoadStore_MissingFileDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()

	store := newTestLoader(t, dir).LoadStore(&Manifest{Topics: []TopicSpec{
		{Key: "spring", Sources: []SourceSpec{{File: "nope.csv"}}},
	}})

	assert.Empty(t, store.GetByTopic("spring"))
	assert.Equal(t, []string{"spring"}, store.Topics())
}

func TestLoadStore_ConcatenatesSourcesAndKeepsDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, dir, "spring-questions.csv", "Q1;a;b;c;d;0\n")
	writeBank(t, dir, filepath.Join("java", "extra.csv"), "Q1;a;b;c;d;0\nQ2;a;b;c;d;1\n")

	store := newTestLoader(t, dir).LoadStore(&Manifest{Topics: []TopicSpec{
		{Key: "spring", Sources: []SourceSpec{
			{File: "spring-questions.csv"},
			{Dir: "java"},
		}},
	}})

	questions := store.GetByTopic("spring")
	require.Len(t, questions, 3)
	// duplicates across banks are retained, in source order
	assert.Equal(t, "Q1", questions[0].Text)
	assert.Equal(t, "Q1", questions[1].Text)
	assert.Equal(t, "Q2", questions[2].Text)
}

func TestLoadStore_HeaderFlagOverridesHeuristic(t *testing.T) {
	dir := t.TempDir()
	// First row looks like data but the manifest says it is a header.
	writeBank(t, dir, "flagged.csv", "Q1;a;b;c;d;0\nQ2;a;b;c;d;1\n")
	// First row looks like a header but the manifest says it is data.
	writeBank(t, dir, "unflagged.csv", "Is this a question?;a;b;c;d;0\n")

	always := true
	never := false
	store := newTestLoader(t, dir).LoadStore(&Manifest{Topics: []TopicSpec{
		{Key: "flagged", Sources: []SourceSpec{{File: "flagged.csv", Header: &always}}},
		{Key: "unflagged", Sources: []SourceSpec{{File: "unflagged.csv", Header: &never}}},
	}})

	flagged := store.GetByTopic("flagged")
	require.Len(t, flagged, 1)
	assert.Equal(t, "Q2", flagged[0].Text)

	unflagged := store.GetByTopic("unflagged")
	require.Len(t, unflagged, 1)
	assert.Equal(t, "Is this a question?", unflagged[0].Text)
}

func TestLoadStore_ExcelBank(t *testing.T) {
	dir := t.TempDir()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1",
		&[]interface{}{"Question", "Option 1", "Option 2", "Option 3", "Option 4", "Correct Index"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2",
		&[]interface{}{"What is a goroutine?", "A thread", "A lightweight concurrent function", "A channel", "A mutex", 1}))
	require.NoError(t, f.SaveAs(filepath.Join(dir, "bank.xlsx")))
	require.NoError(t, f.Close())

	store := newTestLoader(t, dir).LoadStore(&Manifest{Topics: []TopicSpec{
		{Key: "go", Sources: []SourceSpec{{File: "bank.xlsx"}}},
	}})

	questions := store.GetByTopic("go")
	require.Len(t, questions, 1)
	assert.Equal(t, "What is a goroutine?", questions[0].Text)
	assert.Equal(t, 1, questions[0].CorrectIndex)
}

func TestIsHeaderRow(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want bool
	}{
		{"english question marker", []string{"Question", "a", "b", "c", "d", "0"}, true},
		{"polish question marker", []string{"Pytanie", "a", "b", "c", "d", "0"}, true},
		{"correct marker in last field", []string{"text", "a", "b", "c", "d", "Correct Index"}, true},
		{"polish index marker", []string{"text", "a", "b", "c", "d", "Indeks"}, true},
		{"plain data row", []string{"What is DI?", "a", "b", "c", "d", "2"}, false},
		{"short row is never a header", []string{"Question", "a"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isHeaderRow(tt.row))
		})
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, dir, "topics.yaml", `topics:
  - key: spring
    sources:
      - file: spring-questions.csv
        header: true
      - dir: java
`)

	m, err := LoadManifest(dir)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Len(t, m.Topics, 1)
	assert.Equal(t, "spring", m.Topics[0].Key)
	require.Len(t, m.Topics[0].Sources, 2)
	require.NotNil(t, m.Topics[0].Sources[0].Header)
	assert.True(t, *m.Topics[0].Sources[0].Header)
	assert.Equal(t, "java", m.Topics[0].Sources[1].Dir)
}

func TestLoadManifest_MissingIsNotAnError(t *testing.T) {
	m, err := LoadManifest(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestDefaultManifest(t *testing.T) {
	m := DefaultManifest([]string{"spring", "angular"})
	require.Len(t, m.Topics, 2)
	assert.Equal(t, "spring-questions.csv", m.Topics[0].Sources[0].File)
	assert.Equal(t, "spring", m.Topics[0].Sources[1].Dir)
	assert.Equal(t, "angular-questions.csv", m.Topics[1].Sources[0].File)
}
