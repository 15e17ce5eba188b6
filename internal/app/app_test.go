package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/seanankenbruck/ti-bot/internal/config"
	"github.com/seanankenbruck/ti-bot/internal/observability"
	"github.com/seanankenbruck/ti-bot/internal/tables"
	"github.com/seanankenbruck/ti-bot/internal/tables/tablestest"
)

func writeSheet(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
}

// writeFixtureWorkbooks stores the fixture tables under the default workbook names
func writeFixtureWorkbooks(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	rooms := [][]interface{}{{
		tables.ColRoomNumber, tables.ColFloor, tables.ColPurpose, tables.ColPerson,
		tables.ColDepartment, tables.ColDescription, tables.ColPhoto,
	}}
	for _, r := range tablestest.Rooms() {
		rooms = append(rooms, []interface{}{r.Number, r.Floor, r.Purpose, r.Person, r.Department, r.Description, r.Photo})
	}
	writeSheet(t, filepath.Join(dir, tables.DefaultRoomsFile), rooms)

	depts := [][]interface{}{{tables.ColDepartment, tables.ColDescription, tables.ColCareer}}
	for _, d := range tablestest.Departments() {
		depts = append(depts, []interface{}{d.Name, d.Description, d.Career})
	}
	writeSheet(t, filepath.Join(dir, tables.DefaultDepartmentsFile), depts)

	general := [][]interface{}{{tables.ColEmotionIntent, tables.ColExampleQuestion, tables.ColResponse}}
	for _, g := range tablestest.General() {
		if g.Intent == "" && g.Example == "" {
			continue
		}
		general = append(general, []interface{}{g.Intent, g.Example, g.Response})
	}
	writeSheet(t, filepath.Join(dir, tables.DefaultGeneralFile), general)

	return dir
}

func loadConfig(t *testing.T, values map[string]string) *config.Config {
	t.Helper()
	cfg, err := config.NewLoader(config.NewMapProvider(values)).Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestNewWithoutLLM(t *testing.T) {
	cfg := loadConfig(t, map[string]string{
		"DATA_DIR":     writeFixtureWorkbooks(t),
		"LLM_PROVIDER": "none",
	})

	bot, err := New(context.Background(), cfg, observability.NopLogger())
	require.NoError(t, err)
	defer bot.Close()

	assert.Equal(t, 13, bot.Tables.Counts()["rooms"])

	resp := bot.Router.Ask(context.Background(), "What is in room G-20?")
	assert.Equal(t, "room", resp.Intent)
	assert.Equal(t, "Room G-20 is on the ground floor. It is used for WC.", resp.Answer)

	checks := bot.Health.Check(context.Background())
	assert.Contains(t, checks, "tables")
	assert.NotContains(t, checks, "redis")
	assert.NotContains(t, checks, "llm_service")

	assert.NotNil(t, bot.Server().SetupRoutes())
}

func TestNewWithOpenAIAndRedis(t *testing.T) {
	var calls int32
	llmServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "  G-20 is the ground floor restroom.  "}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 20, "completion_tokens": 8, "total_tokens": 28}
		}`))
	}))
	defer llmServer.Close()

	mr := miniredis.RunT(t)

	cfg := loadConfig(t, map[string]string{
		"DATA_DIR":       writeFixtureWorkbooks(t),
		"LLM_PROVIDER":   "openai",
		"OPENAI_API_KEY": "sk-test-0123456789",
		"LLM_BASE_URL":   llmServer.URL + "/v1",
		"REDIS_ADDR":     mr.Addr(),
	})

	bot, err := New(context.Background(), cfg, observability.NopLogger())
	require.NoError(t, err)
	defer bot.Close()

	for i := 0; i < 2; i++ {
		resp := bot.Router.Ask(context.Background(), "What is in room G-20?")
		assert.Equal(t, "G-20 is the ground floor restroom.", resp.Answer)
	}
	// The second answer comes from the cache
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	checks := bot.Health.Check(context.Background())
	require.Contains(t, checks, "redis")
	assert.Equal(t, observability.HealthStatusHealthy, checks["redis"].Status)
	require.Contains(t, checks, "llm_service")
	assert.Equal(t, observability.HealthStatusHealthy, checks["llm_service"].Status)
}

func TestNewFallsBackWhenProviderUnreachable(t *testing.T) {
	cfg := loadConfig(t, map[string]string{
		"DATA_DIR":        writeFixtureWorkbooks(t),
		"LLM_PROVIDER":    "claude",
		"CLAUDE_API_KEY":  "sk-ant-0123456789",
		"LLM_BASE_URL":    "http://127.0.0.1:1",
		"REWRITE_BREAKER": "false",
	})

	bot, err := New(context.Background(), cfg, observability.NopLogger())
	require.NoError(t, err)
	defer bot.Close()

	resp := bot.Router.Ask(context.Background(), "What is in room G-20?")
	assert.Equal(t, "Room G-20 is on the ground floor. It is used for WC.", resp.Answer)
	assert.NotContains(t, bot.Health.Check(context.Background()), "llm_service")
}

func TestNewMissingWorkbooks(t *testing.T) {
	cfg := loadConfig(t, map[string]string{
		"DATA_DIR":     t.TempDir(),
		"LLM_PROVIDER": "none",
	})

	_, err := New(context.Background(), cfg, observability.NopLogger())
	assert.Error(t, err)
}

func TestNewSource(t *testing.T) {
	cfg := loadConfig(t, map[string]string{"LLM_PROVIDER": "none"})

	source, db, err := NewSource(cfg)
	require.NoError(t, err)
	assert.Nil(t, db)
	assert.Equal(t, "xlsx", source.Name())

	cfg.Data.Source = "csv"
	_, _, err = NewSource(cfg)
	assert.Error(t, err)
}

func TestNewCompleter(t *testing.T) {
	c, err := NewCompleter(config.LLMConfig{Provider: config.ProviderClaude, ClaudeAPIKey: "sk-ant-0123456789"})
	require.NoError(t, err)
	assert.Equal(t, "claude", c.Name())

	_, err = NewCompleter(config.LLMConfig{Provider: config.ProviderOpenAI})
	assert.Error(t, err, "missing key")

	_, err = NewCompleter(config.LLMConfig{Provider: config.ProviderNone, OpenAIAPIKey: "sk-0123456789"})
	assert.Error(t, err)
}
