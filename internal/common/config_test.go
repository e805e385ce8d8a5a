package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
)

// isolateEnv runs the test in an empty directory with the config variables unset.
func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{
		"EDINET_API_KEY",
		"CORPREPORTS_EDINET_BASE_URL",
		"CORPREPORTS_EDINET_TIMEOUT",
		"CORPREPORTS_EDINET_REQUEST_INTERVAL",
		"CORPREPORTS_LOG_LEVEL",
		"CORPREPORTS_LOG_OUTPUT",
		"CORPREPORTS_REPORT_CSS_PATH",
		"CORPREPORTS_REPORT_TOC_SCRIPT_PATH",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestLoadFromFiles_Defaults(t *testing.T) {
	isolateEnv(t)

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, NewDefaultConfig(), config)
	assert.Empty(t, config.Edinet.APIKey)
}

func TestLoadFromFiles_MergesFilesInOrder(t *testing.T) {
	dir := isolateEnv(t)

	base := filepath.Join(dir, "base.toml")
	require.NoError(t, os.WriteFile(base, []byte(`
[edinet]
base_url = "http://localhost:9000"
request_interval = "1s"

[logging]
level = "debug"
`), 0644))

	override := filepath.Join(dir, "override.toml")
	require.NoError(t, os.WriteFile(override, []byte(`
[logging]
level = "error"

[report]
css_path = "/assets/report.css"
`), 0644))

	config, err := LoadFromFiles(base, "", override)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", config.Edinet.BaseURL)
	assert.Equal(t, "1s", config.Edinet.RequestInterval)
	assert.Equal(t, "60s", config.Edinet.Timeout)
	assert.Equal(t, "error", config.Logging.Level)
	assert.Equal(t, "/assets/report.css", config.Report.CSSPath)
	assert.Equal(t, "../../assets/toc.js", config.Report.TOCScriptPath)
}

func TestLoadFromFiles_EnvFileReference(t *testing.T) {
	dir := isolateEnv(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EDINET_API_KEY=from-dotenv\n"), 0644))
	cfgPath := filepath.Join(dir, "corporate-reports.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[edinet]\napi_key = \"{EDINET_API_KEY}\"\n"), 0644))

	config, err := LoadFromFiles(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", config.Edinet.APIKey)
	assert.Equal(t, "from-dotenv", os.Getenv("EDINET_API_KEY"))
}

func TestLoadFromFiles_EnvOverrides(t *testing.T) {
	dir := isolateEnv(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EDINET_API_KEY=from-dotenv\n"), 0644))
	t.Setenv("EDINET_API_KEY", "from-env")
	t.Setenv("CORPREPORTS_EDINET_REQUEST_INTERVAL", "500ms")
	t.Setenv("CORPREPORTS_LOG_OUTPUT", "file, console")
	t.Setenv("CORPREPORTS_REPORT_CSS_PATH", "style.css")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, "from-env", config.Edinet.APIKey, "process env wins over .env")
	assert.Equal(t, "500ms", config.Edinet.RequestInterval)
	assert.Equal(t, []string{"file", "console"}, config.Logging.Output)
	assert.Equal(t, "style.css", config.Report.CSSPath)
}

func TestLoadFromFiles_Errors(t *testing.T) {
	dir := isolateEnv(t)

	_, err := LoadFromFiles(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[edinet\n"), 0644))
	_, err = LoadFromFiles(bad)
	assert.Error(t, err)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 350*time.Millisecond, ParseDuration("350ms", time.Second))
	assert.Equal(t, time.Second, ParseDuration("", time.Second))
	assert.Equal(t, time.Second, ParseDuration("soon", time.Second))
}

func TestLoadFromFiles_LogsUnresolvedReferencesToGlobalLogger(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "corporate-reports.toml")
	require.NoError(t, os.WriteFile(path, []byte("[report]\nanalytics_id = \"{CORPREPORTS_UNSET_ANALYTICS_KEY}\"\n"), 0644))

	correlationID := "config-" + t.Name()
	logger := arbor.NewLogger().WithMemoryWriter(models.WriterConfiguration{}).WithCorrelationId(correlationID)

	loggerMutex.Lock()
	previous := globalLogger
	globalLogger = logger
	loggerMutex.Unlock()
	t.Cleanup(func() {
		loggerMutex.Lock()
		globalLogger = previous
		loggerMutex.Unlock()
	})

	config, err := LoadFromFiles(path)
	require.NoError(t, err)
	assert.Equal(t, "{CORPREPORTS_UNSET_ANALYTICS_KEY}", config.Report.AnalyticsID)

	assert.Eventually(t, func() bool {
		logs, err := logger.GetMemoryLogs(correlationID, arbor.WarnLevel)
		if err != nil {
			return false
		}
		for _, entry := range logs {
			if strings.Contains(entry, "Unresolved key reference") {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)
}
