package qconf

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitranim/qbuild"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), `qbuild.yaml`)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, `question`, cfg.Placeholder)
	assert.Equal(t, qbuild.DefaultSemicolonThreshold, cfg.Sanitizer.SemicolonThreshold)
	assert.Equal(t, `warn`, cfg.Logging.Level)
	assert.Equal(t, `json`, cfg.Logging.Format)
	assert.Equal(t, qbuild.DefaultPatterns, cfg.Sanitizer.Patterns())
}

func TestLoad_defaults(t *testing.T) {
	cfg, err := Load(``)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Placeholder, cfg.Placeholder)
	assert.Equal(t, def.Sanitizer.SemicolonThreshold, cfg.Sanitizer.SemicolonThreshold)
	assert.Empty(t, cfg.Sanitizer.ExtraPatterns)
	assert.Empty(t, cfg.Sanitizer.DisabledDefaults)
	assert.Equal(t, def.Logging, cfg.Logging)
}

func TestLoad_file(t *testing.T) {
	path := writeConfig(t, `
placeholder: dollar
sanitizer:
  semicolon_threshold: 10
  extra_patterns: [secret, hidden]
  disabled_defaults: ["--"]
logging:
  level: debug
  format: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, `dollar`, cfg.Placeholder)
	assert.Equal(t, qbuild.PlaceholderDollar, cfg.PlaceholderStyle())
	assert.Equal(t, 10, cfg.Sanitizer.SemicolonThreshold)
	assert.Equal(t, []string{`secret`, `hidden`}, cfg.Sanitizer.ExtraPatterns)
	assert.Equal(t, []string{`--`}, cfg.Sanitizer.DisabledDefaults)
	assert.Equal(t, `debug`, cfg.Logging.Level)
	assert.Equal(t, `console`, cfg.Logging.Format)

	pats := cfg.Sanitizer.Patterns()
	assert.NotContains(t, pats, `--`)
	assert.Contains(t, pats, `secret`)
	assert.Contains(t, pats, `/*`)
	assert.Len(t, pats, len(qbuild.DefaultPatterns)-1+2)
}

func TestLoad_env_overrides_file(t *testing.T) {
	path := writeConfig(t, `
placeholder: question
sanitizer:
  extra_patterns: [secret]
`)

	t.Setenv(`QBUILD_PLACEHOLDER`, `dollar`)
	t.Setenv(`QBUILD_SANITIZER__SEMICOLON_THRESHOLD`, `5`)
	t.Setenv(`QBUILD_SANITIZER__EXTRA_PATTERNS`, `foo, bar,,`)
	t.Setenv(`QBUILD_LOGGING__LEVEL`, `error`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, `dollar`, cfg.Placeholder)
	assert.Equal(t, 5, cfg.Sanitizer.SemicolonThreshold)
	assert.Equal(t, []string{`foo`, `bar`}, cfg.Sanitizer.ExtraPatterns)
	assert.Equal(t, `error`, cfg.Logging.Level)
	assert.Equal(t, `json`, cfg.Logging.Format)
}

func TestLoad_invalid(t *testing.T) {
	t.Run(`placeholder`, func(t *testing.T) {
		t.Setenv(`QBUILD_PLACEHOLDER`, `inline`)
		_, err := Load(``)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `validation failed`)
	})

	t.Run(`logging format`, func(t *testing.T) {
		_, err := Load(writeConfig(t, "logging:\n  format: xml\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `Format`)
	})

	t.Run(`negative threshold`, func(t *testing.T) {
		_, err := Load(writeConfig(t, "sanitizer:\n  semicolon_threshold: -1\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `SemicolonThreshold`)
	})

	t.Run(`missing file`, func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), `missing.yaml`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `failed to load config file`)
	})
}

func TestConfig_Builder(t *testing.T) {
	cfg := Default()
	cfg.Placeholder = `dollar`

	var buf bytes.Buffer
	text, args, err := cfg.Builder(&buf).
		Select(`id`).
		Table(`blogs`).
		Where(`id`, `=`, qbuild.Int(10)).
		And(`title`, `=`, qbuild.Str(`Hello`)).
		Bind()

	require.NoError(t, err)
	assert.Equal(t, `SELECT id FROM blogs WHERE id = $1 AND title = $2;`, text)
	assert.Equal(t, []any{10, `Hello`}, args)
	assert.Empty(t, buf.String())
}

func TestConfig_Builder_logs_rejections(t *testing.T) {
	cfg := Default()
	cfg.Sanitizer.ExtraPatterns = []string{`secret`}

	var buf bytes.Buffer
	_, err := cfg.Builder(&buf).Select(`Secret_Col`).Table(`blogs`).Finish()

	require.Error(t, err)
	assert.True(t, errors.Is(err, qbuild.ErrRejected))
	assert.Contains(t, buf.String(), `sanitizer rejected candidate`)
	assert.Contains(t, buf.String(), `statement composition failed`)
	assert.Contains(t, buf.String(), `"component":"qbuild"`)
}

func TestConfig_Builder_disabled_defaults(t *testing.T) {
	cfg := Default()

	_, err := cfg.Builder(nil).Select(`a--b`).Table(`t`).Finish()
	require.Error(t, err)

	cfg.Sanitizer.DisabledDefaults = []string{`--`}
	text, err := cfg.Builder(nil).Select(`a--b`).Table(`t`).Finish()
	require.NoError(t, err)
	assert.Equal(t, `SELECT a--b FROM t;`, text)
}
