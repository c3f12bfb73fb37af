package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.toml")
	body := `
[shock]
part_time_income = 3000
part_time_uses_supplemented_deficit = true
expense_cut_uses_remaining_deficit = true

[resilience]
skill_weight = 10
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, cfg.Shock.PartTimeIncome)
	assert.True(t, cfg.Shock.PartTimeUsesSupplementedDeficit)
	assert.True(t, cfg.Shock.ExpenseCutUsesRemainingDeficit)
	assert.Equal(t, 10.0, cfg.Resilience.SkillWeight)
	assert.Equal(t, 25.0, cfg.Resilience.BufferWeight)
	assert.Equal(t, 0.9, cfg.Stability.Stable)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.toml")
	require.NoError(t, os.WriteFile(path, []byte("[shock\n"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
