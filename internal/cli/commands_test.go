package cli

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-outbound/internal/usecase"
)

func noDB(context.Context) (*sql.DB, error) {
	return nil, errors.New("database not available in tests")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd("test", noDB)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestScoreCommand(t *testing.T) {
	out, err := execute(t, "--json", "score", "--title", "VP of Sales", "--company-size", "51,200", "--location", "San Francisco")
	require.NoError(t, err)

	var got map[string]int
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 95, got["score"])
}

func TestScoreCommandTable(t *testing.T) {
	out, err := execute(t, "score", "--title", "Engineer")
	require.NoError(t, err)

	assert.Contains(t, out, "SCORE")
	assert.Contains(t, out, "50")
}

func TestCommandsNeedingDatabase(t *testing.T) {
	for _, args := range [][]string{
		{"migrate", "up"},
		{"migrate", "down", "--steps", "2"},
		{"sequence", "run", "--tenant", "t1"},
		{"tenant", "create", "--name", "Acme"},
	} {
		_, err := execute(t, args...)
		assert.ErrorContains(t, err, "database not available", "%v", args)
	}
}

func TestRequiredFlags(t *testing.T) {
	_, err := execute(t, "sequence", "run")
	assert.Error(t, err)

	_, err = execute(t, "tenant", "create")
	assert.Error(t, err)
}

func TestActionRows(t *testing.T) {
	rows := actionRows([]usecase.Action{
		{LeadID: "a", Action: usecase.ActionEmail, Step: 2},
		{LeadID: "b", Action: usecase.ActionDead},
	})
	assert.Equal(t, [][]string{{"a", "EMAIL", "2", ""}, {"b", "DEAD", "", ""}}, rows)
}
