package migration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatementsAreIdempotent(t *testing.T) {
	assert.Contains(t, createSessionsSQL, "CREATE TABLE IF NOT EXISTS analysis_sessions")
	assert.Contains(t, createPostsSQL, "CREATE TABLE IF NOT EXISTS posts")
	for _, stmt := range indexStatements {
		assert.True(t, strings.Contains(stmt, "IF NOT EXISTS"), stmt)
	}
}

func TestPostsTableCarriesEveryLabelColumn(t *testing.T) {
	for _, col := range []string{
		"trigger_fear", "trigger_anger", "trigger_outrage", "trigger_disgust", "trigger_identity", "trigger_hope",
		"frame_victim_perpetrator", "frame_threat", "frame_conspiracy", "frame_moral", "frame_historical",
		"likes_manual", "views_manual", "curated_rate",
	} {
		assert.Contains(t, createPostsSQL, col)
	}
}

func TestNewRunner(t *testing.T) {
	assert.Equal(t, "1.0.0", NewRunner().Version())
}
