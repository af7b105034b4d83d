package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaultsFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, "llama-3.3-70b-versatile", cfg.ChatModel)
	assert.Equal(t, "nomic-embed-text-v1.5", cfg.EmbedModel)
	assert.Equal(t, "https://www.ncs.gov.in", cfg.BaseOrigin)
	assert.Equal(t, "https://www.ncs.gov.in/Pages/Search.aspx", cfg.SearchURL)
	assert.InDelta(t, 0.5, cfg.SimilarityThreshold, 1e-9)
	assert.Equal(t, 20, cfg.ScrollRounds)
	assert.Equal(t, 2, cfg.CandidateMultiplier)
	assert.Equal(t, 8, cfg.SummarySentences)
	assert.Equal(t, "ncs_job_results.csv", cfg.CSVPath)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		ChatModel:           "mixtral-8x7b",
		BaseOrigin:          "https://staging.ncs.gov.in",
		SimilarityThreshold: 0.7,
		ScrollRounds:        3,
	}
	cfg.ApplyDefaults()

	assert.Equal(t, "mixtral-8x7b", cfg.ChatModel)
	assert.InDelta(t, 0.7, cfg.SimilarityThreshold, 1e-9)
	assert.Equal(t, 3, cfg.ScrollRounds)
	//derived URLs follow the overridden origin
	assert.Equal(t, "https://staging.ncs.gov.in/Pages/Search.aspx", cfg.SearchURL)
	assert.Equal(t, "https://staging.ncs.gov.in/_layouts/15/ncsp/user-management/login.aspx", cfg.LoginURL)
}
