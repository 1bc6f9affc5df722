package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torplabs/torp/pkg/scenario"
	"github.com/torplabs/torp/pkg/scoring"
)

func TestScenarioListItems(t *testing.T) {
	items := scenarioListItems()
	require.Len(t, items, len(scenario.List()))

	e := scoring.NewEngine(scoring.DefaultMarketReference())
	for _, item := range items {
		assert.NotEmpty(t, item.Key)
		assert.NotEmpty(t, item.Name)
		assert.NotEmpty(t, item.Description)

		// every listed key must be runnable as-is
		res, err := scenario.Run(e, item.Key)
		require.NoError(t, err, item.Key)
		assert.Equal(t, item.Key, res.Scenario)
	}
}
