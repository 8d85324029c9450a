package problemgen

import (
	"fmt"
	"strconv"

	"github.com/abhisek/mathdrill/internal/random"
)

// Multipliers run from 1 to TableMultiplierMax inclusive.
const TableMultiplierMax = 10

// GenerateTables draws "table × multiplier" from the selected tables.
func GenerateTables(cfg TablesConfig, src random.Source) (*Question, error) {
	if len(cfg.Selected) == 0 {
		return nil, generationFailure(DomainTables, "no tables selected")
	}

	table := random.Pick(src, cfg.Selected)
	multiplier := random.Between(src, 1, TableMultiplierMax)
	product := table * multiplier

	return &Question{
		Domain:      DomainTables,
		Prompt:      fmt.Sprintf("%d × %d", table, multiplier),
		Answer:      strconv.Itoa(product),
		Kind:        KindNumericExact,
		Explanation: fmt.Sprintf("%d × %d = %d", table, multiplier, product),
	}, nil
}
