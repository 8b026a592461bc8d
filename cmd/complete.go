package cmd

import (
	"github.com/etnz/fifotax/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete answers the shell completion request of the current process, if
// any, and exits. It returns immediately otherwise.
//
// Install the completion with `COMP_INSTALL=1 cgt`.
func Complete(name string) {
	completion().Complete(name)
}

func completion() *complete.Command {
	ledgers := predict.Files("*.jsonl")
	topics, _ := docs.Topics()
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config":    predict.Files("*.toml"),
			"log-level": predict.Set{"debug", "info", "warn", "error"},
			"raw":       predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"gains": {
				Flags: map[string]complete.Predictor{
					"y":       predict.Something,
					"details": predict.Nothing,
				},
				Args: ledgers,
			},
			"lots": {
				Flags: map[string]complete.Predictor{
					"a":   predict.Something,
					"all": predict.Nothing,
				},
				Args: ledgers,
			},
			"years": {Args: ledgers},
			"state": {
				Flags: map[string]complete.Predictor{
					"q": predict.Set{"$.currentBalances", "$.fiscalYears", "$.lots", "$.taxYearSummaries", "$.transactions", "$.warnings"},
				},
				Args: ledgers,
			},
			"check": {Args: ledgers},
			"fmt": {
				Flags: map[string]complete.Predictor{"n": predict.Nothing},
				Args:  ledgers,
			},
			"topic":    {Args: predict.Set(topics)},
			"help":     {},
			"commands": {},
			"flags":    {},
		},
	}
}
