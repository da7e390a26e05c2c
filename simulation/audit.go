// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package simulation

import (
	"cmp"
	"encoding/base64"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/token"
)

var defaultStrata = []string{"county_A:0.3", "county_B:0.4", "county_C:0.3"}

// PlanAudit sizes a ballot-polling risk-limiting audit from the reported
// tallies. Nothing is sampled.
func (e *Engine) PlanAudit(req models.AuditPlanRequest) (models.AuditPlanResponse, error) {
	votes := make([]int, len(req.ReportedTallies))
	for i, t := range req.ReportedTallies {
		votes[i] = *t.Votes
	}

	auditID, err := token.PrefixedID("rla", 8)
	if err != nil {
		return models.AuditPlanResponse{}, err
	}
	seed, err := token.GenerateID(16)
	if err != nil {
		return models.AuditPlanResponse{}, err
	}

	plan := strings.Join(append(strata(req.Stratification), "seed:"+seed), ",")

	return models.AuditPlanResponse{
		AuditID:           auditID,
		InitialSampleSize: SampleSize(votes, req.RiskLimitAlpha),
		SamplingPlan:      base64.StdEncoding.EncodeToString([]byte(plan)),
		Test:              "kaplan-markov",
		Status:            "planned",
		Simulated:         true,
	}, nil
}

// SampleSize is ceil(2 ln(1/alpha) / margin^2), where margin is the gap
// between the top two tallies over the total. A zero margin means a full
// hand count.
func SampleSize(votes []int, alpha float64) int {
	total := 0
	for _, v := range votes {
		total += v
	}
	if total == 0 {
		return 0
	}

	sorted := slices.SortedFunc(slices.Values(votes), func(a, b int) int { return cmp.Compare(b, a) })
	runnerUp := 0
	if len(sorted) > 1 {
		runnerUp = sorted[1]
	}

	margin := float64(sorted[0]-runnerUp) / float64(total)
	if margin == 0 {
		return total
	}

	n := int(math.Ceil(2 * math.Log(1/alpha) / (margin * margin)))
	return min(n, total)
}

// strata renders the stratification weights as sorted "name:weight" pairs
func strata(stratification map[string]any) []string {
	if len(stratification) == 0 {
		return slices.Clone(defaultStrata)
	}

	out := make([]string, 0, len(stratification))
	for name, weight := range stratification {
		out = append(out, fmt.Sprintf("%s:%v", name, weight))
	}
	slices.Sort(out)
	return out
}
