// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package simulation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/danielhkuo/ballotbox/models"
)

const (
	dimensionAge = "age"

	minAge = 18
	maxAge = 120
)

// DefaultBuckets are used for histograms that name none
var DefaultBuckets = []string{"18-24", "25-34", "35-44", "45-64", "65+"}

// The reported budget does not track spending across queries
var remainingBudget = models.PrivacyBudget{Epsilon: 1.0, Delta: 1e-6}

type bucket struct {
	label     string
	low, high int
}

// Query answers an aggregate question about voter ages with Gaussian
// noise of scale sqrt(2 ln(1.25/delta)) / epsilon. The filter is ignored.
func (e *Engine) Query(req models.DPQueryRequest) (models.DPQueryResponse, error) {
	q := req.Query
	if q.Dimension != dimensionAge {
		return models.DPQueryResponse{}, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedDimension, q.Dimension, dimensionAge)
	}

	ages := e.source.VoterAges()
	sigma := GaussianSigma(req.Epsilon, req.Delta)
	if math.IsInf(sigma, 0) || math.IsNaN(sigma) {
		return models.DPQueryResponse{}, fmt.Errorf("%w (epsilon=%g, delta=%g)", ErrUnboundedNoise, req.Epsilon, req.Delta)
	}

	var answer any
	switch q.Type {
	case "count":
		answer = e.noisyCount(len(ages), sigma)
	case "mean":
		answer = e.noisyMean(ages, sigma)
	default:
		labels := q.Buckets
		if len(labels) == 0 {
			labels = DefaultBuckets
		}
		buckets, err := parseBuckets(labels)
		if err != nil {
			return models.DPQueryResponse{}, err
		}
		answer = e.noisyHistogram(ages, buckets, sigma)
	}

	return models.DPQueryResponse{
		Answer:                 answer,
		NoiseMechanism:         "gaussian",
		EpsilonSpent:           req.Epsilon,
		Delta:                  req.Delta,
		RemainingPrivacyBudget: remainingBudget,
		CompositionMethod:      "advanced_composition",
		Simulated:              true,
	}, nil
}

// GaussianSigma is the noise scale for a sensitivity-1 query
func GaussianSigma(epsilon, delta float64) float64 {
	return math.Sqrt(2*math.Log(1.25/delta)) / epsilon
}

func (e *Engine) noisyCount(n int, sigma float64) int {
	return max(0, int(math.Round(float64(n)+e.noise()*sigma)))
}

func (e *Engine) noisyMean(ages []int, sigma float64) float64 {
	if len(ages) == 0 {
		return 0
	}

	sum := 0
	for _, a := range ages {
		sum += a
	}
	n := float64(len(ages))
	sensitivity := float64(maxAge-minAge) / n

	mean := float64(sum)/n + e.noise()*sigma*sensitivity
	return math.Round(mean*100) / 100
}

func (e *Engine) noisyHistogram(ages []int, buckets []bucket, sigma float64) map[string]int {
	out := make(map[string]int, len(buckets))
	for _, b := range buckets {
		n := 0
		for _, a := range ages {
			if a >= b.low && a <= b.high {
				n++
			}
		}
		out[b.label] = e.noisyCount(n, sigma)
	}
	return out
}

// parseBuckets accepts "low-high" and "low+" labels
func parseBuckets(labels []string) ([]bucket, error) {
	out := make([]bucket, 0, len(labels))
	for _, label := range labels {
		b, err := parseBucket(label)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func parseBucket(label string) (bucket, error) {
	s := strings.TrimSpace(label)

	if low, ok := strings.CutSuffix(s, "+"); ok {
		n, err := strconv.Atoi(low)
		if err != nil {
			return bucket{}, fmt.Errorf("%w %q", ErrInvalidBucket, label)
		}
		return bucket{label: label, low: n, high: math.MaxInt}, nil
	}

	lowStr, highStr, found := strings.Cut(s, "-")
	if !found {
		return bucket{}, fmt.Errorf("%w %q", ErrInvalidBucket, label)
	}
	low, err1 := strconv.Atoi(lowStr)
	high, err2 := strconv.Atoi(highStr)
	if err1 != nil || err2 != nil || low > high {
		return bucket{}, fmt.Errorf("%w %q", ErrInvalidBucket, label)
	}
	return bucket{label: label, low: low, high: high}, nil
}
