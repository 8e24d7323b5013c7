package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/lineup/core/algo"
	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/schema"
)

// currentCacheVersion defines the version of the cached solution schema
const currentCacheVersion = 1

// cachedSolve solves m through the solution cache when one is configured.
// The second return value reports a cache hit.
func cachedSolve(mgr contract.CacheManager, m schema.FitnessMatrix) (schema.AssignmentResult, bool, error) {
	var solutions contract.CacheStore
	if mgr != nil {
		solutions = mgr.GetSolutionStore()
	}
	if solutions == nil {
		// Fallback to direct computation
		result, err := algo.SolveAssignment(m)
		return result, false, err
	}

	key, err := matrixCacheKey(m)
	if err != nil {
		// Unencodable matrices (NaN cells) are left to the solver to classify
		result, err := algo.SolveAssignment(m)
		return result, false, err
	}

	// Check for cache hit
	if result, ok := checkCacheHit(solutions, key); ok {
		return result, true, nil
	}

	// Cache miss: compute and store
	result, err := computeAndStore(solutions, key, m)
	return result, false, err
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(solutions contract.CacheStore, key string) (schema.AssignmentResult, bool) {
	data, version, _, err := solutions.Get(key)
	if err != nil || version != currentCacheVersion {
		return schema.AssignmentResult{}, false
	}
	var result schema.AssignmentResult
	if err := json.Unmarshal(data, &result); err != nil {
		return schema.AssignmentResult{}, false
	}
	return result, true
}

// computeAndStore solves the matrix and stores the result in cache
func computeAndStore(solutions contract.CacheStore, key string, m schema.FitnessMatrix) (schema.AssignmentResult, error) {
	result, err := algo.SolveAssignment(m)
	if err != nil {
		return schema.AssignmentResult{}, err
	}

	if data, err := json.Marshal(result); err == nil {
		if err := solutions.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Failed to store solution in cache", err)
		}
	}
	return result, nil
}

// matrixCacheKey hashes the canonical JSON form of the matrix, labels included.
func matrixCacheKey(m schema.FitnessMatrix) (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", sha256.Sum256(data)), nil
}
