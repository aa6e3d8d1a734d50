package core

import (
	"time"
)

type ScalingRequest struct {
	DesiredCount int `json:"count"`

	// Accepted for future provisioning, not consumed by the scaling decision.
	InstanceType     string `json:"instanceType,omitempty"`
	SubnetID         string `json:"subnetId,omitempty"`
	PlacementGroupID string `json:"placementGroupId,omitempty"`

	DryRun bool `json:"dryRun,omitempty"`
}

// Plan is the outcome of partitioning a fleet snapshot for a desired count.
// ToStart and ToStop are disjoint and ordered by ordinal.
type Plan struct {
	DesiredCount int `json:"desiredCount"`

	ToStart []string `json:"toStart"`
	ToStop  []string `json:"toStop"`

	// Workers with a non-numeric ordinal. They are neither started nor stopped.
	Unranked []string `json:"unranked"`
	// Workers dropped because a later instance carried the same ordinal.
	Shadowed []string `json:"shadowed"`
}

type ScalingResult struct {
	RunID    string         `json:"runId"`
	Provider string         `json:"provider"`
	Request  ScalingRequest `json:"request"`
	Plan     Plan           `json:"plan"`

	StartError string `json:"startError,omitempty"`
	StopError  string `json:"stopError,omitempty"`

	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

func (r ScalingResult) Succeeded() bool {
	return r.StartError == "" && r.StopError == ""
}
