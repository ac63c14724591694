package dto

import "time"

type ScriptResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ScriptRunResponse struct {
	Name            string    `json:"name"`
	Command         string    `json:"command"`
	ExitCode        int       `json:"exit_code"`
	Stdout          string    `json:"stdout"`
	Stderr          string    `json:"stderr"`
	StdoutTruncated bool      `json:"stdout_truncated"`
	StderrTruncated bool      `json:"stderr_truncated"`
	TimedOut        bool      `json:"timed_out"`
	StartedAt       time.Time `json:"started_at"`
	DurationMS      int64     `json:"duration_ms"`
}
