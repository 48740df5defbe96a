// Package domain holds DTOs for replay http and service contracts
package domain

import "rdtlog/internal/core/replay"

// Stats is what one replay counted
type Stats = replay.Stats

// Request replays a log supplied inline
type Request struct {
	Station string `json:"station" validate:"required,oneof=dcf77 msf npl" example:"dcf77"`
	Log     string `json:"log" validate:"required" example:"00000000000000000010100011011110001110001110101001100110011\n"`
}

// SourceRequest replays a log the server fetches itself
type SourceRequest struct {
	Station string `json:"station" validate:"required,oneof=dcf77 msf npl" example:"msf"`
	Ref     string `json:"ref" validate:"required,url" example:"https://logs.example.org/msf/2024-06-15.log.gz"`
}

// Result is one finished replay
type Result struct {
	RunID   string   `json:"run_id" example:"5b0f9a8e-3f7b-4d55-9d0e-0f2f5d7c1a42"`
	Station string   `json:"station" example:"dcf77"`
	Lines   []string `json:"lines"`
	Stats   Stats    `json:"stats"`
}

// StationInfo describes one station table
type StationInfo struct {
	ID            string `json:"id" example:"dcf77"`
	Name          string `json:"name" example:"DCF77"`
	Encoding      string `json:"encoding" example:"single"`
	NominalLength int    `json:"nominal_length" example:"60"`
	Alphabet      string `json:"alphabet" example:"\n012_"`
}
