package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Replay(ctx context.Context, in Request) (Result, error)
	ReplaySource(ctx context.Context, station, ref string) (Result, error)
	Stations() []StationInfo
}
