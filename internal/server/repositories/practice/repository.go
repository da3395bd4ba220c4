package practice

import (
	"context"
	"time"
)

type Repository interface {
	Claim(ctx context.Context, deviceHash string) (time.Time, error)
}
