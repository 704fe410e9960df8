package domain

import (
	"context"

	"namematch/internal/core/match"
	"namematch/internal/core/pipeline"
)

// ServicePort defines the service contract for reconcile
type ServicePort interface {
	Reconcile(ctx context.Context, in Upload) (*pipeline.Result, error)
	ReconcileText(ctx context.Context, in TextInput) (*pipeline.Result, error)
	Sample(ctx context.Context, threshold *int, showFiles bool) (*pipeline.Result, error)
	Settings() Settings
}

// Settings is the effective matching configuration, reported by meta
type Settings struct {
	Threshold      int    `json:"threshold"        example:"85"`
	Scorer         string `json:"scorer"           example:"token_sort"`
	Workers        int    `json:"workers"          example:"1"`
	NameColumn     string `json:"name_column"      example:"CustomerName"`
	KeyColumn      string `json:"key_column"       example:"CustomerName"`
	OnePerCustomer bool   `json:"one_per_customer" example:"false"`
	MaxUploadBytes int64  `json:"max_upload_bytes" example:"33554432"`
}

// SortedMatches returns the matches ordered by score then customer name
func SortedMatches(res *pipeline.Result) []match.Result {
	return match.SortByScore(res.Matches)
}
