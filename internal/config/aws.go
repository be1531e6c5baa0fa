package config

// S3Config controls archival of rendered budget PDFs. When disabled, PDFs
// are only streamed back to the caller.
type S3Config struct {
	Enabled      bool           `mapstructure:"enabled"`
	Region       string         `mapstructure:"region" validate:"required_if=Enabled true"`
	BudgetBucket S3BucketConfig `mapstructure:"budget_bucket"`
}

type S3BucketConfig struct {
	Bucket                string `mapstructure:"bucket"`
	KeyPrefix             string `mapstructure:"key_prefix"`
	PresignExpiryDuration string `mapstructure:"presign_expiry_duration" default:"30m"`
}
