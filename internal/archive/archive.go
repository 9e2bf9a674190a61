package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gocloud.dev/blob"
	"gopkg.in/yaml.v3"
)

// Result describes a completed solve for archival.
type Result struct {
	Message   string
	SourceURL string
	Fragments int
	Probes    int64
	Duration  time.Duration
	SolvedAt  time.Time
}

// manifest is the YAML sidecar stored next to the message.
type manifest struct {
	SourceURL string    `yaml:"source_url"`
	Fragments int       `yaml:"fragments"`
	Probes    int64     `yaml:"probes"`
	Duration  string    `yaml:"duration"`
	SolvedAt  time.Time `yaml:"solved_at"`
}

// manifestSuffix is appended to the message object's name.
const manifestSuffix = ".manifest.yaml"

// Save writes the solved message and its manifest to the bucket.
func Save(ctx context.Context, bucket *blob.Bucket, object string, res Result) error {
	if res.Message == "" {
		return errors.New("archive: refusing to store an empty message")
	}

	if err := bucket.WriteAll(ctx, object, []byte(res.Message), nil); err != nil {
		return fmt.Errorf("write message: %w", err)
	}

	m := manifest{
		SourceURL: res.SourceURL,
		Fragments: res.Fragments,
		Probes:    res.Probes,
		Duration:  res.Duration.String(),
		SolvedAt:  res.SolvedAt,
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := bucket.WriteAll(ctx, object+manifestSuffix, data, nil); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}
