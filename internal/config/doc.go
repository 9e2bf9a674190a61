// Package config defines configuration structures for the decoder CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (DECODER_ prefix)
//   - YAML configuration file
//
// # Structure
//
//	type Config struct {
//	    BaseURL         string
//	    MaxConcurrent   int
//	    Timeout         time.Duration
//	    SampleSize      int
//	    SampleRange     int
//	    GapRange        int
//	    GiveUpThreshold int
//	    Bucket          string
//	    Object          string
//	    Progress        bool
//	    Events          bool
//	}
package config
