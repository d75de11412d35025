// Package confloader merges layered configuration with koanf.
//
// Layers, lowest priority first:
//
//  1. Values already present in the target struct
//  2. YAML configuration file
//  3. Environment variables (ZTCTL_ prefix)
//  4. Dotted-key overrides, usually from command-line flags
//
// The loader records each merged source so callers can report where
// effective values came from.
package confloader
