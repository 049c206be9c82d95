package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jonathan/skillmatch/internal/schemas"
	"github.com/jonathan/skillmatch/internal/types"
)

// readDocument validates path against schemaName and decodes it into dst.
func readDocument(schemaName, path string, dst any) error {
	if path == "" {
		return fmt.Errorf("input file is required")
	}
	if err := schemas.ValidateFile(schemaName, path); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// readCandidates reads a JSON array of candidate profiles, validating each element.
func readCandidates(path string) ([]*types.CandidateProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s must contain a JSON array of candidates: %w", path, err)
	}

	candidates := make([]*types.CandidateProfile, 0, len(raw))
	for i, doc := range raw {
		if err := schemas.Validate(schemas.CandidateProfile, doc); err != nil {
			return nil, fmt.Errorf("%s: candidate %d: %w", path, i, err)
		}
		var c types.CandidateProfile
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, fmt.Errorf("%s: candidate %d: %w", path, i, err)
		}
		candidates = append(candidates, &c)
	}
	return candidates, nil
}

// parseAsOf parses the --as-of flag, defaulting to the current time.
func parseAsOf(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	d, err := types.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of: %w", err)
	}
	return d.Time, nil
}

// writeJSON writes v as indented JSON to the output file, or to w when outPath is empty.
func writeJSON(w io.Writer, outPath string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if outPath == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
