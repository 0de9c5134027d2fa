package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// migrationFiles lists <dir>/<driver>/*.sql in name order.
func migrationFiles(dir, driver string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, driver, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to list migration files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func splitDDLStatements(content string) []string {
	// Remove comments and empty lines
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}
