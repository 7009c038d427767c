package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	lines := flag.Int("lines", 1000, "Number of lines in the old file")
	changeRate := flag.Float64("change-rate", 0.05, "Fraction of lines rewritten in the new file")
	insertRate := flag.Float64("insert-rate", 0.02, "Fraction of positions gaining an inserted line")
	deleteRate := flag.Float64("delete-rate", 0.02, "Fraction of old lines deleted")
	seed := flag.Int64("seed", 1, "Random seed, for reproducible pairs")
	oldPath := flag.String("old", "old_test.txt", "Old file output path")
	newPath := flag.String("new", "new_test.txt", "New file output path")
	flag.Parse()

	if *lines < 1 {
		fmt.Fprintf(os.Stderr, "lines must be at least 1\n")
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))

	oldLines := generateLines(rng, *lines)
	newLines, changed, inserted, deleted := deriveNewLines(rng, oldLines, *changeRate, *insertRate, *deleteRate)

	oldData := []byte(strings.Join(oldLines, "\n") + "\n")
	newData := []byte(strings.Join(newLines, "\n") + "\n")

	if err := writeFile(*oldPath, oldData); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write old file: %v\n", err)
		os.Exit(1)
	}
	if err := writeFile(*newPath, newData); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write new file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %d lines: %d changed, %d inserted, %d deleted\n",
		len(oldLines), changed, inserted, deleted)
	fmt.Printf("Old: %s (%.2f MB)\n", *oldPath, float64(len(oldData))/(1024*1024))
	fmt.Printf("New: %s (%.2f MB)\n", *newPath, float64(len(newData))/(1024*1024))
}

// generateLines produces numbered prose-like lines. The number prefix
// keeps every line unique so matches in the diff are never accidental
func generateLines(rng *rand.Rand, count int) []string {
	subjects := []string{
		"parser", "cache", "scheduler", "renderer", "index",
		"watcher", "encoder", "resolver", "worker", "session",
	}
	verbs := []string{
		"reads", "writes", "retries", "skips", "flushes",
		"validates", "queues", "merges", "tracks", "resets",
	}
	objects := []string{
		"the request", "each record", "the buffer", "stale entries",
		"its config", "the manifest", "pending jobs", "every chunk",
		"the snapshot", "the result",
	}

	result := make([]string, count)
	for i := range result {
		result[i] = fmt.Sprintf("%04d: the %s %s %s", i+1,
			subjects[rng.Intn(len(subjects))],
			verbs[rng.Intn(len(verbs))],
			objects[rng.Intn(len(objects))])
	}
	return result
}

// deriveNewLines applies random edits to a copy of the old lines
func deriveNewLines(rng *rand.Rand, oldLines []string, changeRate, insertRate, deleteRate float64) (result []string, changed, inserted, deleted int) {
	for _, line := range oldLines {
		roll := rng.Float64()
		switch {
		case roll < deleteRate:
			deleted++
			continue
		case roll < deleteRate+changeRate:
			result = append(result, line+" (revised)")
			changed++
		default:
			result = append(result, line)
		}
		if rng.Float64() < insertRate {
			inserted++
			result = append(result, fmt.Sprintf("insert %04d: freshly added line", inserted))
		}
	}
	return result, changed, inserted, deleted
}

func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
