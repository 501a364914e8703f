package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	// Every topic listed in readme.md can be loaded, and every .md file is
	// listed in readme.md.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatalf("failed to glob *.md: %v", err)
	}
	for _, file := range files {
		base := strings.TrimSuffix(filepath.Base(file), ".md")
		if base != Readme && !slices.Contains(topicsInReadme, base) {
			t.Errorf("topic %q is not listed in readme.md", base)
		}
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(all, slices.Sorted(slices.Values(topicsInReadme))) {
		t.Errorf("GetAllTopics() = %v, want %v", all, topicsInReadme)
	}
}

func TestGetTopic(t *testing.T) {
	if _, err := GetTopic("accounting"); err == nil {
		t.Error("GetTopic(accounting) succeeded")
	}
	sync, err := GetTopic("Sync")
	if err != nil || !strings.HasPrefix(sync, "# Sync") {
		t.Errorf("GetTopic(Sync) = %.20q, %v", sync, err)
	}
	all, err := GetTopic("*")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(all, "# Selling") || !strings.Contains(all, "# Storage") || strings.Contains(all, "# sbz") {
		t.Errorf("GetTopic(*) does not hold every topic but the readme")
	}
}
