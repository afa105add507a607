// Package logstats summarises the daily log files written by the server.
package logstats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Govind-619/BooksWishlist/utils"
)

var (
	// "ERROR: 2024/01/02 15:04:05 file.go:12: message"
	linePrefix  = regexp.MustCompile(`^[A-Z]+: \d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} [^ :]+:\d+: `)
	emailRegex  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	numberRegex = regexp.MustCompile(`\b\d+\b`)
	statusRegex = regexp.MustCompile(`Request: (\S+) (\S+) from \S+ - Status: (\d{3})`)
)

// Stats is the summary of one day of logs
type Stats struct {
	Day              time.Time
	TotalErrors      int
	AuthFailures     int
	OwnershipDenials int
	TotalRequests    int
	RequestsByStatus map[int]int
	UserActivities   map[string]int
	ErrorPatterns    map[string]int
}

func newStats(day time.Time) *Stats {
	return &Stats{
		Day:              day,
		RequestsByStatus: make(map[int]int),
		UserActivities:   make(map[string]int),
		ErrorPatterns:    make(map[string]int),
	}
}

// Analyze reads the error and info logs of day from dir. A missing file
// counts as an empty one.
func Analyze(dir string, day time.Time) (*Stats, error) {
	stats := newStats(day)

	if err := scanFile(filepath.Join(dir, utils.LogFileName("error", day)), stats.addErrorLine); err != nil {
		return nil, err
	}
	if err := scanFile(filepath.Join(dir, utils.LogFileName("info", day)), stats.addInfoLine); err != nil {
		return nil, err
	}
	return stats, nil
}

func scanFile(path string, fn func(line string)) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error opening log file %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fn(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading log file %s: %w", path, err)
	}
	return nil
}

// message strips the logger prefix from a line. Continuation lines such as
// stack traces have no prefix and yield "".
func message(line string) string {
	loc := linePrefix.FindStringIndex(line)
	if loc == nil {
		return ""
	}
	return line[loc[1]:]
}

func (s *Stats) addErrorLine(line string) {
	msg := message(line)
	if msg == "" {
		return
	}
	s.TotalErrors++

	switch {
	case strings.HasPrefix(msg, "Authentication failed for"):
		s.AuthFailures++
		if email := emailRegex.FindString(msg); email != "" {
			s.UserActivities[email]++
		}
	case strings.HasPrefix(msg, "Ownership check failed"):
		s.OwnershipDenials++
	}

	s.ErrorPatterns[pattern(msg)]++
}

func (s *Stats) addInfoLine(line string) {
	m := statusRegex.FindStringSubmatch(message(line))
	if m == nil {
		return
	}
	status, err := strconv.Atoi(m[3])
	if err != nil {
		return
	}
	s.TotalRequests++
	s.RequestsByStatus[status]++
}

// pattern groups messages that differ only in emails or numbers
func pattern(msg string) string {
	msg = emailRegex.ReplaceAllString(msg, "<email>")
	return numberRegex.ReplaceAllString(msg, "N")
}

type counted struct {
	key   string
	count int
}

// top returns the limit largest entries, ties broken by key
func top(m map[string]int, limit int) []counted {
	list := make([]counted, 0, len(m))
	for k, v := range m {
		list = append(list, counted{k, v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].key < list[j].key
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list
}

// Print writes a human readable report
func Print(w io.Writer, stats *Stats, limit int) {
	fmt.Fprintln(w, "=== Log Analysis Report ===")
	fmt.Fprintln(w, "Day:", utils.FormatDate(stats.Day))

	fmt.Fprintln(w, "\n1. Requests:")
	fmt.Fprintf(w, "   Total: %d\n", stats.TotalRequests)
	statuses := make([]int, 0, len(stats.RequestsByStatus))
	for status := range stats.RequestsByStatus {
		statuses = append(statuses, status)
	}
	sort.Ints(statuses)
	for _, status := range statuses {
		fmt.Fprintf(w, "   %d: %d\n", status, stats.RequestsByStatus[status])
	}

	fmt.Fprintln(w, "\n2. Access Control:")
	fmt.Fprintf(w, "   Authentication Failures: %d\n", stats.AuthFailures)
	fmt.Fprintf(w, "   Ownership Denials: %d\n", stats.OwnershipDenials)

	fmt.Fprintln(w, "\n3. Error Statistics:")
	fmt.Fprintf(w, "   Total Errors: %d\n", stats.TotalErrors)

	fmt.Fprintln(w, "\n4. Most Failed Logins:")
	for _, c := range top(stats.UserActivities, limit) {
		fmt.Fprintf(w, "   %s: %d failures\n", c.key, c.count)
	}

	fmt.Fprintln(w, "\n5. Most Common Errors:")
	for _, c := range top(stats.ErrorPatterns, limit) {
		fmt.Fprintf(w, "   %s: %d occurrences\n", c.key, c.count)
	}
}
