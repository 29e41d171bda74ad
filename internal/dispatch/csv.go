// internal/dispatch/csv.go
package dispatch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"autoremind-core/internal/models"
)

// LoadMessageRequests parses a batch input file. The header row must name
// email, assignment and message_requests columns (case-insensitive); extra
// columns such as name or sid are tolerated.
func LoadMessageRequests(path string) ([]models.MessageRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch file: %w", err)
	}
	defer f.Close()

	return ParseMessageRequests(f)
}

// ParseMessageRequests reads CSV rows from r into message requests,
// preserving file order.
func ParseMessageRequests(r io.Reader) ([]models.MessageRequest, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("batch file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"email", "assignment", "message_requests"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("batch file missing required column %q", required)
		}
	}

	var requests []models.MessageRequest
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(requests)+2, err)
		}

		req := models.MessageRequest{
			Email:      field(record, cols, "email"),
			Phone:      field(record, cols, "phone"),
			Assignment: field(record, cols, "assignment"),
			Body:       field(record, cols, "message_requests"),
			Name:       field(record, cols, "name"),
			SID:        field(record, cols, "sid"),
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
