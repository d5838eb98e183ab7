package jddiff

import (
	"slices"
	"strconv"

	"github.com/spigell/cv-analyzer/internal/api"
)

// RequirementHeader is the first header cell of the matrix.
const RequirementHeader = "Wymaganie"

// Row is one requirement with its presence per job (1 or 0).
type Row struct {
	Requirement string
	Presence    []int
}

// Matrix is the requirement × job presence table.
type Matrix struct {
	Header []string
	Rows   []Row
}

// BuildMatrix derives the matrix from requirements_by_job. Requirements are
// listed in order of first appearance; presence is an exact string match.
// A nil diff yields a nil matrix.
func BuildMatrix(diff *api.Diff) *Matrix {
	if diff == nil || diff.RequirementsByJob == nil {
		return nil
	}

	jobs := diff.RequirementsByJob

	header := make([]string, 0, len(jobs)+1)
	header = append(header, RequirementHeader)
	for _, job := range jobs {
		header = append(header, job.Label)
	}

	seen := make(map[string]struct{})
	requirements := make([]string, 0)
	for _, job := range jobs {
		for _, req := range job.Requirements {
			if _, ok := seen[req]; ok {
				continue
			}
			seen[req] = struct{}{}
			requirements = append(requirements, req)
		}
	}

	rows := make([]Row, 0, len(requirements))
	for _, req := range requirements {
		presence := make([]int, 0, len(jobs))
		for _, job := range jobs {
			if slices.Contains(job.Requirements, req) {
				presence = append(presence, 1)
			} else {
				presence = append(presence, 0)
			}
		}
		rows = append(rows, Row{Requirement: req, Presence: presence})
	}

	return &Matrix{Header: header, Rows: rows}
}

// Records returns the header followed by every row as strings.
func (m *Matrix) Records() [][]string {
	if m == nil {
		return nil
	}

	records := make([][]string, 0, len(m.Rows)+1)
	records = append(records, m.Header)
	for _, row := range m.Rows {
		record := make([]string, 0, len(row.Presence)+1)
		record = append(record, row.Requirement)
		for _, p := range row.Presence {
			record = append(record, strconv.Itoa(p))
		}
		records = append(records, record)
	}
	return records
}
