package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	types "github.com/yungbote/deliverysla-backend/internal/domain"
)

func TestWriteJobs(t *testing.T) {
	next := time.Date(2026, 3, 6, 11, 0, 0, 0, time.UTC)
	jobs := []*types.SchedulerJob{
		{ID: "purge_data", CronSpec: "0 6 * * fri", NextRunTime: &next},
		{ID: "send_mails", CronSpec: "*/5 6-21 * * *"},
	}
	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	var buf bytes.Buffer
	if err := writeJobs(&buf, jobs, loc); err != nil {
		t.Fatalf("writeJobs: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("want=3 lines got=%d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "2026-03-06T06:00:00-05:00") {
		t.Fatalf("next run not rendered in location: %q", lines[1])
	}
	if !strings.HasSuffix(strings.TrimSpace(lines[2]), "-") {
		t.Fatalf("missing next run should render as '-': %q", lines[2])
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "run", "jobs"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("subcommand %s not found: %v", name, err)
		}
	}
	if err := root.Flags().Parse(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if root.RunE == nil {
		t.Fatalf("root must default to serve")
	}
}
