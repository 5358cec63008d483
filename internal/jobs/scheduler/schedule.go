package scheduler

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Cron is a schedule in the three fields the jobs use. Day of month and
// month are always "*".
type Cron struct {
	Minute    string `yaml:"minute"`
	Hour      string `yaml:"hour"`
	DayOfWeek string `yaml:"day_of_week"`
}

func orStar(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "*"
	}
	return s
}

// Spec renders the standard five-field cron expression.
func (c Cron) Spec() string {
	return fmt.Sprintf("%s %s * * %s", orStar(c.Minute), orStar(c.Hour), orStar(c.DayOfWeek))
}

type JobSpec struct {
	ID   string
	Cron Cron
}

const (
	JobSendMails                 = "send_mails"
	JobUpdateSla                 = "update_sla"
	JobUpdateClientSla           = "update_client_sla"
	JobUpdateDeliverableVersions = "update_deliverable_versions"
	JobPurgeData                 = "purge_data"
	JobNotificationsCleanup      = "notifications_cleanup"
)

// DefaultSchedule is the production timetable, in the host's location.
func DefaultSchedule() []JobSpec {
	return []JobSpec{
		{ID: JobSendMails, Cron: Cron{Minute: "*/5", Hour: "6-21", DayOfWeek: "*"}},
		{ID: JobUpdateSla, Cron: Cron{Minute: "0", Hour: "0", DayOfWeek: "*"}},
		{ID: JobUpdateClientSla, Cron: Cron{Minute: "5", Hour: "0", DayOfWeek: "*"}},
		{ID: JobUpdateDeliverableVersions, Cron: Cron{Minute: "15", Hour: "0", DayOfWeek: "*"}},
		{ID: JobPurgeData, Cron: Cron{Minute: "0", Hour: "6", DayOfWeek: "fri"}},
		{ID: JobNotificationsCleanup, Cron: Cron{Minute: "0", Hour: "1", DayOfWeek: "*"}},
	}
}

type overrideFile struct {
	Jobs map[string]Cron `yaml:"jobs"`
}

// LoadSchedule returns DefaultSchedule with the overrides from a YAML file
// applied. An empty path returns the defaults. Fields left empty in the file
// keep their default value; unknown job ids are an error.
//
//	jobs:
//	  send_mails:
//	    minute: "*/10"
func LoadSchedule(path string) ([]JobSpec, error) {
	specs := DefaultSchedule()
	if strings.TrimSpace(path) == "" {
		return specs, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule file: %w", err)
	}
	var f overrideFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse schedule file: %w", err)
	}
	return applyOverrides(specs, f.Jobs)
}

func applyOverrides(specs []JobSpec, overrides map[string]Cron) ([]JobSpec, error) {
	idx := make(map[string]int, len(specs))
	for i, s := range specs {
		idx[s.ID] = i
	}
	for id, o := range overrides {
		i, ok := idx[id]
		if !ok {
			return nil, fmt.Errorf("schedule file: unknown job %q", id)
		}
		c := &specs[i].Cron
		if v := strings.TrimSpace(o.Minute); v != "" {
			c.Minute = v
		}
		if v := strings.TrimSpace(o.Hour); v != "" {
			c.Hour = v
		}
		if v := strings.TrimSpace(o.DayOfWeek); v != "" {
			c.DayOfWeek = v
		}
	}
	return specs, nil
}
