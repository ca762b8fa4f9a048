package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
)

// File is the YAML catalog format.
type File struct {
	Services []ServiceEntry `yaml:"services"`
}

type ServiceEntry struct {
	model.Service `yaml:",inline"`
	Hours         HoursEntry      `yaml:"hours"`
	Blackouts     []BlackoutEntry `yaml:"blackouts"`
}

type HoursEntry struct {
	Timezone            string                    `yaml:"timezone"`
	SlotIntervalMinutes int                       `yaml:"slot_interval_minutes"`
	Weekly              map[string][]model.Window `yaml:"weekly"`
}

type BlackoutEntry struct {
	ResourceID string    `yaml:"resource_id"`
	Start      time.Time `yaml:"start"`
	End        time.Time `yaml:"end"`
	Reason     string    `yaml:"reason"`
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
}

// Static serves a catalog loaded once from YAML.
type Static struct {
	services  map[string]model.Service
	hours     map[string]model.BusinessHours
	blackouts map[string][]model.Blackout
}

func LoadFile(path string) (*Static, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(b)
}

// Parse decodes and validates a YAML catalog.
func Parse(b []byte) (*Static, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	s := &Static{
		services:  make(map[string]model.Service),
		hours:     make(map[string]model.BusinessHours),
		blackouts: make(map[string][]model.Blackout),
	}
	for _, e := range f.Services {
		if e.ID == "" {
			return nil, fmt.Errorf("catalog: service without id")
		}
		if _, dup := s.services[e.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate service %q", e.ID)
		}
		if e.DurationMinutes <= 0 {
			return nil, fmt.Errorf("catalog: service %q needs a positive duration_minutes", e.ID)
		}
		hours, err := e.Hours.businessHours()
		if err != nil {
			return nil, fmt.Errorf("catalog: service %q: %w", e.ID, err)
		}
		s.services[e.ID] = e.Service
		s.hours[e.ID] = hours
		for _, bo := range e.Blackouts {
			if !bo.End.After(bo.Start) {
				return nil, fmt.Errorf("catalog: service %q has an empty blackout", e.ID)
			}
			s.blackouts[e.ID] = append(s.blackouts[e.ID], model.Blackout{
				ServiceID: e.ID, ResourceID: bo.ResourceID, Start: bo.Start.UTC(), End: bo.End.UTC(), Reason: bo.Reason,
			})
		}
	}
	return s, nil
}

func (h HoursEntry) businessHours() (model.BusinessHours, error) {
	out := model.BusinessHours{
		Timezone:            h.Timezone,
		SlotIntervalMinutes: h.SlotIntervalMinutes,
		Weekly:              make(map[time.Weekday][]model.Window, len(h.Weekly)),
	}
	for name, windows := range h.Weekly {
		day, ok := weekdays[strings.ToLower(name)]
		if !ok {
			return model.BusinessHours{}, fmt.Errorf("unknown weekday %q", name)
		}
		out.Weekly[day] = windows
	}
	return out, out.Validate()
}

func (s *Static) GetService(_ context.Context, serviceID string) (model.Service, error) {
	svc, ok := s.services[serviceID]
	if !ok {
		return model.Service{}, model.ErrServiceNotFound
	}
	return svc, nil
}

func (s *Static) GetBusinessHours(_ context.Context, serviceID string) (model.BusinessHours, error) {
	h, ok := s.hours[serviceID]
	if !ok {
		return model.BusinessHours{}, model.ErrServiceNotFound
	}
	return h, nil
}

func (s *Static) ListBlackouts(_ context.Context, serviceID string, from, to time.Time) ([]model.Blackout, error) {
	var out []model.Blackout
	for _, b := range s.blackouts[serviceID] {
		if b.Start.Before(to) && from.Before(b.End) {
			out = append(out, b)
		}
	}
	return out, nil
}

// Services lists every service with its hours and blackouts, for seeding a database.
func (s *Static) Services() []Entry {
	out := make([]Entry, 0, len(s.services))
	for id, svc := range s.services {
		out = append(out, Entry{Service: svc, Hours: s.hours[id], Blackouts: s.blackouts[id]})
	}
	return out
}

// Entry is one service with everything a catalog stores about it.
type Entry struct {
	Service   model.Service
	Hours     model.BusinessHours
	Blackouts []model.Blackout
}
