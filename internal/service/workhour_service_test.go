package service

import (
	"context"
	"testing"

	"github.com/Leganyst/viewing-platform/internal/apperr"
)

func TestWorkhourUpsert(t *testing.T) {
	f := newFixture()
	svc := NewWorkhourService(f.agents)
	agentUserID, agentID := f.seedAgent("agent@test")

	input := WorkhourInput{
		WeekdayStartTime: "09:00",
		WeekdayEndTime:   "18:00",
		WeekendStartTime: "10:00",
		WeekendEndTime:   "14:00",
	}
	workhour, err := svc.Upsert(context.Background(), agentUserID, input)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if workhour.AgentID != agentID {
		t.Fatalf("workhour bound to wrong agent")
	}
	if f.agents.workhours[agentID] == nil {
		t.Fatalf("workhour not persisted")
	}

	// Повторный вызов перезаписывает окна.
	input.WeekdayEndTime = "17:00"
	if _, err := svc.Upsert(context.Background(), agentUserID, input); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if got := f.agents.workhours[agentID].WeekdayEndTime; got != "17:00" {
		t.Fatalf("expected 17:00, got %s", got)
	}
}

func TestWorkhourUpsert_Validation(t *testing.T) {
	f := newFixture()
	svc := NewWorkhourService(f.agents)
	agentUserID, _ := f.seedAgent("agent@test")

	bad := []WorkhourInput{
		{WeekdayStartTime: "9am", WeekdayEndTime: "18:00", WeekendStartTime: "10:00", WeekendEndTime: "14:00"},
		{WeekdayStartTime: "09:00", WeekdayEndTime: "18:00", WeekendStartTime: "14:00", WeekendEndTime: "10:00"},
		{WeekdayStartTime: "09:00", WeekdayEndTime: "09:00", WeekendStartTime: "10:00", WeekendEndTime: "14:00"},
	}
	for _, input := range bad {
		_, err := svc.Upsert(context.Background(), agentUserID, input)
		expectCode(t, err, apperr.CodeInvalidInput)
	}

	renterID := f.seedUser("renter@test")
	_, err := svc.Upsert(context.Background(), renterID, WorkhourInput{
		WeekdayStartTime: "09:00", WeekdayEndTime: "18:00",
		WeekendStartTime: "10:00", WeekendEndTime: "14:00",
	})
	expectCode(t, err, apperr.CodeAccessDenied)
}

func TestWorkhourGet(t *testing.T) {
	f := newFixture()
	svc := NewWorkhourService(f.agents)
	agentUserID, agentID := f.seedAgent("agent@test")

	_, err := svc.Get(context.Background(), agentUserID)
	expectCode(t, err, apperr.CodeConfigurationMissing)

	f.seedWorkhour(agentID, "09:00", "18:00", "10:00", "14:00")
	workhour, err := svc.Get(context.Background(), agentUserID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if workhour.WeekdayStartTime != "09:00" {
		t.Fatalf("unexpected workhour %+v", workhour)
	}
}
