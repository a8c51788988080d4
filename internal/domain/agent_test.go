package domain

import "testing"

func TestNewAgent(t *testing.T) {
	a := NewAgent("reactor")
	if a.AgentID == "" {
		t.Error("AgentID should be assigned")
	}
	if a.Name != "reactor" {
		t.Errorf("Name = %q, want %q", a.Name, "reactor")
	}
	if a.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if a.TraderID() != a.AgentID {
		t.Errorf("TraderID() = %q, want %q", a.TraderID(), a.AgentID)
	}
}

func TestNewAgent_DistinctIdentity(t *testing.T) {
	a := NewAgent("same")
	b := NewAgent("same")
	if a == b {
		t.Error("two agents must be distinct identities")
	}
	if a.AgentID == b.AgentID {
		t.Errorf("agents share id %q", a.AgentID)
	}
}
