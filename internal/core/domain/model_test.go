package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestStatus_AbsentFieldsStayAbsent(t *testing.T) {
	var s Status
	if err := json.Unmarshal([]byte(`{"address":"a1b2c3d4e5"}`), &s); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	if addr, ok := s.NodeAddress(); !ok || addr != "a1b2c3d4e5" {
		t.Errorf("NodeAddress() = %q, %v", addr, ok)
	}
	if s.Version != nil {
		t.Error("Version should be nil when absent")
	}
	if _, ok := s.PrimaryPort(); ok {
		t.Error("PrimaryPort should be absent")
	}
	if s.VersionString() != "" {
		t.Errorf("VersionString() = %q, want empty", s.VersionString())
	}
}

func TestStatus_PrimaryPort(t *testing.T) {
	var s Status
	body := `{"version":"1.12.2","config":{"settings":{"primaryPort":9993,"portMappingEnabled":true}}}`
	if err := json.Unmarshal([]byte(body), &s); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	port, ok := s.PrimaryPort()
	if !ok || port != 9993 {
		t.Errorf("PrimaryPort() = %d, %v, want 9993, true", port, ok)
	}
	if s.VersionString() != "1.12.2" {
		t.Errorf("VersionString() = %q", s.VersionString())
	}
}

func TestStatus_NilReceiver(t *testing.T) {
	var s *Status
	if _, ok := s.NodeAddress(); ok {
		t.Error("nil status should have no address")
	}
	if _, ok := s.PrimaryPort(); ok {
		t.Error("nil status should have no port")
	}
}

func TestControllerNetwork_NetworkID(t *testing.T) {
	id := "8056c2e21c000001"
	empty := ""

	tests := []struct {
		name   string
		n      *ControllerNetwork
		want   string
		wantOK bool
	}{
		{"nil", nil, "", false},
		{"id", &ControllerNetwork{ID: &id}, id, true},
		{"nwid fallback", &ControllerNetwork{ID: &empty, NWID: &id}, id, true},
		{"none", &ControllerNetwork{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.n.NetworkID()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NetworkID() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestControllerNetwork_KeepsRulesRaw(t *testing.T) {
	body := `{"id":"abc","rules":[{"type":"ACTION_ACCEPT"}],"routes":[{"target":"10.0.0.0/24","via":null}],
		"ipAssignmentPools":[{"ipRangeStart":"10.0.0.1","ipRangeEnd":"10.0.0.254"}],"v6AssignMode":{"6plane":true}}`

	var n ControllerNetwork
	if err := json.Unmarshal([]byte(body), &n); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if len(n.Rules) != 1 || string(n.Rules[0]) != `{"type":"ACTION_ACCEPT"}` {
		t.Errorf("Rules = %s", n.Rules)
	}
	if len(n.Routes) != 1 || n.Routes[0].Via != nil {
		t.Errorf("Routes = %+v", n.Routes)
	}
	if n.V6AssignMode == nil || n.V6AssignMode.SixPlane == nil || !*n.V6AssignMode.SixPlane {
		t.Error("6plane should be decoded")
	}
	if len(n.IPAssignmentPools) != 1 || n.IPAssignmentPools[0].IPRangeEnd != "10.0.0.254" {
		t.Errorf("IPAssignmentPools = %+v", n.IPAssignmentPools)
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"8056c2e21c000001", false},
		{"custom1", false},
		{"", true},
		{"   ", true},
		{"../status", true},
		{"a?b", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateID("network", tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrConfig) {
				t.Errorf("error should be ErrConfig, got %v", err)
			}
		})
	}
}

func TestMember_Helpers(t *testing.T) {
	var m Member
	if err := json.Unmarshal([]byte(`{"address":"deadbeef01","authorized":true}`), &m); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if m.MemberID() != "deadbeef01" {
		t.Errorf("MemberID() = %q", m.MemberID())
	}
	if !m.IsAuthorized() {
		t.Error("IsAuthorized() should be true")
	}

	var absent Member
	if absent.IsAuthorized() {
		t.Error("absent flag should read as not authorized")
	}
}

func TestMemberSummary_Listing(t *testing.T) {
	var listing map[string]MemberSummary
	body := `{"bbb":3,"aaa":{"revision":1}}`
	if err := json.Unmarshal([]byte(body), &listing); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	ids := SortedMemberIDs(listing)
	if len(ids) != 2 || ids[0] != "aaa" || ids[1] != "bbb" {
		t.Errorf("SortedMemberIDs() = %v", ids)
	}
	if rev, ok := listing["bbb"].Revision(); !ok || rev != 3 {
		t.Errorf("Revision() = %d, %v", rev, ok)
	}
	if _, ok := listing["aaa"].Revision(); ok {
		t.Error("object summary is not a bare revision")
	}

	out, err := json.Marshal(listing)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(out) != `{"aaa":{"revision":1},"bbb":3}` {
		t.Errorf("Marshal() = %s", out)
	}
}

func TestMemberSummary_DuplicateKeysLastWins(t *testing.T) {
	var listing map[string]MemberSummary
	if err := json.Unmarshal([]byte(`{"aaa":1,"aaa":2}`), &listing); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if len(listing) != 1 {
		t.Fatalf("len = %d, want 1", len(listing))
	}
	if rev, _ := listing["aaa"].Revision(); rev != 2 {
		t.Errorf("revision = %d, want 2 (last wins)", rev)
	}
}

func TestNetworkInfo_AuthorizedCount(t *testing.T) {
	yes, no := true, false
	info := &NetworkInfo{Members: []*Member{{Authorized: &yes}, {Authorized: &no}, {}}}
	if got := info.AuthorizedCount(); got != 1 {
		t.Errorf("AuthorizedCount() = %d, want 1", got)
	}
}
