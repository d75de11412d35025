package domain

import (
	"encoding/json"
	"sort"
)

// Member is a peer node's membership record within a network.
type Member struct {
	ID                   *string  `json:"id,omitempty"`
	Address              *string  `json:"address,omitempty"`
	NWID                 *string  `json:"nwid,omitempty"`
	ObjType              *string  `json:"objtype,omitempty"`
	Authorized           *bool    `json:"authorized,omitempty"`
	ActiveBridge         *bool    `json:"activeBridge,omitempty"`
	NoAutoAssignIPs      *bool    `json:"noAutoAssignIps,omitempty"`
	IPAssignments        []string `json:"ipAssignments,omitempty"`
	Revision             *int64   `json:"revision,omitempty"`
	CreationTime         *int64   `json:"creationTime,omitempty"`
	LastAuthorizedTime   *int64   `json:"lastAuthorizedTime,omitempty"`
	LastDeauthorizedTime *int64   `json:"lastDeauthorizedTime,omitempty"`
	VMajor               *int     `json:"vMajor,omitempty"`
	VMinor               *int     `json:"vMinor,omitempty"`
	VRev                 *int     `json:"vRev,omitempty"`
	VProto               *int     `json:"vProto,omitempty"`
}

// MemberID returns the member id, falling back to the node address.
func (m *Member) MemberID() string {
	if m == nil {
		return ""
	}
	if m.ID != nil && *m.ID != "" {
		return *m.ID
	}
	if m.Address != nil {
		return *m.Address
	}
	return ""
}

// IsAuthorized reports the authorization flag; absent means not authorized.
func (m *Member) IsAuthorized() bool {
	return m != nil && m.Authorized != nil && *m.Authorized
}

// MemberSummary is the value side of a member listing. Depending on the daemon
// version it is a bare revision number or a small object; both are kept raw.
type MemberSummary json.RawMessage

// MarshalJSON implements json.Marshaler.
func (s MemberSummary) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return []byte(s), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *MemberSummary) UnmarshalJSON(data []byte) error {
	*s = append((*s)[:0], data...)
	return nil
}

// Revision returns the summary as a revision number when it is one.
func (s MemberSummary) Revision() (int64, bool) {
	var rev int64
	if err := json.Unmarshal([]byte(s), &rev); err != nil {
		return 0, false
	}
	return rev, true
}

// SortedMemberIDs returns the listing keys in ascending order.
func SortedMemberIDs(members map[string]MemberSummary) []string {
	ids := make([]string, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NetworkInfo is a network together with its hydrated members.
type NetworkInfo struct {
	Network *ControllerNetwork `json:"network"`
	Members []*Member          `json:"members"`
}

// AuthorizedCount returns how many members are authorized.
func (n *NetworkInfo) AuthorizedCount() int {
	count := 0
	for _, m := range n.Members {
		if m.IsAuthorized() {
			count++
		}
	}
	return count
}
