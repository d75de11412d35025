package domain

import (
	"encoding/json"
	"strings"
)

// GeneratedIDSuffix is appended to the controller address to ask the daemon
// to pick the remaining network id digits.
const GeneratedIDSuffix = "______"

// ControllerNetwork is a controller-managed network configuration.
type ControllerNetwork struct {
	ID                *string            `json:"id,omitempty"`
	NWID              *string            `json:"nwid,omitempty"`
	ObjType           *string            `json:"objtype,omitempty"`
	Name              *string            `json:"name,omitempty"`
	Private           *bool              `json:"private,omitempty"`
	CreationTime      *int64             `json:"creationTime,omitempty"`
	Revision          *int64             `json:"revision,omitempty"`
	MTU               *int               `json:"mtu,omitempty"`
	MulticastLimit    *int               `json:"multicastLimit,omitempty"`
	EnableBroadcast   *bool              `json:"enableBroadcast,omitempty"`
	RemoteTraceLevel  *int               `json:"remoteTraceLevel,omitempty"`
	RemoteTraceTarget *string            `json:"remoteTraceTarget,omitempty"`
	V4AssignMode      *V4AssignMode      `json:"v4AssignMode,omitempty"`
	V6AssignMode      *V6AssignMode      `json:"v6AssignMode,omitempty"`
	IPAssignmentPools []IPAssignmentPool `json:"ipAssignmentPools,omitempty"`
	Routes            []Route            `json:"routes,omitempty"`

	// Rules, tags and capabilities are interpreted by the daemon's rule engine.
	Rules        []json.RawMessage `json:"rules,omitempty"`
	Tags         []json.RawMessage `json:"tags,omitempty"`
	Capabilities []json.RawMessage `json:"capabilities,omitempty"`
}

// V4AssignMode controls IPv4 auto-assignment.
type V4AssignMode struct {
	ZT *bool `json:"zt,omitempty"`
}

// V6AssignMode controls IPv6 auto-assignment.
type V6AssignMode struct {
	ZT       *bool `json:"zt,omitempty"`
	SixPlane *bool `json:"6plane,omitempty"`
	RFC4193  *bool `json:"rfc4193,omitempty"`
}

// IPAssignmentPool is an inclusive range of assignable addresses.
type IPAssignmentPool struct {
	IPRangeStart string `json:"ipRangeStart"`
	IPRangeEnd   string `json:"ipRangeEnd"`
}

// Route is a managed route pushed to members.
type Route struct {
	Target string  `json:"target"`
	Via    *string `json:"via,omitempty"`
}

// NetworkID returns the network identifier, preferring "id" over "nwid".
func (n *ControllerNetwork) NetworkID() (string, bool) {
	if n == nil {
		return "", false
	}
	if n.ID != nil && *n.ID != "" {
		return *n.ID, true
	}
	if n.NWID != nil && *n.NWID != "" {
		return *n.NWID, true
	}
	return "", false
}

// DisplayName returns the network name or "" when unnamed.
func (n *ControllerNetwork) DisplayName() string {
	if n == nil || n.Name == nil {
		return ""
	}
	return *n.Name
}

// ValidateID rejects identifiers that are empty or would escape their path segment.
func ValidateID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrConfig.WithDetailsf("%s id must not be empty", kind)
	}
	if strings.ContainsAny(id, "/?#") {
		return ErrConfig.WithDetailsf("%s id %q contains invalid characters", kind, id)
	}
	return nil
}
