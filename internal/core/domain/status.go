package domain

// Status is the daemon identity and configuration snapshot returned by GET /status.
type Status struct {
	Address              *string       `json:"address,omitempty"`
	PublicIdentity       *string       `json:"publicIdentity,omitempty"`
	Online               *bool         `json:"online,omitempty"`
	TCPFallbackActive    *bool         `json:"tcpFallbackActive,omitempty"`
	Version              *string       `json:"version,omitempty"`
	VersionMajor         *int          `json:"versionMajor,omitempty"`
	VersionMinor         *int          `json:"versionMinor,omitempty"`
	VersionRev           *int          `json:"versionRev,omitempty"`
	VersionBuild         *int          `json:"versionBuild,omitempty"`
	Clock                *int64        `json:"clock,omitempty"`
	PlanetWorldID        *uint64       `json:"planetWorldId,omitempty"`
	PlanetWorldTimestamp *int64        `json:"planetWorldTimestamp,omitempty"`
	Config               *StatusConfig `json:"config,omitempty"`
}

// StatusConfig is the nested "config" object of Status.
type StatusConfig struct {
	Settings *StatusSettings `json:"settings,omitempty"`
}

// StatusSettings holds the daemon's local.conf settings.
type StatusSettings struct {
	PrimaryPort           *int    `json:"primaryPort,omitempty"`
	SecondaryPort         *int    `json:"secondaryPort,omitempty"`
	TertiaryPort          *int    `json:"tertiaryPort,omitempty"`
	PortMappingEnabled    *bool   `json:"portMappingEnabled,omitempty"`
	AllowTCPFallbackRelay *bool   `json:"allowTcpFallbackRelay,omitempty"`
	SoftwareUpdate        *string `json:"softwareUpdate,omitempty"`
}

// NodeAddress returns the node address and whether the daemon reported one.
func (s *Status) NodeAddress() (string, bool) {
	if s == nil || s.Address == nil || *s.Address == "" {
		return "", false
	}
	return *s.Address, true
}

// PrimaryPort returns the primary listening port if present.
func (s *Status) PrimaryPort() (int, bool) {
	if s == nil || s.Config == nil || s.Config.Settings == nil || s.Config.Settings.PrimaryPort == nil {
		return 0, false
	}
	return *s.Config.Settings.PrimaryPort, true
}

// VersionString returns the reported version or "" when absent.
func (s *Status) VersionString() string {
	if s == nil || s.Version == nil {
		return ""
	}
	return *s.Version
}
