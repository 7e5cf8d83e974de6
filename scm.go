package winscm

import "time"

// Access rights requested when opening handles. Both managers and services
// are opened with full access; narrower grants are not supported.
const (
	scManagerAllAccess uint32 = 0x000F003F
	serviceAllAccess   uint32 = 0x000F01FF
)

// Control codes delivered through ControlService.
const (
	serviceControlStop     uint32 = 0x00000001
	serviceControlPause    uint32 = 0x00000002
	serviceControlContinue uint32 = 0x00000003
)

const (
	// DefaultPollInterval is the delay between state polls in the blocking
	// control operations and in Watch.
	DefaultPollInterval = 100 * time.Millisecond

	// DefaultPrivilege is the process token privilege enabled when a
	// ServiceManager is opened. Loading kernel drivers requires it.
	DefaultPrivilege = "SeLoadDriverPrivilege"
)
