package winscm

// ServiceType identifies the kind of service registered with the SCM. The
// numeric values match the Win32 SERVICE_* type flags bit for bit.
type ServiceType uint32

const (
	// KernelDriver is a driver loaded into the kernel.
	KernelDriver ServiceType = 0x00000001
	// FileSystemDriver is a file system driver.
	FileSystemDriver ServiceType = 0x00000002
	// Adapter is a service for a hardware adapter.
	Adapter ServiceType = 0x00000004
	// RecognizerDriver is a file system recognizer driver.
	RecognizerDriver ServiceType = 0x00000008
	// Win32OwnProcess is a service running in its own process.
	Win32OwnProcess ServiceType = 0x00000010
	// Win32ShareProcess is a service sharing a process with other services.
	Win32ShareProcess ServiceType = 0x00000020
)

// String returns the string representation of a ServiceType.
func (t ServiceType) String() string {
	switch t {
	case KernelDriver:
		return "KernelDriver"
	case FileSystemDriver:
		return "FileSystemDriver"
	case Adapter:
		return "Adapter"
	case RecognizerDriver:
		return "RecognizerDriver"
	case Win32OwnProcess:
		return "Win32OwnProcess"
	case Win32ShareProcess:
		return "Win32ShareProcess"
	default:
		return "unknown"
	}
}

func serviceTypeFromRaw(value uint32) (ServiceType, *QueryServiceError) {
	switch t := ServiceType(value); t {
	case KernelDriver, FileSystemDriver, Adapter, RecognizerDriver,
		Win32OwnProcess, Win32ShareProcess:
		return t, nil
	default:
		return 0, newQueryServiceError(0, "invalid service type")
	}
}

// ServiceStartType controls when the SCM starts a service. The numeric
// values match the Win32 SERVICE_*_START encodings.
type ServiceStartType uint32

const (
	// BootStart is a driver started by the system loader.
	BootStart ServiceStartType = 0x00000000
	// SystemStart is a driver started during kernel initialization.
	SystemStart ServiceStartType = 0x00000001
	// AutoStart is a service started automatically at boot.
	AutoStart ServiceStartType = 0x00000002
	// DemandStart is a service started on explicit request.
	DemandStart ServiceStartType = 0x00000003
	// Disabled is a service that can no longer be started.
	Disabled ServiceStartType = 0x00000004
)

// String returns the string representation of a ServiceStartType.
func (t ServiceStartType) String() string {
	switch t {
	case BootStart:
		return "BootStart"
	case SystemStart:
		return "SystemStart"
	case AutoStart:
		return "AutoStart"
	case DemandStart:
		return "DemandStart"
	case Disabled:
		return "Disabled"
	default:
		return "unknown"
	}
}

func serviceStartTypeFromRaw(value uint32) (ServiceStartType, *QueryServiceError) {
	switch t := ServiceStartType(value); t {
	case BootStart, SystemStart, AutoStart, DemandStart, Disabled:
		return t, nil
	default:
		return 0, newQueryServiceError(0, "invalid service start type")
	}
}

// ServiceErrorControl tells the system how to react when the service fails
// to start during boot.
type ServiceErrorControl uint32

const (
	// ErrorIgnore logs the failure and continues startup.
	ErrorIgnore ServiceErrorControl = 0x00000000
	// ErrorNormal logs the failure and shows a message box.
	ErrorNormal ServiceErrorControl = 0x00000001
	// ErrorSevere restarts with the last-known-good configuration.
	ErrorSevere ServiceErrorControl = 0x00000002
	// ErrorCritical fails the boot when last-known-good is already active.
	ErrorCritical ServiceErrorControl = 0x00000003
)

// String returns the string representation of a ServiceErrorControl.
func (c ServiceErrorControl) String() string {
	switch c {
	case ErrorIgnore:
		return "Ignore"
	case ErrorNormal:
		return "Normal"
	case ErrorSevere:
		return "Severe"
	case ErrorCritical:
		return "Critical"
	default:
		return "unknown"
	}
}

func serviceErrorControlFromRaw(value uint32) (ServiceErrorControl, *QueryServiceError) {
	switch c := ServiceErrorControl(value); c {
	case ErrorIgnore, ErrorNormal, ErrorSevere, ErrorCritical:
		return c, nil
	default:
		return 0, newQueryServiceError(0, "invalid service error control")
	}
}

// ServiceState is the observed run state of a service. The numeric values
// match the Win32 SERVICE_STATUS dwCurrentState encodings.
type ServiceState uint32

const (
	// StateStopped means the service is not running.
	StateStopped ServiceState = 1
	// StateStartPending means a start command is in flight.
	StateStartPending ServiceState = 2
	// StateStopPending means a stop command is in flight.
	StateStopPending ServiceState = 3
	// StateRunning means the service is running.
	StateRunning ServiceState = 4
	// StateContinuePending means a continue command is in flight.
	StateContinuePending ServiceState = 5
	// StatePausePending means a pause command is in flight.
	StatePausePending ServiceState = 6
	// StatePaused means the service is paused.
	StatePaused ServiceState = 7
)

// String returns the string representation of a ServiceState.
func (s ServiceState) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStartPending:
		return "StartPending"
	case StateStopPending:
		return "StopPending"
	case StateRunning:
		return "Running"
	case StateContinuePending:
		return "ContinuePending"
	case StatePausePending:
		return "PausePending"
	case StatePaused:
		return "Paused"
	default:
		return "unknown"
	}
}

func serviceStateFromRaw(value uint32) (ServiceState, *QueryServiceError) {
	switch s := ServiceState(value); s {
	case StateStopped, StateStartPending, StateStopPending, StateRunning,
		StateContinuePending, StatePausePending, StatePaused:
		return s, nil
	default:
		return 0, newQueryServiceError(0, "invalid service state")
	}
}

// ServiceConfig describes the configurable fields of a service. Fields not
// listed here (load-order group, tag id, dependencies, start account,
// password) are never written by this library and keep whatever value the
// service already has.
type ServiceConfig struct {
	// ServiceName is the short internal identifier of the service.
	ServiceName string

	// DisplayName is the human-readable label shown by management tools.
	DisplayName string

	// BinaryPath is the path to the executable or driver image. It is
	// passed to the SCM verbatim, without validation.
	BinaryPath string

	// ServiceType is the kind of service. Defaults to KernelDriver.
	ServiceType ServiceType

	// StartType controls when the service starts. Defaults to DemandStart.
	StartType ServiceStartType

	// ErrorControl is the boot failure policy. Defaults to ErrorNormal.
	ErrorControl ServiceErrorControl
}

// NewServiceConfig returns a ServiceConfig with the documented defaults
// filled in. The enum zero values collide with meaningful ABI encodings
// (BootStart, ErrorIgnore), so defaults are applied here rather than by the
// zero value.
func NewServiceConfig(serviceName, displayName, binaryPath string) ServiceConfig {
	return ServiceConfig{
		ServiceName:  serviceName,
		DisplayName:  displayName,
		BinaryPath:   binaryPath,
		ServiceType:  KernelDriver,
		StartType:    DemandStart,
		ErrorControl: ErrorNormal,
	}
}

// validServiceName reports whether name is usable as a service identifier:
// non-empty, no path separators, no control characters.
func validServiceName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r == '/' || r == '\\' || r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}
