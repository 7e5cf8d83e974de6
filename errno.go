package winscm

// Errno is a Win32 system error code as reported by GetLastError. The zero
// value means success. Errors raised inside the façade itself, before any
// system call is made, carry code 0 together with a descriptive context.
type Errno uint32

// Win32 error codes recognized by the error-mapping tables. The values are
// part of the OS ABI and never change.
const (
	ErrnoFileNotFound             Errno = 2
	ErrnoPathNotFound             Errno = 3
	ErrnoAccessDenied             Errno = 5
	ErrnoInvalidHandle            Errno = 6
	ErrnoInvalidParameter         Errno = 87
	ErrnoCallNotImplemented       Errno = 120
	ErrnoInsufficientBuffer       Errno = 122
	ErrnoInvalidName              Errno = 123
	ErrnoServiceRequestTimeout    Errno = 1053
	ErrnoServiceNoThread          Errno = 1054
	ErrnoServiceDatabaseLocked    Errno = 1055
	ErrnoServiceAlreadyRunning    Errno = 1056
	ErrnoInvalidServiceAccount    Errno = 1057
	ErrnoServiceDisabled          Errno = 1058
	ErrnoCircularDependency       Errno = 1059
	ErrnoServiceDoesNotExist      Errno = 1060
	ErrnoServiceNotActive         Errno = 1062
	ErrnoDatabaseDoesNotExist     Errno = 1065
	ErrnoServiceDependencyFail    Errno = 1068
	ErrnoServiceLogonFailed       Errno = 1069
	ErrnoServiceMarkedForDelete   Errno = 1072
	ErrnoServiceExists            Errno = 1073
	ErrnoServiceDependencyDeleted Errno = 1075
	ErrnoDuplicateServiceName     Errno = 1078
)
