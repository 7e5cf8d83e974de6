package winscm

// handleID is an opaque reference to an open SCM or service handle. Zero
// means the slot is empty.
type handleID uintptr

// rawServiceConfig mirrors the fixed-layout header of the
// QUERY_SERVICE_CONFIGW record. The string fields point at NUL-terminated
// wide strings inside the query buffer and are only valid while that buffer
// is alive; SetStartType passes them straight back through
// ChangeServiceConfig so unrelated fields survive a rewrite byte for byte.
type rawServiceConfig struct {
	serviceType      uint32
	startType        uint32
	errorControl     uint32
	binaryPathName   *uint16
	loadOrderGroup   *uint16
	tagID            uint32
	dependencies     *uint16
	serviceStartName *uint16
	displayName      *uint16
}

// system abstracts the Win32 service control surface. Every method returns
// a raw Errno, zero on success; translation into the operation-scoped error
// families happens in the callers. The real implementation binds to
// advapi32 through golang.org/x/sys/windows; unit tests substitute an
// in-memory fake.
type system interface {
	OpenSCManager(access uint32) (handleID, Errno)
	OpenService(scm handleID, name *uint16, access uint32) (handleID, Errno)
	CreateService(scm handleID, name, display *uint16, access, serviceType, startType, errorControl uint32, binaryPath *uint16) (handleID, Errno)
	CloseServiceHandle(h handleID) Errno
	DeleteService(h handleID) Errno
	StartService(h handleID) Errno
	ControlService(h handleID, control uint32) Errno
	QueryServiceStatus(h handleID) (state uint32, e Errno)

	// QueryServiceConfig performs one step of the two-call sizing
	// protocol: with an empty buf it reports the required byte count via
	// needed (failing with ErrnoInsufficientBuffer); with a sized buf it
	// fills cfg from the record written into buf.
	QueryServiceConfig(h handleID, buf []byte, cfg *rawServiceConfig) (needed uint32, e Errno)

	ChangeServiceConfig(h handleID, serviceType, startType, errorControl uint32,
		binaryPath, loadOrderGroup *uint16, tagID *uint32,
		dependencies, startName, password, display *uint16) Errno

	// EnablePrivilege enables the named privilege on the current process
	// token. A partial grant counts as failure.
	EnablePrivilege(name string) Errno
}
