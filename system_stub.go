//go:build !windows

package winscm

// stubSystem stands in on platforms without a Service Control Manager.
// Every call fails with ERROR_CALL_NOT_IMPLEMENTED, which the error
// families surface as Unknown with code 120.
type stubSystem struct{}

func newSystem() system { return stubSystem{} }

func (stubSystem) OpenSCManager(uint32) (handleID, Errno) {
	return 0, ErrnoCallNotImplemented
}

func (stubSystem) OpenService(handleID, *uint16, uint32) (handleID, Errno) {
	return 0, ErrnoCallNotImplemented
}

func (stubSystem) CreateService(handleID, *uint16, *uint16, uint32, uint32, uint32, uint32, *uint16) (handleID, Errno) {
	return 0, ErrnoCallNotImplemented
}

func (stubSystem) CloseServiceHandle(handleID) Errno { return ErrnoCallNotImplemented }

func (stubSystem) DeleteService(handleID) Errno { return ErrnoCallNotImplemented }

func (stubSystem) StartService(handleID) Errno { return ErrnoCallNotImplemented }

func (stubSystem) ControlService(handleID, uint32) Errno { return ErrnoCallNotImplemented }

func (stubSystem) QueryServiceStatus(handleID) (uint32, Errno) {
	return 0, ErrnoCallNotImplemented
}

func (stubSystem) QueryServiceConfig(handleID, []byte, *rawServiceConfig) (uint32, Errno) {
	return 0, ErrnoCallNotImplemented
}

func (stubSystem) ChangeServiceConfig(handleID, uint32, uint32, uint32, *uint16, *uint16, *uint32, *uint16, *uint16, *uint16, *uint16) Errno {
	return ErrnoCallNotImplemented
}

func (stubSystem) EnablePrivilege(string) Errno { return ErrnoCallNotImplemented }
