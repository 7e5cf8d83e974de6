//go:build windows

package winscm

import (
	"errors"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// winSystem is the production system implementation backed by advapi32.
type winSystem struct{}

func newSystem() system { return winSystem{} }

// errnoOf extracts the Win32 code from a syscall error. The advapi32
// wrappers always surface syscall.Errno; anything else maps to a sentinel
// the OS never produces.
func errnoOf(err error) Errno {
	if err == nil {
		return 0
	}
	var code syscall.Errno
	if errors.As(err, &code) {
		return Errno(code)
	}
	return Errno(^uint32(0))
}

func (winSystem) OpenSCManager(access uint32) (handleID, Errno) {
	h, err := windows.OpenSCManager(nil, nil, access)
	if err != nil {
		return 0, errnoOf(err)
	}
	return handleID(h), 0
}

func (winSystem) OpenService(scm handleID, name *uint16, access uint32) (handleID, Errno) {
	h, err := windows.OpenService(windows.Handle(scm), name, access)
	if err != nil {
		return 0, errnoOf(err)
	}
	return handleID(h), 0
}

func (winSystem) CreateService(scm handleID, name, display *uint16, access, serviceType, startType, errorControl uint32, binaryPath *uint16) (handleID, Errno) {
	h, err := windows.CreateService(windows.Handle(scm), name, display, access,
		serviceType, startType, errorControl, binaryPath,
		nil, nil, nil, nil, nil)
	if err != nil {
		return 0, errnoOf(err)
	}
	return handleID(h), 0
}

func (winSystem) CloseServiceHandle(h handleID) Errno {
	return errnoOf(windows.CloseServiceHandle(windows.Handle(h)))
}

func (winSystem) DeleteService(h handleID) Errno {
	return errnoOf(windows.DeleteService(windows.Handle(h)))
}

func (winSystem) StartService(h handleID) Errno {
	return errnoOf(windows.StartService(windows.Handle(h), 0, nil))
}

func (winSystem) ControlService(h handleID, control uint32) Errno {
	var status windows.SERVICE_STATUS
	return errnoOf(windows.ControlService(windows.Handle(h), control, &status))
}

func (winSystem) QueryServiceStatus(h handleID) (uint32, Errno) {
	var status windows.SERVICE_STATUS
	if err := windows.QueryServiceStatus(windows.Handle(h), &status); err != nil {
		return 0, errnoOf(err)
	}
	return status.CurrentState, 0
}

func (winSystem) QueryServiceConfig(h handleID, buf []byte, cfg *rawServiceConfig) (uint32, Errno) {
	var needed uint32
	var p *windows.QUERY_SERVICE_CONFIG
	if len(buf) > 0 {
		p = (*windows.QUERY_SERVICE_CONFIG)(unsafe.Pointer(&buf[0]))
	}
	if err := windows.QueryServiceConfig(windows.Handle(h), p, uint32(len(buf)), &needed); err != nil {
		return needed, errnoOf(err)
	}
	if p == nil {
		return needed, 0
	}
	*cfg = rawServiceConfig{
		serviceType:      p.ServiceType,
		startType:        p.StartType,
		errorControl:     p.ErrorControl,
		binaryPathName:   p.BinaryPathName,
		loadOrderGroup:   p.LoadOrderGroup,
		tagID:            p.TagId,
		dependencies:     p.Dependencies,
		serviceStartName: p.ServiceStartName,
		displayName:      p.DisplayName,
	}
	return needed, 0
}

func (winSystem) ChangeServiceConfig(h handleID, serviceType, startType, errorControl uint32,
	binaryPath, loadOrderGroup *uint16, tagID *uint32,
	dependencies, startName, password, display *uint16) Errno {
	return errnoOf(windows.ChangeServiceConfig(windows.Handle(h),
		serviceType, startType, errorControl,
		binaryPath, loadOrderGroup, tagID,
		dependencies, startName, password, display))
}

func (winSystem) EnablePrivilege(name string) Errno {
	var token windows.Token
	if err := windows.OpenProcessToken(windows.CurrentProcess(),
		windows.TOKEN_ADJUST_PRIVILEGES|windows.TOKEN_QUERY, &token); err != nil {
		return errnoOf(err)
	}
	defer token.Close()

	name16, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return ErrnoInvalidName
	}
	var luid windows.LUID
	if err := windows.LookupPrivilegeValue(nil, name16, &luid); err != nil {
		return errnoOf(err)
	}

	tp := windows.Tokenprivileges{
		PrivilegeCount: 1,
		Privileges: [1]windows.LUIDAndAttributes{{
			Luid:       luid,
			Attributes: windows.SE_PRIVILEGE_ENABLED,
		}},
	}
	// AdjustTokenPrivileges surfaces a partial grant as
	// ERROR_NOT_ALL_ASSIGNED in its returned error.
	if err := windows.AdjustTokenPrivileges(token, false, &tp, uint32(unsafe.Sizeof(tp)), nil, nil); err != nil {
		return errnoOf(err)
	}
	return 0
}
